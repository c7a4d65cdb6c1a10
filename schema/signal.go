package schema

type SignalType string

const (
	SignalWastewater  SignalType = "wastewater"
	SignalILINet      SignalType = "ilinet"
	SignalFluLab      SignalType = "flu_lab"
	SignalNSSPEDVisit SignalType = "nssp_ed_visits"
)

// SignalTypes lists every signal served by the API, in serving order.
var SignalTypes = []SignalType{
	SignalWastewater,
	SignalILINet,
	SignalFluLab,
	SignalNSSPEDVisit,
}

func IsValidSignalType(s string) bool {
	for _, t := range SignalTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

type Pathogen string

const (
	PathogenCovid    Pathogen = "covid"
	PathogenFluA     Pathogen = "flu_a"
	PathogenFlu      Pathogen = "flu"
	PathogenRSV      Pathogen = "rsv"
	PathogenCombined Pathogen = "combined"
)

type RiskLevel string

const (
	RiskUnknown  RiskLevel = "unknown"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

type Trend string

const (
	TrendUnknown Trend = "unknown"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
	TrendRising  Trend = "rising"
)

type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceHigh     Confidence = "high"
)

// WindowSummary carries the recent/prior aggregates a classification is based
// on. Recent is nil only for an empty series; Prior is nil whenever fewer than
// recent+prior points were available.
type WindowSummary struct {
	Recent     *float64 `json:"recent_aggregate" bson:"recent_aggregate"`
	Prior      *float64 `json:"prior_aggregate" bson:"prior_aggregate"`
	PointsUsed int      `json:"points_used" bson:"points_used"`
	Window     int      `json:"window" bson:"window"`
}

// RiskAssessment is the unit produced per (region, signal, pathogen) run.
// It is immutable once constructed; errors inside the pipeline degrade fields
// to unknown/low and leave an explanation in Note instead of failing the run.
type RiskAssessment struct {
	SignalType SignalType `json:"signal_type" bson:"signal_type"`
	Pathogen   Pathogen   `json:"pathogen,omitempty" bson:"pathogen,omitempty"`
	Metric     string     `json:"metric" bson:"metric"`
	Risk       RiskLevel  `json:"risk" bson:"risk"`
	Trend      Trend      `json:"trend" bson:"trend"`
	Confidence Confidence `json:"confidence" bson:"confidence"`
	Recent     *float64   `json:"recent_aggregate" bson:"recent_aggregate"`
	Prior      *float64   `json:"prior_aggregate" bson:"prior_aggregate"`
	PointsUsed int        `json:"points_used" bson:"points_used"`
	WindowDays int        `json:"window_days,omitempty" bson:"window_days,omitempty"`
	Note       string     `json:"note,omitempty" bson:"note,omitempty"`
}

type CompositeScore struct {
	RiskScore       float64 `json:"risk_score" bson:"risk_score"`
	TrendScore      float64 `json:"trend_score" bson:"trend_score"`
	ConfidenceScore float64 `json:"confidence_score" bson:"confidence_score"`
	Composite       float64 `json:"composite_score" bson:"composite_score"`
}

// AssessedSignal pairs an assessment with its derived scores for persistence
// and API output.
type AssessedSignal struct {
	RiskAssessment
	CompositeScore
}

// Rollup condenses the per-pathogen assessments of one signal type into one
// overall answer for a ZIP.
type Rollup struct {
	Level       RiskLevel          `json:"overall_level" bson:"overall_level"`
	Trend       Trend              `json:"overall_trend" bson:"overall_trend"`
	Confidence  Confidence         `json:"overall_confidence" bson:"overall_confidence"`
	Score       float64            `json:"overall_score" bson:"overall_score"`
	Suggestion  string             `json:"suggestion" bson:"suggestion"`
	PerPathogen map[string]float64 `json:"per_pathogen_scores" bson:"per_pathogen_scores"`
}
