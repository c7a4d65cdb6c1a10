package score

import (
	"github.com/uvceed/pulse-api/schema"
)

var riskRank = map[schema.RiskLevel]int{
	schema.RiskUnknown:  0,
	schema.RiskLow:      1,
	schema.RiskModerate: 2,
	schema.RiskHigh:     3,
}

var confidenceRank = map[schema.Confidence]int{
	schema.ConfidenceLow:      1,
	schema.ConfidenceModerate: 2,
	schema.ConfidenceHigh:     3,
}

// RollupAssessments condenses the per-pathogen assessments of one signal
// into a single conservative answer: risk, trend and score lean toward the
// most alarming input while confidence leans toward the least certain input
// that actually carried data. Suggestion text is left to the caller, keyed
// by SuggestionID.
func RollupAssessments(results []schema.AssessedSignal) schema.Rollup {
	if len(results) == 0 {
		return schema.Rollup{
			Level:       schema.RiskUnknown,
			Trend:       schema.TrendUnknown,
			Confidence:  schema.ConfidenceLow,
			Score:       0,
			PerPathogen: map[string]float64{},
		}
	}

	level := schema.RiskUnknown
	for _, r := range results {
		if riskRank[r.Risk] > riskRank[level] {
			level = r.Risk
		}
	}

	var anyRising, anyFalling, anyStable bool
	for _, r := range results {
		switch r.Trend {
		case schema.TrendRising:
			anyRising = true
		case schema.TrendFalling:
			anyFalling = true
		case schema.TrendStable:
			anyStable = true
		}
	}

	trend := schema.TrendUnknown
	switch {
	case anyRising:
		trend = schema.TrendRising
	case anyFalling:
		trend = schema.TrendFalling
	case anyStable:
		trend = schema.TrendStable
	}

	confidence := schema.Confidence("")
	for _, r := range results {
		if r.PointsUsed == 0 {
			continue
		}
		if confidence == "" || confidenceRank[r.Confidence] < confidenceRank[confidence] {
			confidence = r.Confidence
		}
	}
	if confidence == "" {
		confidence = schema.ConfidenceLow
	}

	score := 0.0
	perPathogen := make(map[string]float64, len(results))
	for _, r := range results {
		perPathogen[string(r.Pathogen)] = r.Composite
		if r.Composite > score {
			score = r.Composite
		}
	}

	return schema.Rollup{
		Level:       level,
		Trend:       trend,
		Confidence:  confidence,
		Score:       round6(score),
		PerPathogen: perPathogen,
	}
}

// SuggestionID keys the human-readable advice for a rollup. The wording is
// confidence-aware: sparse data softens the message instead of alarming on
// a weak signal.
func SuggestionID(level schema.RiskLevel, confidence schema.Confidence) string {
	if level == schema.RiskUnknown {
		return "suggestion_no_signal"
	}

	if confidence == schema.ConfidenceLow {
		if level == schema.RiskHigh || level == schema.RiskModerate {
			return "suggestion_sparse_elevated"
		}
		return "suggestion_sparse_low"
	}

	switch level {
	case schema.RiskHigh:
		return "suggestion_high"
	case schema.RiskModerate:
		return "suggestion_moderate"
	default:
		return "suggestion_low"
	}
}
