package score

import (
	"math"

	"github.com/uvceed/pulse-api/schema"
)

var riskScores = map[schema.RiskLevel]float64{
	schema.RiskUnknown:  0.0,
	schema.RiskLow:      0.25,
	schema.RiskModerate: 0.6,
	schema.RiskHigh:     1.0,
}

var trendScores = map[schema.Trend]float64{
	schema.TrendFalling: -0.25,
	schema.TrendStable:  0.0,
	schema.TrendRising:  0.25,
	schema.TrendUnknown: 0.0,
}

var confidenceScores = map[schema.Confidence]float64{
	schema.ConfidenceLow:      0.4,
	schema.ConfidenceModerate: 0.7,
	schema.ConfidenceHigh:     1.0,
}

func RiskScore(level schema.RiskLevel) float64 {
	return riskScores[level]
}

func TrendScore(trend schema.Trend) float64 {
	return trendScores[trend]
}

func ConfidenceScore(confidence schema.Confidence) float64 {
	if s, ok := confidenceScores[confidence]; ok {
		return s
	}
	return confidenceScores[schema.ConfidenceLow]
}

// Composite distills an assessment into its [0,1] machine-ranking score:
// the risk score nudged by the trend bump, clamped, then downweighted by
// confidence so sparse areas rank below well-sampled ones at the same level.
func Composite(a schema.RiskAssessment) schema.CompositeScore {
	risk := RiskScore(a.Risk)
	trend := TrendScore(a.Trend)
	confidence := ConfidenceScore(a.Confidence)

	raw := risk + trend
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}

	return schema.CompositeScore{
		RiskScore:       risk,
		TrendScore:      trend,
		ConfidenceScore: confidence,
		Composite:       round6(raw * confidence),
	}
}

// Assess pairs an assessment with its derived scores.
func Assess(a schema.RiskAssessment) schema.AssessedSignal {
	return schema.AssessedSignal{
		RiskAssessment: a,
		CompositeScore: Composite(a),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
