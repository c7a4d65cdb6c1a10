package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/schema"
)

func assessed(pathogen schema.Pathogen, risk schema.RiskLevel, trend schema.Trend, conf schema.Confidence, points int) schema.AssessedSignal {
	return Assess(schema.RiskAssessment{
		SignalType: schema.SignalWastewater,
		Pathogen:   pathogen,
		Risk:       risk,
		Trend:      trend,
		Confidence: conf,
		PointsUsed: points,
	})
}

func TestRollupEmpty(t *testing.T) {
	r := RollupAssessments(nil)

	assert.Equal(t, schema.RiskUnknown, r.Level)
	assert.Equal(t, schema.TrendUnknown, r.Trend)
	assert.Equal(t, schema.ConfidenceLow, r.Confidence)
	assert.Equal(t, 0.0, r.Score)
}

func TestRollupConservative(t *testing.T) {
	inputs := []schema.AssessedSignal{
		assessed(schema.PathogenCovid, schema.RiskHigh, schema.TrendFalling, schema.ConfidenceHigh, 20),
		assessed(schema.PathogenFluA, schema.RiskLow, schema.TrendRising, schema.ConfidenceModerate, 15),
		assessed(schema.PathogenRSV, schema.RiskModerate, schema.TrendStable, schema.ConfidenceLow, 9),
	}

	r := RollupAssessments(inputs)

	assert.Equal(t, schema.RiskHigh, r.Level, "level leans toward the most alarming input")
	assert.Equal(t, schema.TrendRising, r.Trend, "any rising input makes the rollup rising")
	assert.Equal(t, schema.ConfidenceLow, r.Confidence, "confidence leans toward the least certain input with data")
	assert.Len(t, r.PerPathogen, 3)

	// score is the max composite among inputs
	max := 0.0
	for _, in := range inputs {
		if in.Composite > max {
			max = in.Composite
		}
	}
	assert.Equal(t, max, r.Score)
}

func TestRollupTrendPrecedence(t *testing.T) {
	falling := []schema.AssessedSignal{
		assessed(schema.PathogenCovid, schema.RiskLow, schema.TrendFalling, schema.ConfidenceHigh, 20),
		assessed(schema.PathogenFluA, schema.RiskLow, schema.TrendUnknown, schema.ConfidenceHigh, 20),
	}
	assert.Equal(t, schema.TrendFalling, RollupAssessments(falling).Trend)

	stable := []schema.AssessedSignal{
		assessed(schema.PathogenCovid, schema.RiskLow, schema.TrendStable, schema.ConfidenceHigh, 20),
		assessed(schema.PathogenFluA, schema.RiskLow, schema.TrendUnknown, schema.ConfidenceHigh, 20),
	}
	assert.Equal(t, schema.TrendStable, RollupAssessments(stable).Trend)

	unknown := []schema.AssessedSignal{
		assessed(schema.PathogenCovid, schema.RiskUnknown, schema.TrendUnknown, schema.ConfidenceLow, 0),
	}
	assert.Equal(t, schema.TrendUnknown, RollupAssessments(unknown).Trend)
}

func TestRollupConfidenceIgnoresEmptyInputs(t *testing.T) {
	inputs := []schema.AssessedSignal{
		assessed(schema.PathogenCovid, schema.RiskModerate, schema.TrendStable, schema.ConfidenceHigh, 20),
		// zero points: its low confidence must not drag the rollup down
		assessed(schema.PathogenRSV, schema.RiskUnknown, schema.TrendUnknown, schema.ConfidenceLow, 0),
	}

	r := RollupAssessments(inputs)
	assert.Equal(t, schema.ConfidenceHigh, r.Confidence)
}

func TestSuggestionID(t *testing.T) {
	assert.Equal(t, "suggestion_no_signal", SuggestionID(schema.RiskUnknown, schema.ConfidenceHigh))
	assert.Equal(t, "suggestion_sparse_elevated", SuggestionID(schema.RiskHigh, schema.ConfidenceLow))
	assert.Equal(t, "suggestion_sparse_low", SuggestionID(schema.RiskLow, schema.ConfidenceLow))
	assert.Equal(t, "suggestion_high", SuggestionID(schema.RiskHigh, schema.ConfidenceModerate))
	assert.Equal(t, "suggestion_moderate", SuggestionID(schema.RiskModerate, schema.ConfidenceHigh))
	assert.Equal(t, "suggestion_low", SuggestionID(schema.RiskLow, schema.ConfidenceHigh))
}
