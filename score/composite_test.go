package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/schema"
)

func TestCompositeBounds(t *testing.T) {
	risks := []schema.RiskLevel{schema.RiskUnknown, schema.RiskLow, schema.RiskModerate, schema.RiskHigh}
	trends := []schema.Trend{schema.TrendUnknown, schema.TrendFalling, schema.TrendStable, schema.TrendRising}
	confidences := []schema.Confidence{schema.ConfidenceLow, schema.ConfidenceModerate, schema.ConfidenceHigh}

	for _, r := range risks {
		for _, tr := range trends {
			for _, c := range confidences {
				s := Composite(schema.RiskAssessment{Risk: r, Trend: tr, Confidence: c})
				assert.GreaterOrEqual(t, s.Composite, 0.0, "%s/%s/%s", r, tr, c)
				assert.LessOrEqual(t, s.Composite, 1.0, "%s/%s/%s", r, tr, c)
			}
		}
	}
}

func TestCompositeValues(t *testing.T) {
	s := Composite(schema.RiskAssessment{
		Risk:       schema.RiskHigh,
		Trend:      schema.TrendRising,
		Confidence: schema.ConfidenceHigh,
	})
	assert.Equal(t, 1.0, s.Composite, "1.0+0.25 clamps to 1 before the confidence weight")

	s = Composite(schema.RiskAssessment{
		Risk:       schema.RiskModerate,
		Trend:      schema.TrendFalling,
		Confidence: schema.ConfidenceModerate,
	})
	assert.Equal(t, 0.245, s.Composite, "(0.6-0.25)*0.7")

	s = Composite(schema.RiskAssessment{
		Risk:       schema.RiskUnknown,
		Trend:      schema.TrendFalling,
		Confidence: schema.ConfidenceLow,
	})
	assert.Equal(t, 0.0, s.Composite, "negative raw scores clamp to zero")
}

func TestCompositeRounding(t *testing.T) {
	s := Composite(schema.RiskAssessment{
		Risk:       schema.RiskLow,
		Trend:      schema.TrendStable,
		Confidence: schema.ConfidenceModerate,
	})
	assert.Equal(t, 0.175, s.Composite)
	assert.Equal(t, 0.25, s.RiskScore)
	assert.Equal(t, 0.0, s.TrendScore)
	assert.Equal(t, 0.7, s.ConfidenceScore)
}
