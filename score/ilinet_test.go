package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/schema"
)

func weeklySeries(values ...float64) []schema.WeeklyPoint {
	points := make([]schema.WeeklyPoint, len(values))
	for i, v := range values {
		points[i] = schema.WeeklyPoint{Epiweek: 202601 + i, Value: v, N: 1}
	}
	return points
}

func TestAssessILINetPercentileRisk(t *testing.T) {
	// recent median sits at the top of a long flat baseline
	points := weeklySeries(1, 1, 1, 1, 1, 1, 1, 1, 1, 4, 5, 6)
	a := AssessILINet(points, 12, "wili", DefaultParams())

	assert.Equal(t, schema.RiskHigh, a.Risk, "recent aggregate ranks above the 80th percentile")
	assert.Equal(t, schema.TrendRising, a.Trend)
	assert.Equal(t, schema.ConfidenceHigh, a.Confidence)
	assert.Equal(t, 5.0, *a.Recent)
}

func TestAssessILINetFivePoints(t *testing.T) {
	// one point short of the six needed for a prior window
	a := AssessILINet(weeklySeries(1, 2, 3, 4, 5), 12, "wili", DefaultParams())

	assert.Equal(t, schema.TrendUnknown, a.Trend)
	assert.Contains(t, a.Note, "only 5 weekly points")
	assert.NotEqual(t, schema.RiskUnknown, a.Risk, "risk still computes from the recent aggregate")
	assert.Equal(t, schema.ConfidenceLow, a.Confidence)
}

func TestAssessILINetEmpty(t *testing.T) {
	a := AssessILINet(nil, 12, "wili", DefaultParams())

	assert.Equal(t, schema.RiskUnknown, a.Risk)
	assert.Equal(t, schema.TrendUnknown, a.Trend)
	assert.Equal(t, schema.ConfidenceLow, a.Confidence)
	assert.Contains(t, a.Note, "no ILINet data")
}

func TestAssessLabPositivityThresholds(t *testing.T) {
	p := DefaultParams()

	low := AssessLabPositivity(weeklySeries(1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4), 12, "percent_positive", p)
	assert.Equal(t, schema.RiskLow, low.Risk)

	high := AssessLabPositivity(weeklySeries(10, 10, 10, 12, 12, 12, 14, 15, 16, 17, 18, 19), 12, "percent_positive", p)
	assert.Equal(t, schema.RiskHigh, high.Risk, "recent median 18 clears the 15 cutoff")
	assert.Equal(t, schema.TrendRising, high.Trend)
}
