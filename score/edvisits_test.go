package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/schema"
)

func directionSeries(labels ...string) []schema.DirectionPoint {
	start := day(2026, 1, 3)
	points := make([]schema.DirectionPoint, len(labels))
	for i, l := range labels {
		points[i] = schema.DirectionPoint{
			Week:  start.Add(time.Duration(i*7) * 24 * time.Hour),
			Label: l,
			N:     1,
		}
	}
	return points
}

func percentSeries(values ...float64) []schema.DailyPoint {
	start := day(2026, 1, 3)
	points := make([]schema.DailyPoint, len(values))
	for i, v := range values {
		points[i] = schema.DailyPoint{
			Day:   start.Add(time.Duration(i*7) * 24 * time.Hour),
			Value: v,
			N:     1,
		}
	}
	return points
}

func TestAssessEDDirectionMode(t *testing.T) {
	points := directionSeries(
		DirectionNoChange, DirectionNoChange, DirectionDecreasing,
		DirectionIncreasing, DirectionIncreasing, DirectionNoChange,
	)
	a := AssessEDDirection(points, 12, schema.PathogenCombined, "ed_trends", DefaultParams())

	assert.Equal(t, schema.RiskHigh, a.Risk, "Increasing mode over the last three weeks")
	assert.Equal(t, schema.TrendRising, a.Trend, "mode moved from No Change to Increasing")
}

func TestAssessEDDirectionSparse(t *testing.T) {
	a := AssessEDDirection(directionSeries(DirectionIncreasing, DirectionNoChange), 12, schema.PathogenCovid, "ed_trends_covid", DefaultParams())

	assert.Equal(t, schema.RiskUnknown, a.Risk, "direction mode needs three points")
	assert.Equal(t, schema.TrendUnknown, a.Trend)
	assert.Contains(t, a.Note, "direction mode needs 3")
}

func TestAssessEDDirectionEmpty(t *testing.T) {
	a := AssessEDDirection(nil, 12, schema.PathogenCovid, "ed_trends_covid", DefaultParams())

	assert.Equal(t, schema.RiskUnknown, a.Risk)
	assert.Contains(t, a.Note, "no NSSP ED trend records")
}

func TestAssessEDPercentThresholds(t *testing.T) {
	p := DefaultParams()

	// combined band is 3.0 / 6.0 percent of visits
	a := AssessEDPercent(percentSeries(2, 2, 2, 3, 3, 3, 6, 7, 8), 16, schema.PathogenCombined, "percent_visits_combined", p)
	assert.Equal(t, schema.RiskHigh, a.Risk)
	assert.Equal(t, schema.TrendRising, a.Trend)

	b := AssessEDPercent(percentSeries(0.5, 0.5, 0.4, 0.5, 0.4, 0.5, 0.5, 0.5, 0.4), 16, schema.PathogenCovid, "percent_visits_covid", p)
	assert.Equal(t, schema.RiskLow, b.Risk)
	assert.Equal(t, schema.TrendStable, b.Trend)
}
