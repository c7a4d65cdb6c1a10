package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/schema"
)

// doubling concentration series: after the two-day late-reporting trim, the
// last seven daily medians sit at 100k and the seven before them at 50k.
func doublingSeries(n int) []schema.DailyPoint {
	start := day(2026, 2, 1)
	points := make([]schema.DailyPoint, 0, n+2)
	for i := 0; i < n+2; i++ {
		value := 50000.0
		if i >= n-7 {
			value = 100000
		}
		points = append(points, schema.DailyPoint{
			Day:   start.Add(time.Duration(i) * 24 * time.Hour),
			Value: value,
			N:     3,
		})
	}
	return points
}

func TestAssessWastewaterRisingHigh(t *testing.T) {
	a := AssessWastewater(doublingSeries(20), 90, schema.PathogenCovid, "pcr_target_avg_conc_lin", DefaultParams())

	assert.Equal(t, schema.TrendRising, a.Trend, "ratio 2.0 clears the rising band")
	assert.Equal(t, schema.RiskHigh, a.Risk, "recent median 100k clears the 80k cutoff")
	assert.Equal(t, schema.ConfidenceHigh, a.Confidence, "20 points with 3 samples per day")
	assert.Equal(t, 100000.0, *a.Recent)
	assert.Equal(t, 50000.0, *a.Prior)
	assert.Equal(t, 20, a.PointsUsed)
	assert.Equal(t, 90, a.WindowDays)
}

func TestAssessWastewaterEmpty(t *testing.T) {
	a := AssessWastewater(nil, 60, schema.PathogenCovid, "", DefaultParams())

	assert.Equal(t, schema.RiskUnknown, a.Risk)
	assert.Equal(t, schema.TrendUnknown, a.Trend)
	assert.Equal(t, schema.ConfidenceLow, a.Confidence)
	assert.Nil(t, a.Recent)
	assert.Nil(t, a.Prior)
	assert.Contains(t, a.Note, "no wastewater samples")
}

func TestAssessWastewaterTrendGated(t *testing.T) {
	// 10 effective points carry a risk level but not a trend
	points := doublingSeries(10)
	a := AssessWastewater(points, 60, schema.PathogenCovid, "pcr_target_avg_conc_lin", DefaultParams())

	assert.NotEqual(t, schema.RiskUnknown, a.Risk, "risk still computes from the recent aggregate")
	assert.Equal(t, schema.TrendUnknown, a.Trend)
	assert.Contains(t, a.Note, "trend needs 14")
}

func TestAssessWastewaterIdempotent(t *testing.T) {
	points := doublingSeries(20)
	p := DefaultParams()

	first := AssessWastewater(points, 90, schema.PathogenCovid, "m", p)
	second := AssessWastewater(points, 90, schema.PathogenCovid, "m", p)

	assert.Equal(t, *first.Recent, *second.Recent)
	first.Recent, second.Recent = nil, nil
	first.Prior, second.Prior = nil, nil
	assert.Equal(t, first, second, "pure function, no hidden state")
}
