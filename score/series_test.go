package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/schema"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fp(v float64) *float64 {
	return &v
}

func TestBuildDailySeriesMedianPerDay(t *testing.T) {
	obs := []schema.Observation{
		{Day: day(2026, 3, 2), Value: fp(100)},
		{Day: day(2026, 3, 1), Value: fp(10)},
		{Day: day(2026, 3, 1), Value: fp(30)},
		{Day: day(2026, 3, 1), Value: fp(1000)},
	}

	points := BuildDailySeries(obs)

	assert.Len(t, points, 2)
	assert.Equal(t, day(2026, 3, 1), points[0].Day, "buckets ascend")
	assert.Equal(t, float64(30), points[0].Value, "median resists the outlier site")
	assert.Equal(t, 3, points[0].N)
	assert.Equal(t, float64(100), points[1].Value)
	assert.Equal(t, 1, points[1].N)
}

func TestBuildDailySeriesDropsUnresolvable(t *testing.T) {
	obs := []schema.Observation{
		{Day: day(2026, 3, 1), Value: nil},
		{Value: fp(5)},
	}

	assert.Empty(t, BuildDailySeries(obs), "null values and missing days drop, not become placeholders")
	assert.Empty(t, BuildDailySeries(nil))
}

func TestBuildWeeklySeriesLatestIssueWins(t *testing.T) {
	obs := []schema.Observation{
		{Epiweek: 202610, Value: fp(2.0), Issue: 202612},
		{Epiweek: 202610, Value: fp(1.0), Issue: 202610},
	}

	points := BuildWeeklySeries(obs)
	assert.Len(t, points, 1)
	assert.Equal(t, 2.0, points[0].Value, "revision 202612 supersedes 202610")

	// input order must not matter
	reversed := BuildWeeklySeries([]schema.Observation{obs[1], obs[0]})
	assert.Equal(t, points, reversed)
}

func TestBuildWeeklySeriesAscending(t *testing.T) {
	obs := []schema.Observation{
		{Epiweek: 202612, Value: fp(3)},
		{Epiweek: 202552, Value: fp(1)},
		{Epiweek: 202601, Value: fp(2)},
	}

	points := BuildWeeklySeries(obs)
	assert.Equal(t, []int{202552, 202601, 202612}, []int{points[0].Epiweek, points[1].Epiweek, points[2].Epiweek})
}

func TestBuildDirectionSeriesMode(t *testing.T) {
	w := day(2026, 3, 7)
	obs := []schema.Observation{
		{Day: w, Label: "Increasing"},
		{Day: w, Label: "Increasing"},
		{Day: w, Label: "No Change"},
	}

	points := BuildDirectionSeries(obs)
	assert.Len(t, points, 1)
	assert.Equal(t, DirectionIncreasing, points[0].Label)
	assert.Equal(t, 3, points[0].N)
}

func TestBuildDirectionSeriesTieBreaksFirstSeen(t *testing.T) {
	w := day(2026, 3, 7)
	points := BuildDirectionSeries([]schema.Observation{
		{Day: w, Label: "Decreasing"},
		{Day: w, Label: "Increasing"},
	})

	assert.Equal(t, DirectionDecreasing, points[0].Label, "equal counts resolve to the first label seen")
}

func TestNormalizeDirection(t *testing.T) {
	assert.Equal(t, DirectionIncreasing, NormalizeDirection(" increasing "))
	assert.Equal(t, DirectionNoChange, NormalizeDirection("no change"))
	assert.Equal(t, "", NormalizeDirection("Data Unavailable"))
}

func TestCombinedValue(t *testing.T) {
	assert.Equal(t, 4.5, *CombinedValue(fp(1), fp(1.5), fp(2)))
	assert.Nil(t, CombinedValue(fp(1), nil, fp(2)), "partial sums would understate combined activity")
}

func TestMajorityDirection(t *testing.T) {
	assert.Equal(t, DirectionIncreasing, MajorityDirection("Increasing", "Increasing", "No Change"))
	assert.Equal(t, DirectionDecreasing, MajorityDirection("Decreasing", "Decreasing", "Increasing"))
	// one of each: movement beats No Change, Increasing beats Decreasing
	assert.Equal(t, DirectionIncreasing, MajorityDirection("No Change", "Decreasing", "Increasing"))
	assert.Equal(t, "", MajorityDirection("", "Data Unavailable"))
}

func TestTrimTrailing(t *testing.T) {
	points := []schema.DailyPoint{
		{Day: day(2026, 3, 1)}, {Day: day(2026, 3, 2)}, {Day: day(2026, 3, 3)},
	}

	assert.Len(t, TrimTrailing(points, 2), 1)
	assert.Len(t, TrimTrailing(points, 3), 3, "short series are returned untouched rather than emptied")
	assert.Len(t, TrimTrailing(points, 0), 3)
}
