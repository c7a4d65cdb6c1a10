package score

import (
	"sort"

	"github.com/uvceed/pulse-api/schema"
)

// Median - true statistical median. ok is false on empty input.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// Compare summarizes an ascending series into its recent and prior window
// aggregates. Recent is the median of the last recentN values and degrades
// gracefully: any non-empty series yields a recent aggregate from however
// many of the last recentN values exist. Prior is the median of the priorN
// values immediately preceding the recent window and is only computed when
// at least recentN+priorN points exist.
func Compare(values []float64, recentN, priorN int) schema.WindowSummary {
	s := schema.WindowSummary{PointsUsed: len(values)}
	if len(values) == 0 {
		return s
	}

	recentStart := len(values) - recentN
	if recentStart < 0 {
		recentStart = 0
	}
	if m, ok := Median(values[recentStart:]); ok {
		s.Recent = &m
	}

	if len(values) >= recentN+priorN {
		if m, ok := Median(values[recentStart-priorN : recentStart]); ok {
			s.Prior = &m
		}
	}
	return s
}

// DailyValues projects the value column of a daily series.
func DailyValues(points []schema.DailyPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// WeeklyValues projects the value column of a weekly series.
func WeeklyValues(points []schema.WeeklyPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}
