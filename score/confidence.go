package score

import (
	"github.com/uvceed/pulse-api/schema"
)

const (
	highPointFloor     = 12
	moderatePointFloor = 6
)

// ConfidenceFromPoints grades a weekly signal on how many usable points it
// produced versus how many were requested. Requesting fewer points than the
// floors lowers the bar accordingly, so a short deliberate window can still
// reach high confidence.
func ConfidenceFromPoints(points, requested int) schema.Confidence {
	highBar := highPointFloor
	if requested < highBar {
		highBar = requested
	}
	moderateBar := moderatePointFloor
	if requested < moderateBar {
		moderateBar = requested
	}

	switch {
	case points >= highBar && points > 0:
		return schema.ConfidenceHigh
	case points >= moderateBar && points > 0:
		return schema.ConfidenceModerate
	default:
		return schema.ConfidenceLow
	}
}

// ConfidenceFromDensity grades a daily wastewater series on both the number
// of daily points in the effective window and the median number of samples
// contributing per day.
func ConfidenceFromDensity(points int, medianN float64, rule DensityRule) schema.Confidence {
	switch {
	case points >= rule.HighPoints && medianN >= rule.HighMedianN:
		return schema.ConfidenceHigh
	case points >= rule.ModeratePoints && medianN >= rule.ModerateMedianN:
		return schema.ConfidenceModerate
	default:
		return schema.ConfidenceLow
	}
}

// MedianSampleCount - median of the per-day contributing sample counts.
func MedianSampleCount(points []schema.DailyPoint) float64 {
	counts := make([]float64, len(points))
	for i, p := range points {
		counts[i] = float64(p.N)
	}
	m, ok := Median(counts)
	if !ok {
		return 0
	}
	return m
}
