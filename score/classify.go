package score

import (
	"github.com/uvceed/pulse-api/schema"
)

const (
	DirectionIncreasing = "Increasing"
	DirectionDecreasing = "Decreasing"
	DirectionNoChange   = "No Change"
)

// directionRank orders the three directions for trend comparison.
var directionRank = map[string]int{
	DirectionDecreasing: -1,
	DirectionNoChange:   0,
	DirectionIncreasing: 1,
}

// LevelFromThresholds bands a continuous value with two ascending cutoffs.
func LevelFromThresholds(v float64, band Band) schema.RiskLevel {
	switch {
	case v >= band.High:
		return schema.RiskHigh
	case v >= band.Moderate:
		return schema.RiskModerate
	default:
		return schema.RiskLow
	}
}

// PercentileRank - percentage of baseline values not exceeding v. Ties count
// as included, so a value equal to the baseline maximum ranks at 100.
func PercentileRank(baseline []float64, v float64) float64 {
	if len(baseline) == 0 {
		return 0
	}
	count := 0
	for _, b := range baseline {
		if b <= v {
			count++
		}
	}
	return 100 * float64(count) / float64(len(baseline))
}

// LevelFromPercentile bands a value by its percentile rank within the full
// baseline series, for signals with no meaningful absolute cutoff.
func LevelFromPercentile(v float64, baseline []float64, moderateCut, highCut float64) schema.RiskLevel {
	rank := PercentileRank(baseline, v)
	switch {
	case rank >= highCut:
		return schema.RiskHigh
	case rank >= moderateCut:
		return schema.RiskModerate
	default:
		return schema.RiskLow
	}
}

// TrendFromRatio labels recent-versus-prior movement with a ±15% deadband
// (the default rising/falling ratios) so noisy weekly data does not flap
// between labels. A missing or zero prior makes the ratio undefined.
func TrendFromRatio(recent, prior *float64, risingRatio, fallingRatio float64) schema.Trend {
	if recent == nil || prior == nil || *prior == 0 {
		return schema.TrendUnknown
	}

	ratio := *recent / *prior
	switch {
	case ratio >= risingRatio:
		return schema.TrendRising
	case ratio <= fallingRatio:
		return schema.TrendFalling
	default:
		return schema.TrendStable
	}
}

// LevelFromDirection maps an NSSP direction label onto a risk level:
// Increasing reads as high, No Change as moderate, Decreasing as low.
func LevelFromDirection(label string) schema.RiskLevel {
	switch NormalizeDirection(label) {
	case DirectionIncreasing:
		return schema.RiskHigh
	case DirectionNoChange:
		return schema.RiskModerate
	case DirectionDecreasing:
		return schema.RiskLow
	default:
		return schema.RiskUnknown
	}
}

// TrendFromDirections compares two resolved direction modes by ordinal rank.
func TrendFromDirections(prev, cur string) schema.Trend {
	rp, okPrev := directionRank[NormalizeDirection(prev)]
	rc, okCur := directionRank[NormalizeDirection(cur)]
	if !okPrev || !okCur {
		return schema.TrendUnknown
	}

	switch {
	case rc > rp:
		return schema.TrendRising
	case rc < rp:
		return schema.TrendFalling
	default:
		return schema.TrendStable
	}
}
