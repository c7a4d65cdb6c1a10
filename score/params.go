package score

import (
	"github.com/uvceed/pulse-api/schema"
)

// Band is a pair of ascending cutoffs splitting a continuous metric into
// low / moderate / high.
type Band struct {
	Moderate float64
	High     float64
}

// DensityRule gates wastewater confidence on both the number of daily points
// and the median number of samples contributing per day.
type DensityRule struct {
	HighPoints      int
	HighMedianN     float64
	ModeratePoints  int
	ModerateMedianN float64
}

// AdaptiveParams drives the lookback-window search for sparse daily signals.
type AdaptiveParams struct {
	Windows           []int
	MinPointsForTrend int
	MinPointsForRisk  int
	DropLastDays      int
}

// Params collects every tunable the engine reads. Thresholds are
// configuration, not code: callers build Params once (DefaultParams overlaid
// with config values) and pass it through the pipeline entry points. The
// engine itself never reads config or global state.
type Params struct {
	RecentWeekly int
	RecentDaily  int

	RisingRatio  float64
	FallingRatio float64

	PercentileModerate float64
	PercentileHigh     float64

	Wastewater    map[schema.Pathogen]Band
	LabPositivity Band
	EDVisits      map[schema.Pathogen]Band

	Density  DensityRule
	Adaptive AdaptiveParams
}

func DefaultParams() Params {
	return Params{
		RecentWeekly: 3,
		RecentDaily:  7,

		RisingRatio:  1.15,
		FallingRatio: 0.85,

		PercentileModerate: 50,
		PercentileHigh:     80,

		Wastewater: map[schema.Pathogen]Band{
			schema.PathogenCovid: {Moderate: 40000, High: 80000},
			schema.PathogenFluA:  {Moderate: 40000, High: 80000},
			schema.PathogenRSV:   {Moderate: 40000, High: 80000},
		},
		LabPositivity: Band{Moderate: 5, High: 15},
		EDVisits: map[schema.Pathogen]Band{
			schema.PathogenCovid:    {Moderate: 0.8, High: 1.5},
			schema.PathogenFlu:      {Moderate: 1.5, High: 3.0},
			schema.PathogenRSV:      {Moderate: 1.0, High: 2.0},
			schema.PathogenCombined: {Moderate: 3.0, High: 6.0},
		},

		Density: DensityRule{
			HighPoints:      18,
			HighMedianN:     3,
			ModeratePoints:  10,
			ModerateMedianN: 2,
		},
		Adaptive: AdaptiveParams{
			Windows:           []int{60, 90, 120, 180},
			MinPointsForTrend: 14,
			MinPointsForRisk:  8,
			DropLastDays:      2,
		},
	}
}
