package score

import (
	"github.com/uvceed/pulse-api/schema"
)

// FetchWindow retrieves raw observations covering the trailing windowDays.
// Implementations live outside the engine; a returned error means the fetch
// collaborator already exhausted its retries.
type FetchWindow func(windowDays int) ([]schema.Observation, error)

// AdaptiveResult is the outcome of one lookback-window search.
type AdaptiveResult struct {
	WindowDays int
	Points     []schema.DailyPoint
	Assessment schema.RiskAssessment
}

// SelectAdaptiveWindow searches the candidate lookback windows, smallest
// first, for the first one producing enough daily points to support a trend
// classification. The search stops at the first trend-capable window rather
// than trying larger ones, preferring the freshest adequate window over a
// larger but staler one. When no window reaches the trend threshold, the
// most recently evaluated window that at least cleared the risk threshold is
// returned, falling back to the last window evaluated.
func SelectAdaptiveWindow(fetch FetchWindow, pathogen schema.Pathogen, metric string, p Params) (AdaptiveResult, error) {
	var last, bestRisk AdaptiveResult
	riskCleared := false

	for _, days := range p.Adaptive.Windows {
		obs, err := fetch(days)
		if err != nil {
			return AdaptiveResult{}, err
		}

		points := BuildDailySeries(obs)
		result := AdaptiveResult{
			WindowDays: days,
			Points:     points,
			Assessment: AssessWastewater(points, days, pathogen, metric, p),
		}

		if len(points) >= p.Adaptive.MinPointsForTrend {
			return result, nil
		}

		last = result
		if len(points) >= p.Adaptive.MinPointsForRisk {
			bestRisk = result
			riskCleared = true
		}
	}

	if riskCleared {
		return bestRisk, nil
	}
	return last, nil
}
