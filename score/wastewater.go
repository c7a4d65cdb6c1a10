package score

import (
	"fmt"
	"strings"

	"github.com/uvceed/pulse-api/schema"
)

// AssessWastewater summarizes an already-built daily concentration series
// for one pathogen. The trailing late-reporting guard is applied here, so
// classification and confidence read the same effective series.
func AssessWastewater(points []schema.DailyPoint, windowDays int, pathogen schema.Pathogen, metric string, p Params) schema.RiskAssessment {
	effective := TrimTrailing(points, p.Adaptive.DropLastDays)
	summary := Compare(DailyValues(effective), p.RecentDaily, p.RecentDaily)

	a := schema.RiskAssessment{
		SignalType: schema.SignalWastewater,
		Pathogen:   pathogen,
		Metric:     metric,
		Risk:       schema.RiskUnknown,
		Trend:      schema.TrendUnknown,
		Recent:     summary.Recent,
		Prior:      summary.Prior,
		PointsUsed: len(effective),
		WindowDays: windowDays,
	}

	var notes []string

	if summary.Recent == nil {
		notes = append(notes, "no wastewater samples in the effective window")
	} else {
		a.Risk = LevelFromThresholds(*summary.Recent, p.Wastewater[pathogen])
	}

	if len(effective) < p.Adaptive.MinPointsForTrend {
		if len(effective) > 0 {
			notes = append(notes, fmt.Sprintf("only %d daily points in the %d-day window; trend needs %d",
				len(effective), windowDays, p.Adaptive.MinPointsForTrend))
		}
	} else {
		a.Trend = TrendFromRatio(summary.Recent, summary.Prior, p.RisingRatio, p.FallingRatio)
		if a.Trend == schema.TrendUnknown {
			notes = append(notes, "prior window empty or zero; trend not compared")
		}
	}

	a.Confidence = ConfidenceFromDensity(len(effective), MedianSampleCount(effective), p.Density)
	a.Note = strings.Join(notes, "; ")
	return a
}
