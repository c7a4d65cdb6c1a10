package score

import (
	"fmt"
	"strings"

	"github.com/uvceed/pulse-api/schema"
)

// AssessILINet summarizes a weekly outpatient-ILI series. ILI percentages
// have no clinically meaningful absolute cutoff, so risk is banded by the
// recent aggregate's percentile rank within the full lookback baseline.
func AssessILINet(points []schema.WeeklyPoint, requestedWeeks int, metric string, p Params) schema.RiskAssessment {
	values := WeeklyValues(points)
	summary := Compare(values, p.RecentWeekly, p.RecentWeekly)

	a := schema.RiskAssessment{
		SignalType: schema.SignalILINet,
		Metric:     metric,
		Risk:       schema.RiskUnknown,
		Trend:      schema.TrendUnknown,
		Recent:     summary.Recent,
		Prior:      summary.Prior,
		PointsUsed: len(points),
	}

	var notes []string

	if summary.Recent == nil {
		notes = append(notes, "no ILINet data in lookback window")
	} else {
		a.Risk = LevelFromPercentile(*summary.Recent, values, p.PercentileModerate, p.PercentileHigh)
	}

	a.Trend = TrendFromRatio(summary.Recent, summary.Prior, p.RisingRatio, p.FallingRatio)
	if a.Trend == schema.TrendUnknown && len(points) > 0 && len(points) < 2*p.RecentWeekly {
		notes = append(notes, fmt.Sprintf("only %d weekly points; trend needs %d", len(points), 2*p.RecentWeekly))
	}

	a.Confidence = ConfidenceFromPoints(len(points), requestedWeeks)
	a.Note = strings.Join(notes, "; ")
	return a
}

// AssessLabPositivity summarizes a weekly clinical lab percent-positive
// series. Percent positivity does carry meaningful absolute cutoffs, so risk
// comes from the configured band rather than a percentile.
func AssessLabPositivity(points []schema.WeeklyPoint, requestedWeeks int, metric string, p Params) schema.RiskAssessment {
	summary := Compare(WeeklyValues(points), p.RecentWeekly, p.RecentWeekly)

	a := schema.RiskAssessment{
		SignalType: schema.SignalFluLab,
		Metric:     metric,
		Risk:       schema.RiskUnknown,
		Trend:      schema.TrendUnknown,
		Recent:     summary.Recent,
		Prior:      summary.Prior,
		PointsUsed: len(points),
	}

	var notes []string

	if summary.Recent == nil {
		notes = append(notes, "no clinical lab data in lookback window")
	} else {
		a.Risk = LevelFromThresholds(*summary.Recent, p.LabPositivity)
	}

	a.Trend = TrendFromRatio(summary.Recent, summary.Prior, p.RisingRatio, p.FallingRatio)
	if a.Trend == schema.TrendUnknown && len(points) > 0 && len(points) < 2*p.RecentWeekly {
		notes = append(notes, fmt.Sprintf("only %d weekly points; trend needs %d", len(points), 2*p.RecentWeekly))
	}

	a.Confidence = ConfidenceFromPoints(len(points), requestedWeeks)
	a.Note = strings.Join(notes, "; ")
	return a
}
