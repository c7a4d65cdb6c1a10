package score

import (
	"fmt"
	"strings"

	"github.com/uvceed/pulse-api/schema"
)

// AssessEDPercent summarizes a weekly percent-of-ED-visits series for one
// pathogen (or the combined pseudo-metric). Buckets are week-ending dates,
// so the series arrives as daily points one week apart.
func AssessEDPercent(points []schema.DailyPoint, requestedWeeks int, pathogen schema.Pathogen, metric string, p Params) schema.RiskAssessment {
	summary := Compare(DailyValues(points), p.RecentWeekly, p.RecentWeekly)

	a := schema.RiskAssessment{
		SignalType: schema.SignalNSSPEDVisit,
		Pathogen:   pathogen,
		Metric:     metric,
		Risk:       schema.RiskUnknown,
		Trend:      schema.TrendUnknown,
		Recent:     summary.Recent,
		Prior:      summary.Prior,
		PointsUsed: len(points),
	}

	var notes []string

	if summary.Recent == nil {
		notes = append(notes, "no NSSP ED visit records for this county in the requested window")
	} else {
		a.Risk = LevelFromThresholds(*summary.Recent, p.EDVisits[pathogen])
	}

	a.Trend = TrendFromRatio(summary.Recent, summary.Prior, p.RisingRatio, p.FallingRatio)
	if a.Trend == schema.TrendUnknown && len(points) > 0 && len(points) < 2*p.RecentWeekly {
		notes = append(notes, fmt.Sprintf("only %d weekly points; trend needs %d", len(points), 2*p.RecentWeekly))
	}

	a.Confidence = ConfidenceFromPoints(len(points), requestedWeeks)
	a.Note = strings.Join(notes, "; ")
	return a
}

// AssessEDDirection summarizes a direction-coded ED trend series. The three
// most recent resolved labels are reduced to their mode for the risk level;
// trend compares that mode against the mode of the three labels before it.
func AssessEDDirection(points []schema.DirectionPoint, requestedWeeks int, pathogen schema.Pathogen, metric string, p Params) schema.RiskAssessment {
	a := schema.RiskAssessment{
		SignalType: schema.SignalNSSPEDVisit,
		Pathogen:   pathogen,
		Metric:     metric,
		Risk:       schema.RiskUnknown,
		Trend:      schema.TrendUnknown,
		PointsUsed: len(points),
	}

	var notes []string

	var lastMode, prevMode string
	if len(points) >= 3 {
		lastMode = windowMode(points, len(points)-3, len(points))
	}
	if len(points) >= 6 {
		prevMode = windowMode(points, len(points)-6, len(points)-3)
	}

	switch {
	case len(points) == 0:
		notes = append(notes, "no NSSP ED trend records for this county in the requested window")
	case lastMode == "":
		notes = append(notes, fmt.Sprintf("only %d weekly points; direction mode needs 3", len(points)))
	default:
		a.Risk = LevelFromDirection(lastMode)
	}

	a.Trend = TrendFromDirections(prevMode, lastMode)
	if a.Trend == schema.TrendUnknown && len(points) > 0 && len(points) < 6 {
		notes = append(notes, "sparse weekly records; trend may be unreliable")
	}

	a.Confidence = ConfidenceFromPoints(len(points), requestedWeeks)
	a.Note = strings.Join(notes, "; ")
	return a
}

// windowMode resolves the mode label over points[lo:hi], ties broken toward
// the earlier point. Out-of-range bounds shrink to the available series; an
// empty window resolves to "".
func windowMode(points []schema.DirectionPoint, lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(points) {
		hi = len(points)
	}
	if lo >= hi {
		return ""
	}

	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, p := range points[lo:hi] {
		if _, ok := firstSeen[p.Label]; !ok {
			firstSeen[p.Label] = i
		}
		counts[p.Label]++
	}
	return modeLabel(counts, firstSeen)
}
