package score

import (
	"sort"
	"strings"
	"time"

	"github.com/uvceed/pulse-api/schema"
)

// BuildDailySeries resolves raw daily observations into one point per
// calendar day, ascending. Values for the same day are reduced to their
// median; observations without a parseable value are dropped. N records how
// many raw observations contributed to the day.
func BuildDailySeries(obs []schema.Observation) []schema.DailyPoint {
	byDay := make(map[time.Time][]float64)
	for _, o := range obs {
		if o.Value == nil || o.Day.IsZero() {
			continue
		}
		day := o.Day.Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], *o.Value)
	}

	points := make([]schema.DailyPoint, 0, len(byDay))
	for day, values := range byDay {
		m, ok := Median(values)
		if !ok {
			continue
		}
		points = append(points, schema.DailyPoint{
			Day:   day,
			Value: m,
			N:     len(values),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Day.Before(points[j].Day)
	})
	return points
}

// BuildWeeklySeries resolves raw epiweek observations into one point per
// epiweek, ascending. When revisions are present (Issue > 0), only
// observations carrying the maximum issue for that epiweek survive; the
// remainder are reduced to their median.
func BuildWeeklySeries(obs []schema.Observation) []schema.WeeklyPoint {
	maxIssue := make(map[int]int)
	for _, o := range obs {
		if o.Epiweek == 0 {
			continue
		}
		if o.Issue > maxIssue[o.Epiweek] {
			maxIssue[o.Epiweek] = o.Issue
		}
	}

	byWeek := make(map[int][]float64)
	for _, o := range obs {
		if o.Value == nil || o.Epiweek == 0 {
			continue
		}
		if o.Issue < maxIssue[o.Epiweek] {
			continue
		}
		byWeek[o.Epiweek] = append(byWeek[o.Epiweek], *o.Value)
	}

	points := make([]schema.WeeklyPoint, 0, len(byWeek))
	for week, values := range byWeek {
		m, ok := Median(values)
		if !ok {
			continue
		}
		points = append(points, schema.WeeklyPoint{
			Epiweek: week,
			Value:   m,
			N:       len(values),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Epiweek < points[j].Epiweek
	})
	return points
}

// BuildDirectionSeries resolves direction-coded observations into one label
// per reporting week, ascending, using the statistical mode. Ties break
// toward the label seen first in input order; the per-label counts are kept
// for inspection.
func BuildDirectionSeries(obs []schema.Observation) []schema.DirectionPoint {
	type bucket struct {
		counts    map[string]int
		firstSeen map[string]int
		order     int
	}

	byWeek := make(map[time.Time]*bucket)
	seen := 0
	for _, o := range obs {
		label := NormalizeDirection(o.Label)
		if label == "" || o.Day.IsZero() {
			continue
		}
		week := o.Day.Truncate(24 * time.Hour)
		b, ok := byWeek[week]
		if !ok {
			b = &bucket{counts: map[string]int{}, firstSeen: map[string]int{}}
			byWeek[week] = b
		}
		if _, ok := b.firstSeen[label]; !ok {
			b.firstSeen[label] = seen
		}
		b.counts[label]++
		seen++
	}

	points := make([]schema.DirectionPoint, 0, len(byWeek))
	for week, b := range byWeek {
		points = append(points, schema.DirectionPoint{
			Week:   week,
			Label:  modeLabel(b.counts, b.firstSeen),
			Counts: b.counts,
			N:      total(b.counts),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Week.Before(points[j].Week)
	})
	return points
}

func modeLabel(counts map[string]int, firstSeen map[string]int) string {
	best := ""
	for label, count := range counts {
		if best == "" {
			best = label
			continue
		}
		if count > counts[best] || (count == counts[best] && firstSeen[label] < firstSeen[best]) {
			best = label
		}
	}
	return best
}

func total(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

// NormalizeDirection maps the raw NSSP trend labels onto the three canonical
// directions. Placeholders like "Data Unavailable" normalize to "".
func NormalizeDirection(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "increasing":
		return DirectionIncreasing
	case "decreasing":
		return DirectionDecreasing
	case "no change", "nochange", "stable":
		return DirectionNoChange
	default:
		return ""
	}
}

// CombinedValue is the combined pseudo-metric for one raw row: the sum of
// the per-pathogen percents. It is nil unless every input is present, since
// a partial sum would understate combined activity.
func CombinedValue(values ...*float64) *float64 {
	sum := 0.0
	for _, v := range values {
		if v == nil {
			return nil
		}
		sum += *v
	}
	return &sum
}

// MajorityDirection resolves the combined direction for one raw row from the
// per-pathogen labels: majority vote, with ties broken toward movement over
// "No Change" and toward "Increasing" over "Decreasing".
func MajorityDirection(labels ...string) string {
	counts := map[string]int{}
	for _, l := range labels {
		if n := NormalizeDirection(l); n != "" {
			counts[n]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	byPreference := []string{DirectionIncreasing, DirectionDecreasing, DirectionNoChange}
	best := ""
	for _, label := range byPreference {
		if _, ok := counts[label]; !ok {
			continue
		}
		if best == "" || counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

// TrimTrailing drops the most recent n points from a daily series. Same-day
// and next-day wastewater reporting is usually incomplete, so the trailing
// buckets are removed before classification and confidence read the series.
// Series no longer than n are returned untouched rather than emptied.
func TrimTrailing(points []schema.DailyPoint, n int) []schema.DailyPoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[:len(points)-n]
}
