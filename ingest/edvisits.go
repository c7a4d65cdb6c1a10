package ingest

import (
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/utils"
)

const nsspDataset = "rdmq-nq56"

var (
	nsspPathogens = []schema.Pathogen{
		schema.PathogenCovid,
		schema.PathogenFlu,
		schema.PathogenRSV,
		schema.PathogenCombined,
	}

	nsspPercentMetrics = map[schema.Pathogen]string{
		schema.PathogenCovid:    "percent_visits_covid",
		schema.PathogenFlu:      "percent_visits_influenza",
		schema.PathogenRSV:      "percent_visits_rsv",
		schema.PathogenCombined: "percent_visits_combined",
	}

	nsspTrendMetrics = map[schema.Pathogen]string{
		schema.PathogenCovid:    "ed_trends_covid",
		schema.PathogenFlu:      "ed_trends_influenza",
		schema.PathogenRSV:      "ed_trends_rsv",
		schema.PathogenCombined: "ed_trends_combined",
	}
)

// assessEDVisits produces two assessments per pathogen from one dataset
// fetch: the numeric percent-of-visits classification and the reported
// direction-label classification. The combined pseudo-pathogen sums the
// percents and majority-votes the labels row by row before series building.
func (i *Ingestor) assessEDVisits(geo *schema.Geo) ([]schema.AssessedSignal, error) {
	// +3 days so a week_end on the boundary is not cut off
	since := i.now().AddDate(0, 0, -(i.nsspWeeks*7 + 3))
	rows, err := i.socrata.EDVisits(nsspDataset, geo.CountyFIPS, since)
	if err != nil {
		return nil, err
	}

	numeric := make(map[schema.Pathogen][]schema.Observation)
	direction := make(map[schema.Pathogen][]schema.Observation)

	for _, r := range rows {
		// NSSP spells county names its own way ("DeKalb" vs "DeKalb
		// County"); drop rows naming a different county than the
		// resolver gave us instead of trusting the fips filter blindly.
		if r.County != "" && geo.CountyName != "" && !utils.SameCounty(r.County, geo.CountyName) {
			continue
		}

		day, err := parseDay(r.WeekEnd)
		if err != nil {
			continue
		}

		pc := parseFloat(r.PercentCovid)
		pf := parseFloat(r.PercentInfluenza)
		pr := parseFloat(r.PercentRSV)

		numeric[schema.PathogenCovid] = append(numeric[schema.PathogenCovid], schema.Observation{Day: day, Value: pc})
		numeric[schema.PathogenFlu] = append(numeric[schema.PathogenFlu], schema.Observation{Day: day, Value: pf})
		numeric[schema.PathogenRSV] = append(numeric[schema.PathogenRSV], schema.Observation{Day: day, Value: pr})
		numeric[schema.PathogenCombined] = append(numeric[schema.PathogenCombined], schema.Observation{Day: day, Value: score.CombinedValue(pc, pf, pr)})

		direction[schema.PathogenCovid] = append(direction[schema.PathogenCovid], schema.Observation{Day: day, Label: r.TrendCovid})
		direction[schema.PathogenFlu] = append(direction[schema.PathogenFlu], schema.Observation{Day: day, Label: r.TrendInfluenza})
		direction[schema.PathogenRSV] = append(direction[schema.PathogenRSV], schema.Observation{Day: day, Label: r.TrendRSV})
		direction[schema.PathogenCombined] = append(direction[schema.PathogenCombined], schema.Observation{Day: day, Label: score.MajorityDirection(r.TrendCovid, r.TrendInfluenza, r.TrendRSV)})
	}

	assessments := make([]schema.AssessedSignal, 0, 2*len(nsspPathogens))
	for _, p := range nsspPathogens {
		points := score.BuildDailySeries(numeric[p])
		assessments = append(assessments, score.Assess(
			score.AssessEDPercent(points, i.nsspWeeks, p, nsspPercentMetrics[p], i.params)))

		dirPoints := score.BuildDirectionSeries(direction[p])
		assessments = append(assessments, score.Assess(
			score.AssessEDDirection(dirPoints, i.nsspWeeks, p, nsspTrendMetrics[p], i.params)))
	}

	return assessments, nil
}
