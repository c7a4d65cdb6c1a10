package ingest

import (
	"strings"

	"github.com/uvceed/pulse-api/external/epidata"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/utils"
)

const (
	metricWILI = "wili"
	metricILI  = "ili"
)

func (i *Ingestor) assessILINet(geo *schema.Geo) ([]schema.AssessedSignal, error) {
	region := strings.ToLower(geo.StateAbbr)

	rows, err := i.epidata.FluView(region, utils.EpiweeksBack(i.now(), i.ilinetWeeks))
	if err != nil {
		return nil, err
	}

	obs, metric := ilinetObservations(rows)
	points := score.BuildWeeklySeries(obs)
	assessment := score.AssessILINet(points, i.ilinetWeeks, metric, i.params)

	return []schema.AssessedSignal{score.Assess(assessment)}, nil
}

// ilinetObservations prefers the weighted ILI series; the unweighted one is
// only used when no row in the window carries a wili value.
func ilinetObservations(rows []epidata.FluViewRow) ([]schema.Observation, string) {
	wili := make([]schema.Observation, 0, len(rows))
	ili := make([]schema.Observation, 0, len(rows))
	sawWILI := false

	for _, r := range rows {
		if r.WILI != nil {
			sawWILI = true
		}
		wili = append(wili, schema.Observation{Epiweek: r.Epiweek, Issue: r.Issue, Value: r.WILI})
		ili = append(ili, schema.Observation{Epiweek: r.Epiweek, Issue: r.Issue, Value: r.ILI})
	}

	if sawWILI {
		return wili, metricWILI
	}
	return ili, metricILI
}
