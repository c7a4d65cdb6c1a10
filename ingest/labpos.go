package ingest

import (
	"strings"

	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/utils"
)

const metricPercentPositive = "percent_positive"

func (i *Ingestor) assessFluLab(geo *schema.Geo) ([]schema.AssessedSignal, error) {
	region := strings.ToLower(geo.StateAbbr)

	rows, err := i.epidata.FluViewClinical(region, utils.EpiweeksBack(i.now(), i.labWeeks))
	if err != nil {
		return nil, err
	}

	obs := make([]schema.Observation, 0, len(rows))
	for _, r := range rows {
		obs = append(obs, schema.Observation{Epiweek: r.Epiweek, Issue: r.Issue, Value: r.PercentPositive})
	}

	points := score.BuildWeeklySeries(obs)
	assessment := score.AssessLabPositivity(points, i.labWeeks, metricPercentPositive, i.params)

	return []schema.AssessedSignal{score.Assess(assessment)}, nil
}
