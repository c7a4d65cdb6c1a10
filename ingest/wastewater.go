package ingest

import (
	"strconv"
	"strings"

	"github.com/uvceed/pulse-api/external/socrata"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/score"
)

const (
	metricConcLin = "pcr_target_avg_conc_lin"
	metricConc    = "pcr_target_avg_conc"

	preferredSampleLocation = "wwtp"
)

// wastewaterDatasets maps each pathogen to its NWSS Socrata dataset and the
// pcr_target value selecting it inside that dataset.
var wastewaterDatasets = []struct {
	pathogen  schema.Pathogen
	datasetID string
	pcrTarget string
}{
	{schema.PathogenCovid, "j9g8-acpt", "sars-cov-2"},
	{schema.PathogenFluA, "ymmh-divb", "fluav"},
	{schema.PathogenRSV, "45cq-cw4i", "rsv"},
}

func (i *Ingestor) assessWastewater(geo *schema.Geo) ([]schema.AssessedSignal, error) {
	assessments := make([]schema.AssessedSignal, 0, len(wastewaterDatasets))
	var lastErr error

	for _, d := range wastewaterDatasets {
		metric := metricConc

		fetch := func(windowDays int) ([]schema.Observation, error) {
			since := i.now().AddDate(0, 0, -windowDays)
			rows, err := i.socrata.Wastewater(d.datasetID, geo.CountyFIPS, d.pcrTarget, since)
			if err != nil {
				return nil, err
			}
			obs, m := wastewaterObservations(rows)
			metric = m
			return obs, nil
		}

		result, err := score.SelectAdaptiveWindow(fetch, d.pathogen, metric, i.params)
		if err != nil {
			reportSkip(geo, schema.SignalWastewater, d.pathogen, err)
			lastErr = err
			continue
		}

		result.Assessment.Metric = metric
		assessments = append(assessments, score.Assess(result.Assessment))
	}

	return assessments, lastErr
}

// wastewaterObservations converts raw sample rows to observations. Rows taken
// at a treatment plant are preferred; upstream/community sites only count when
// no wwtp rows exist in the window. Per row the linear-scale concentration is
// preferred over the log-derived one, and the metric name reports which field
// the series was built from.
func wastewaterObservations(rows []socrata.WastewaterRow) ([]schema.Observation, string) {
	preferred := make([]socrata.WastewaterRow, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.SampleLocation), preferredSampleLocation) {
			preferred = append(preferred, r)
		}
	}
	if len(preferred) > 0 {
		rows = preferred
	}

	obs := make([]schema.Observation, 0, len(rows))
	sawLin := false
	for _, r := range rows {
		day, err := parseDay(r.SampleCollectDate)
		if err != nil {
			continue
		}

		value := parseFloat(r.AvgConcLin)
		if value != nil {
			sawLin = true
		} else {
			value = parseFloat(r.AvgConc)
		}

		obs = append(obs, schema.Observation{
			Day:      day,
			Value:    value,
			GroupKey: r.RecordID,
		})
	}

	metric := metricConc
	if sawLin {
		metric = metricConcLin
	}
	return obs, metric
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
