package socrata

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uvceed/pulse-api/utils"
)

const (
	logPrefix  = "socrata"
	defaultURL = "https://data.cdc.gov/resource"

	defaultLimit = 5000
	fetchRetries = 5
	retryBackoff = 1500 * time.Millisecond
)

// WastewaterRow is one NWSS sample record. Socrata serves every field as a
// string; parsing happens at the ingest boundary where unparseable rows are
// dropped.
type WastewaterRow struct {
	SampleCollectDate string `json:"sample_collect_date"`
	CountyFIPS        string `json:"county_fips"`
	PCRTarget         string `json:"pcr_target"`
	SampleLocation    string `json:"sample_location"`
	AvgConc           string `json:"pcr_target_avg_conc"`
	AvgConcLin        string `json:"pcr_target_avg_conc_lin"`
	Units             string `json:"pcr_target_units"`
	RecordID          string `json:"record_id"`
}

// EDVisitRow is one weekly NSSP emergency-department record for a county.
type EDVisitRow struct {
	WeekEnd          string `json:"week_end"`
	County           string `json:"county"`
	FIPS             string `json:"fips"`
	PercentCovid     string `json:"percent_visits_covid"`
	PercentInfluenza string `json:"percent_visits_influenza"`
	PercentRSV       string `json:"percent_visits_rsv"`
	TrendCovid       string `json:"ed_trends_covid"`
	TrendInfluenza   string `json:"ed_trends_influenza"`
	TrendRSV         string `json:"ed_trends_rsv"`
	TrendSource      string `json:"trend_source"`
}

// Socrata - interface to query CDC SODA datasets
type Socrata interface {
	Wastewater(datasetID, countyFIPS, pcrTarget string, since time.Time) ([]WastewaterRow, error)
	EDVisits(datasetID, countyFIPS string, since time.Time) ([]EDVisitRow, error)
}

type socrata struct {
	client   *http.Client
	url      string
	appToken string
}

func (s socrata) Wastewater(datasetID, countyFIPS, pcrTarget string, since time.Time) ([]WastewaterRow, error) {
	query := url.Values{}
	query.Set("$where", fmt.Sprintf(
		"sample_collect_date >= '%s' AND county_fips = '%s' AND pcr_target = '%s'",
		since.Format("2006-01-02"), countyFIPS, pcrTarget))
	query.Set("$order", "sample_collect_date DESC")
	query.Set("$limit", fmt.Sprintf("%d", defaultLimit))
	query.Set("$select", "sample_collect_date,county_fips,pcr_target,sample_location,"+
		"pcr_target_avg_conc,pcr_target_avg_conc_lin,pcr_target_units,record_id")

	var rows []WastewaterRow
	if err := s.get(datasetID, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s socrata) EDVisits(datasetID, countyFIPS string, since time.Time) ([]EDVisitRow, error) {
	query := url.Values{}
	query.Set("$where", fmt.Sprintf(
		"week_end >= '%s' AND fips = '%s'",
		since.Format("2006-01-02"), countyFIPS))
	query.Set("$order", "week_end DESC")
	query.Set("$limit", fmt.Sprintf("%d", defaultLimit))

	var rows []EDVisitRow
	if err := s.get(datasetID, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s socrata) get(datasetID string, query url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/%s.json?%s", s.url, datasetID, query.Encode())

	policy := utils.RetryPolicy{
		Attempts: fetchRetries,
		Backoff:  utils.ExponentialBackoff(retryBackoff),
	}

	return policy.Do(func() error {
		req, err := http.NewRequest(http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		if s.appToken != "" {
			req.Header.Set("X-App-Token", s.appToken)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"dataset": datasetID,
				"error":   err,
			}).Warn("socrata fetch failed")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("socrata dataset %s returned status %d", datasetID, resp.StatusCode)
		}

		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		return json.Unmarshal(body, out)
	})
}

// New - new Socrata interface. An empty endpoint falls back to the public
// CDC SODA base; the app token is optional but raises rate limits.
func New(client *http.Client, endpoint, appToken string) Socrata {
	if endpoint == "" {
		endpoint = defaultURL
	}

	return &socrata{
		client:   client,
		url:      endpoint,
		appToken: appToken,
	}
}
