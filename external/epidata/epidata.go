package epidata

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uvceed/pulse-api/utils"
)

const (
	logPrefix  = "epidata"
	defaultURL = "https://delphi.cmu.edu/epidata"

	resultOK     = 1
	fetchRetries = 5
	retryBackoff = 700 * time.Millisecond
)

var (
	errResponseStatus = fmt.Errorf("epidata response status not ok")
)

// FluViewRow is one ILINet record for a (region, epiweek, issue).
type FluViewRow struct {
	Region  string   `json:"region"`
	Epiweek int      `json:"epiweek"`
	Issue   int      `json:"issue"`
	WILI    *float64 `json:"wili"`
	ILI     *float64 `json:"ili"`
}

// ClinicalRow is one FluView clinical lab record.
type ClinicalRow struct {
	Region          string   `json:"region"`
	Epiweek         int      `json:"epiweek"`
	Issue           int      `json:"issue"`
	TotalSpecimens  *float64 `json:"total_specimens"`
	PercentPositive *float64 `json:"percent_positive"`
}

// Epidata - interface to query the Delphi Epidata API
type Epidata interface {
	FluView(region string, epiweeks []int) ([]FluViewRow, error)
	FluViewClinical(region string, epiweeks []int) ([]ClinicalRow, error)
}

type epidata struct {
	client *http.Client
	url    string
}

type jsonResponse struct {
	Result  int             `json:"result"`
	Epidata json.RawMessage `json:"epidata"`
	Message string          `json:"message"`
}

func (e epidata) FluView(region string, epiweeks []int) ([]FluViewRow, error) {
	var rows []FluViewRow
	if err := e.get("fluview", region, epiweeks, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (e epidata) FluViewClinical(region string, epiweeks []int) ([]ClinicalRow, error) {
	var rows []ClinicalRow
	if err := e.get("fluview_clinical", region, epiweeks, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// get queries one Delphi endpoint with an explicit epiweek list (a numeric
// range would sweep up the nonexistent weeks 53-99 across a year boundary),
// retrying with linear backoff. Delphi reports failure in-band via
// result != 1, which counts as a failed attempt.
func (e epidata) get(endpoint, region string, epiweeks []int, out interface{}) error {
	weeks := make([]string, len(epiweeks))
	for i, w := range epiweeks {
		weeks[i] = strconv.Itoa(w)
	}

	query := url.Values{}
	query.Set("regions", region)
	query.Set("epiweeks", strings.Join(weeks, ","))

	reqURL := fmt.Sprintf("%s/%s/?%s", e.url, endpoint, query.Encode())

	policy := utils.RetryPolicy{
		Attempts: fetchRetries,
		Backoff:  utils.LinearBackoff(retryBackoff),
	}

	return policy.Do(func() error {
		resp, err := e.client.Get(reqURL)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix":   logPrefix,
				"endpoint": endpoint,
				"region":   region,
				"error":    err,
			}).Warn("epidata fetch failed")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("epidata %s returned status %d", endpoint, resp.StatusCode)
		}

		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		var payload jsonResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return err
		}

		if payload.Result != resultOK {
			log.WithFields(log.Fields{
				"prefix":   logPrefix,
				"endpoint": endpoint,
				"result":   payload.Result,
				"message":  payload.Message,
			}).Warn("epidata result not ok")
			return fmt.Errorf("%w: result=%d message=%s", errResponseStatus, payload.Result, payload.Message)
		}

		return json.Unmarshal(payload.Epidata, out)
	})
}

// New - new Epidata interface. An empty endpoint falls back to the public
// Delphi API.
func New(client *http.Client, endpoint string) Epidata {
	if endpoint == "" {
		endpoint = defaultURL
	}

	return &epidata{
		client: client,
		url:    endpoint,
	}
}
