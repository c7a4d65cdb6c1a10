package fcc

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	logPrefix  = "fcc"
	defaultURL = "https://geo.fcc.gov/api/census/block/find"
)

var (
	errNoCounty = fmt.Errorf("no county found for coordinates")

	fipsPattern = regexp.MustCompile(`^\d{5}$`)
)

// County is the census county containing a coordinate pair.
type County struct {
	Name string
	FIPS string
}

// FCC - interface to resolve coordinates to a census county
type FCC interface {
	Find(latitude, longitude float64) (*County, error)
}

type fcc struct {
	client *http.Client
	url    string
}

type jsonCounty struct {
	Name string `json:"name"`
	FIPS string `json:"FIPS"`
}

type jsonResponse struct {
	County jsonCounty `json:"County"`
}

func (f fcc) Find(latitude, longitude float64) (*County, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("latitude", fmt.Sprintf("%f", latitude))
	query.Set("longitude", fmt.Sprintf("%f", longitude))
	query.Set("showall", "false")

	resp, err := f.client.Get(fmt.Sprintf("%s?%s", f.url, query.Encode()))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"lat":    latitude,
			"lng":    longitude,
			"error":  err,
		}).Warn("fcc block lookup failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fcc block api returned status %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload jsonResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	if payload.County.Name == "" || !fipsPattern.MatchString(payload.County.FIPS) {
		return nil, errNoCounty
	}

	return &County{
		Name: payload.County.Name,
		FIPS: payload.County.FIPS,
	}, nil
}

// New - new FCC interface
func New(client *http.Client, endpoint string) FCC {
	if endpoint == "" {
		endpoint = defaultURL
	}

	return &fcc{
		client: client,
		url:    endpoint,
	}
}
