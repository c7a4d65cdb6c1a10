package zippopotam

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	logPrefix  = "zippopotam"
	defaultURL = "https://api.zippopotam.us/us"
)

var (
	ErrZipNotFound = fmt.Errorf("zip code not found")
	errNoPlaces    = fmt.Errorf("zip code returned no places")
)

// Place is the resolved locality for a ZIP code.
type Place struct {
	Name      string
	StateAbbr string
	StateName string
	Latitude  float64
	Longitude float64
}

// Zippopotam - interface to resolve a US ZIP to a place and coordinates
type Zippopotam interface {
	Get(zipCode string) (*Place, error)
}

type zippopotam struct {
	client *http.Client
	url    string
}

type jsonPlace struct {
	PlaceName string `json:"place name"`
	State     string `json:"state"`
	StateAbbr string `json:"state abbreviation"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type jsonResponse struct {
	PostCode string      `json:"post code"`
	Places   []jsonPlace `json:"places"`
}

func (z zippopotam) Get(zipCode string) (*Place, error) {
	resp, err := z.client.Get(fmt.Sprintf("%s/%s", z.url, zipCode))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"zip":    zipCode,
			"error":  err,
		}).Warn("zippopotam fetch failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrZipNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zippopotam returned status %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload jsonResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	if len(payload.Places) == 0 {
		return nil, errNoPlaces
	}

	p := payload.Places[0]
	lat, err := strconv.ParseFloat(p.Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("zippopotam returned invalid latitude: %s", p.Latitude)
	}
	lng, err := strconv.ParseFloat(p.Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("zippopotam returned invalid longitude: %s", p.Longitude)
	}

	return &Place{
		Name:      p.PlaceName,
		StateAbbr: p.StateAbbr,
		StateName: p.State,
		Latitude:  lat,
		Longitude: lng,
	}, nil
}

// New - new Zippopotam interface
func New(client *http.Client, endpoint string) Zippopotam {
	if endpoint == "" {
		endpoint = defaultURL
	}

	return &zippopotam{
		client: client,
		url:    endpoint,
	}
}
