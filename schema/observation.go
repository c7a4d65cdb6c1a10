package schema

import "time"

// Observation is one raw measurement as fetched from an upstream dataset.
// Daily signals fill Day; epiweek signals fill Epiweek (year*100+week).
// Value is nil when the upstream field was missing or unparseable; such
// observations are dropped during series building. Observations are never
// mutated after creation.
type Observation struct {
	Day      time.Time
	Epiweek  int
	Value    *float64
	Label    string
	Issue    int
	GroupKey string
}

// DailyPoint is one resolved value per calendar day. N is the number of raw
// observations that contributed to the bucket.
type DailyPoint struct {
	Day    time.Time `json:"day" bson:"day"`
	Value  float64   `json:"value" bson:"value"`
	Metric string    `json:"metric,omitempty" bson:"metric,omitempty"`
	N      int       `json:"n" bson:"n"`
}

// WeeklyPoint is one resolved value per epiweek.
type WeeklyPoint struct {
	Epiweek int     `json:"epiweek" bson:"epiweek"`
	Value   float64 `json:"value" bson:"value"`
	N       int     `json:"n" bson:"n"`
}

// DirectionPoint is one resolved direction label per reporting week, with the
// per-label counts the mode was drawn from.
type DirectionPoint struct {
	Week   time.Time      `json:"week" bson:"week"`
	Label  string         `json:"label" bson:"label"`
	Counts map[string]int `json:"counts,omitempty" bson:"counts,omitempty"`
	N      int            `json:"n" bson:"n"`
}
