package schema

const (
	GeoCollection = "geo"
)

// Geo is the one structured record produced by ZIP resolution. Every field is
// resolved before the pipeline runs; consumers never re-derive geography.
type Geo struct {
	ZipCode    string  `json:"zip_code" bson:"zip_code"`
	Place      string  `json:"place" bson:"place"`
	StateAbbr  string  `json:"state_abbr" bson:"state_abbr"`
	StateName  string  `json:"state_name" bson:"state_name"`
	Latitude   float64 `json:"latitude" bson:"latitude"`
	Longitude  float64 `json:"longitude" bson:"longitude"`
	CountyName string  `json:"county_name" bson:"county_name"`
	CountyFIPS string  `json:"county_fips" bson:"county_fips"`
}
