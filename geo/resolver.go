package geo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"googlemaps.github.io/maps"

	"github.com/uvceed/pulse-api/consts"
	"github.com/uvceed/pulse-api/external/fcc"
	"github.com/uvceed/pulse-api/external/zippopotam"
	"github.com/uvceed/pulse-api/schema"
)

var (
	ErrZipNotFound            = fmt.Errorf("zip code could not be resolved")
	ErrInvalidZip             = fmt.Errorf("invalid zip code")
	ErrResolverNotInitialized = fmt.Errorf("zip resolver is not initialized")
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ZipResolver - interface for resolving a five-digit US ZIP into the full
// geography the ingestion pipeline needs (state for Delphi queries, county
// FIPS for Socrata queries).
type ZipResolver interface {
	Resolve(zipCode string) (*schema.Geo, error)
}

var defaultResolver ZipResolver

type MultipleResolverErrors struct {
	errors []error
}

func (e *MultipleResolverErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

func NewMultipleResolverErrors(errors []error) *MultipleResolverErrors {
	return &MultipleResolverErrors{
		errors: errors,
	}
}

// MongodbZipResolver answers from the pre-seeded geo cache collection.
type MongodbZipResolver struct {
	client   *mongo.Client
	database string
}

func NewMongodbZipResolver(client *mongo.Client, database string) *MongodbZipResolver {
	return &MongodbZipResolver{
		client:   client,
		database: database,
	}
}

func (r *MongodbZipResolver) Resolve(zipCode string) (*schema.Geo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var geo schema.Geo
	if err := r.client.Database(r.database).Collection(schema.GeoCollection).FindOne(ctx, bson.M{
		"zip_code": zipCode,
	}).Decode(&geo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrZipNotFound
		}
		return nil, err
	}

	return &geo, nil
}

// WebZipResolver chains Zippopotam (ZIP to place and coordinates) with the
// FCC census block API (coordinates to county FIPS).
type WebZipResolver struct {
	zippopotam zippopotam.Zippopotam
	fcc        fcc.FCC
}

func NewWebZipResolver(z zippopotam.Zippopotam, f fcc.FCC) *WebZipResolver {
	return &WebZipResolver{
		zippopotam: z,
		fcc:        f,
	}
}

func (r *WebZipResolver) Resolve(zipCode string) (*schema.Geo, error) {
	place, err := r.zippopotam.Get(zipCode)
	if err != nil {
		if err == zippopotam.ErrZipNotFound {
			return nil, ErrZipNotFound
		}
		return nil, err
	}

	county, err := r.fcc.Find(place.Latitude, place.Longitude)
	if err != nil {
		return nil, err
	}

	stateName := place.StateName
	if stateName == "" {
		stateName = consts.StateName(place.StateAbbr)
	}

	return &schema.Geo{
		ZipCode:    zipCode,
		Place:      place.Name,
		StateAbbr:  place.StateAbbr,
		StateName:  stateName,
		Latitude:   place.Latitude,
		Longitude:  place.Longitude,
		CountyName: county.Name,
		CountyFIPS: county.FIPS,
	}, nil
}

// GeocodingZipResolver is the paid fallback when Zippopotam has no record
// for a ZIP. Google knows the place and coordinates; county FIPS still comes
// from the FCC.
type GeocodingZipResolver struct {
	client *maps.Client
	fcc    fcc.FCC
}

func NewGeocodingZipResolver(client *maps.Client, f fcc.FCC) *GeocodingZipResolver {
	return &GeocodingZipResolver{
		client: client,
		fcc:    f,
	}
}

func (r *GeocodingZipResolver) Resolve(zipCode string) (*schema.Geo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{
		Components: map[maps.Component]string{
			maps.ComponentPostalCode: zipCode,
			maps.ComponentCountry:    "US",
		},
		Language: "en",
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrZipNotFound
	}

	geo := schema.Geo{
		ZipCode:   zipCode,
		Latitude:  results[0].Geometry.Location.Lat,
		Longitude: results[0].Geometry.Location.Lng,
	}
	for _, a := range results[0].AddressComponents {
		if len(a.Types) == 0 {
			continue
		}
		switch a.Types[0] {
		case "locality", "sublocality":
			geo.Place = a.LongName
		case "administrative_area_level_1":
			geo.StateName = a.LongName
			geo.StateAbbr = a.ShortName
		case "administrative_area_level_2":
			geo.CountyName = a.LongName
		}
	}

	county, err := r.fcc.Find(geo.Latitude, geo.Longitude)
	if err != nil {
		return nil, err
	}
	geo.CountyName = county.Name
	geo.CountyFIPS = county.FIPS

	return &geo, nil
}

// MultipleZipResolver tries each resolver in order until one succeeds.
type MultipleZipResolver struct {
	resolvers []ZipResolver
}

func NewMultipleZipResolver(resolvers ...ZipResolver) *MultipleZipResolver {
	return &MultipleZipResolver{
		resolvers: resolvers,
	}
}

func (r *MultipleZipResolver) Resolve(zipCode string) (*schema.Geo, error) {
	var errors []error
	notFound := 0
	for _, resolver := range r.resolvers {
		geo, err := resolver.Resolve(zipCode)
		if err != nil {
			if err == ErrZipNotFound {
				notFound++
			}
			errors = append(errors, err)
		} else {
			return geo, nil
		}
	}

	// A well-formed ZIP no resolver knows is the caller's problem, not a
	// chain failure. Keep the sentinel so handlers can tell them apart.
	if len(errors) > 0 && notFound == len(errors) {
		return nil, ErrZipNotFound
	}

	return nil, NewMultipleResolverErrors(errors)
}

// CachingZipResolver writes every successful resolution back to the mongo
// geo collection so later lookups stay local.
type CachingZipResolver struct {
	inner    ZipResolver
	client   *mongo.Client
	database string
}

func NewCachingZipResolver(inner ZipResolver, client *mongo.Client, database string) *CachingZipResolver {
	return &CachingZipResolver{
		inner:    inner,
		client:   client,
		database: database,
	}
}

func (r *CachingZipResolver) Resolve(zipCode string) (*schema.Geo, error) {
	geo, err := r.inner.Resolve(zipCode)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// cache write failures do not fail the resolution
	_, _ = r.client.Database(r.database).Collection(schema.GeoCollection).UpdateOne(ctx,
		bson.M{"zip_code": geo.ZipCode},
		bson.M{"$set": geo},
		options.Update().SetUpsert(true),
	)

	return geo, nil
}

// ValidZip reports whether the input is a five-digit US ZIP.
func ValidZip(zipCode string) bool {
	return zipPattern.MatchString(zipCode)
}

func SetZipResolver(resolver ZipResolver) {
	defaultResolver = resolver
}

// ResolveZip validates and resolves through the configured default resolver.
// An invalid ZIP is a hard error surfaced before any pipeline runs.
func ResolveZip(zipCode string) (*schema.Geo, error) {
	if !zipPattern.MatchString(zipCode) {
		return nil, ErrInvalidZip
	}
	if defaultResolver == nil {
		return nil, ErrResolverNotInitialized
	}

	return defaultResolver.Resolve(zipCode)
}
