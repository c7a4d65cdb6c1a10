package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uvceed/pulse-api/schema"
)

var (
	ErrGeoNotFound = fmt.Errorf("no geo record for zip code")
)

// GeoCache - interface for the resolved-geography cache
type GeoCache interface {
	GetGeo(zipCode string) (*schema.Geo, error)
	UpsertGeo(geo schema.Geo) error
	ListGeos(countyFIPS string) ([]schema.Geo, error)
}

// GetGeo - fetch cached geography for a zip code
func (m *mongoDB) GetGeo(zipCode string) (*schema.Geo, error) {
	c := m.client.Database(m.database).Collection(schema.GeoCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var geo schema.Geo
	err := c.FindOne(ctx, bson.M{"zip_code": zipCode}).Decode(&geo)
	if nil != err {
		if err == mongo.ErrNoDocuments {
			return nil, ErrGeoNotFound
		}
		return nil, err
	}

	return &geo, nil
}

// UpsertGeo - write resolved geography into the cache
func (m *mongoDB) UpsertGeo(geo schema.Geo) error {
	c := m.client.Database(m.database).Collection(schema.GeoCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := c.UpdateOne(ctx,
		bson.M{"zip_code": geo.ZipCode},
		bson.M{"$set": geo},
		options.Update().SetUpsert(true),
	)
	if nil != err {
		return err
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("upsert geo for zip %s, matched: %d", geo.ZipCode, result.MatchedCount)

	return nil
}

// ListGeos - all cached zip codes inside a county
func (m *mongoDB) ListGeos(countyFIPS string) ([]schema.Geo, error) {
	c := m.client.Database(m.database).Collection(schema.GeoCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cur, err := c.Find(ctx, bson.M{"county_fips": countyFIPS})
	if nil != err {
		return nil, err
	}

	geos := make([]schema.Geo, 0)
	for cur.Next(ctx) {
		var g schema.Geo
		if err := cur.Decode(&g); nil != err {
			return nil, err
		}
		geos = append(geos, g)
	}

	return geos, nil
}
