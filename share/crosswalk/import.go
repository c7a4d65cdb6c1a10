package crosswalk

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uvceed/pulse-api/consts"
	"github.com/uvceed/pulse-api/schema"
)

// Record is one row of the HUD USPS ZIP-county crosswalk file. A ZIP that
// spans county lines appears once per county with the share of residential
// addresses falling in each.
type Record struct {
	Zip        string  `json:"zip"`
	CountyFIPS string  `json:"county"`
	City       string  `json:"usps_zip_pref_city"`
	StateAbbr  string  `json:"usps_zip_pref_state"`
	ResRatio   float64 `json:"res_ratio"`
}

type Crosswalk struct {
	Data []Record `json:"data"`
}

// pickCounties keeps one county per ZIP, the one with the largest share of
// residential addresses.
func pickCounties(records []Record) (map[string]Record, error) {
	best := make(map[string]Record)
	for _, r := range records {
		if len(r.Zip) != 5 || len(r.CountyFIPS) != 5 {
			return nil, fmt.Errorf("invalid crosswalk row: zip=%q county=%q", r.Zip, r.CountyFIPS)
		}
		if current, ok := best[r.Zip]; !ok || r.ResRatio > current.ResRatio {
			best[r.Zip] = r
		}
	}
	return best, nil
}

// Import seeds the geo cache from a HUD crosswalk file. Each ZIP maps to the
// county holding the largest share of its residential addresses.
func Import(client *mongo.Client, dbName, crosswalkFile string) (int, error) {
	file, err := os.Open(crosswalkFile)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var result Crosswalk
	if err := json.NewDecoder(file).Decode(&result); err != nil {
		return 0, err
	}

	best, err := pickCounties(result.Data)
	if err != nil {
		return 0, err
	}

	c := client.Database(dbName).Collection(schema.GeoCollection)
	upsert := options.Update().SetUpsert(true)

	imported := 0
	for zip, r := range best {
		// Coordinates and county name come from the resolvers later; the
		// crosswalk only sets what it knows.
		if _, err := c.UpdateOne(context.Background(),
			bson.M{"zip_code": zip},
			bson.M{"$set": bson.M{
				"zip_code":    zip,
				"place":       strings.Title(strings.ToLower(r.City)),
				"state_abbr":  r.StateAbbr,
				"state_name":  consts.StateName(r.StateAbbr),
				"county_fips": r.CountyFIPS,
			}},
			upsert,
		); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}
