package crosswalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickCountiesPrefersLargestResidentialShare(t *testing.T) {
	records := []Record{
		{Zip: "30341", CountyFIPS: "13089", City: "ATLANTA", StateAbbr: "GA", ResRatio: 0.82},
		{Zip: "30341", CountyFIPS: "13121", City: "ATLANTA", StateAbbr: "GA", ResRatio: 0.18},
		{Zip: "10001", CountyFIPS: "36061", City: "NEW YORK", StateAbbr: "NY", ResRatio: 1.0},
	}

	best, err := pickCounties(records)
	assert.NoError(t, err)
	assert.Len(t, best, 2)
	assert.Equal(t, "13089", best["30341"].CountyFIPS)
	assert.Equal(t, "36061", best["10001"].CountyFIPS)
}

func TestPickCountiesOrderIndependent(t *testing.T) {
	records := []Record{
		{Zip: "30341", CountyFIPS: "13121", City: "ATLANTA", StateAbbr: "GA", ResRatio: 0.18},
		{Zip: "30341", CountyFIPS: "13089", City: "ATLANTA", StateAbbr: "GA", ResRatio: 0.82},
	}

	best, err := pickCounties(records)
	assert.NoError(t, err)
	assert.Equal(t, "13089", best["30341"].CountyFIPS)
}

func TestPickCountiesRejectsMalformedRows(t *testing.T) {
	_, err := pickCounties([]Record{
		{Zip: "3034", CountyFIPS: "13089"},
	})
	assert.Error(t, err)

	_, err = pickCounties([]Record{
		{Zip: "30341", CountyFIPS: "130"},
	})
	assert.Error(t, err)
}
