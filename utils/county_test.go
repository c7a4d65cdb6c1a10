package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountyKey(t *testing.T) {
	mapping := map[string]string{
		"Cook County":    "cook",
		"cook":           "cook",
		"Orleans Parish": "orleans",
		"St. Louis City": "st._louis_city",
		"  DeKalb County ": "dekalb",
		"Juneau City and Borough": "juneau",
		"North Slope Borough":     "north_slope",
	}

	for name, key := range mapping {
		assert.Equal(t, key, CountyKey(name), "wrong key for %s", name)
	}
}

func TestSameCounty(t *testing.T) {
	assert.True(t, SameCounty("Cook County", "COOK"))
	assert.True(t, SameCounty("Orleans Parish", "orleans"))
	assert.False(t, SameCounty("Cook County", "Lake County"))
	assert.False(t, SameCounty("", "Cook County"))
}
