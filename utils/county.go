package utils

import (
	"strings"
)

// Longest suffix first, so "City and Borough" is trimmed whole instead of
// losing only its " borough" tail.
var countyDesignators = []string{
	" city and borough",
	" census area",
	" municipality",
	" county",
	" parish",
	" borough",
}

// CountyKey - normalize a county display name ("Cook County", "Orleans
// Parish") into a comparable key ("cook", "orleans"). Socrata and FCC spell
// the same county differently; matching happens on the key.
func CountyKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range countyDesignators {
		key = strings.TrimSuffix(key, d)
	}
	return strings.Replace(key, " ", "_", -1)
}

// SameCounty - compare two county display names by key.
func SameCounty(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return CountyKey(a) == CountyKey(b)
}
