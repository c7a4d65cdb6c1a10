package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	m, ok := Median([]float64{3, 1, 2})
	assert.True(t, ok)
	assert.Equal(t, 2.0, m)

	m, ok = Median([]float64{4, 1, 3, 2})
	assert.True(t, ok)
	assert.Equal(t, 2.5, m, "even counts average the middle pair")

	_, ok = Median(nil)
	assert.False(t, ok)
}

func TestCompareFullWindows(t *testing.T) {
	s := Compare([]float64{1, 1, 1, 2, 2, 2}, 3, 3)

	assert.Equal(t, 6, s.PointsUsed)
	assert.Equal(t, 2.0, *s.Recent)
	assert.Equal(t, 1.0, *s.Prior)
}

func TestComparePartialRecent(t *testing.T) {
	s := Compare([]float64{5, 7}, 3, 3)

	assert.Equal(t, 6.0, *s.Recent, "recent degrades to however many points exist")
	assert.Nil(t, s.Prior, "prior needs recentN+priorN points")
}

func TestCompareEmpty(t *testing.T) {
	s := Compare(nil, 3, 3)

	assert.Nil(t, s.Recent, "recent is nil iff the series is empty")
	assert.Nil(t, s.Prior)
	assert.Equal(t, 0, s.PointsUsed)
}

func TestComparePriorBoundary(t *testing.T) {
	// five points: one short of the 3+3 needed for a prior window
	s := Compare([]float64{1, 2, 3, 4, 5}, 3, 3)
	assert.NotNil(t, s.Recent)
	assert.Nil(t, s.Prior)

	s = Compare([]float64{1, 2, 3, 4, 5, 6}, 3, 3)
	assert.Equal(t, 2.0, *s.Prior)
	assert.Equal(t, 5.0, *s.Recent)
}
