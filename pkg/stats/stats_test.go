package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 20.0, Mean([]float64{10, 20, 30}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	assert.InDelta(t, 10.0, StdDev([]float64{10, 20, 30}), 0.001)
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 50))

	xs := []float64{5, 1, 3, 2, 4}
	assert.Equal(t, 3.0, Percentile(xs, 50))
	assert.Equal(t, 5.0, Percentile(xs, 100))
	// Input order preserved.
	assert.Equal(t, []float64{5, 1, 3, 2, 4}, xs)
}
