package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 0.0, Sum([]float64{}))
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
}

func TestSum_IsReproducible(t *testing.T) {
	data := []float64{0.1, 0.2, 0.3, 1e16, -1e16, 0.7}
	assert.Equal(t, Sum(data), Sum(data))
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", []float64{}, 0},
		{"single", []float64{42}, 42},
		{"three values", []float64{80, 60, 40}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mean(tt.data))
		})
	}
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}

func TestCorrelation(t *testing.T) {
	assert.Equal(t, 0.0, Correlation(nil, nil))
	assert.Equal(t, 0.0, Correlation([]float64{1, 2}, []float64{1}))
	assert.InDelta(t, 1.0, Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-9)
	assert.Equal(t, 0.0, Correlation([]float64{1, 1, 1}, []float64{1, 2, 3}))
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, got, 5)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	require.NotNil(t, got[2])
	assert.InDelta(t, 2.0, *got[2], 1e-9)
	assert.InDelta(t, 3.0, *got[3], 1e-9)
	assert.InDelta(t, 4.0, *got[4], 1e-9)
}

func TestMovingAverage_ShortInput(t *testing.T) {
	got := MovingAverage([]float64{1, 2}, 7)
	require.Len(t, got, 2)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])

	assert.Empty(t, MovingAverage(nil, 3))
	assert.Len(t, MovingAverage([]float64{1}, 0), 1)
}
