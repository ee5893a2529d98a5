package bucketing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counts(buckets []domain.Bucket) []int {
	out := make([]int, len(buckets))
	for i, b := range buckets {
		out[i] = b.Count
	}
	return out
}

func TestBucketize(t *testing.T) {
	tests := []struct {
		name     string
		values   []*float64
		edges    []float64
		expected []int
	}{
		{
			name:     "top edge is excluded",
			values:   []*float64{domain.Float(100)},
			edges:    ScoreEdges,
			expected: []int{0, 0, 0, 0, 0},
		},
		{
			name:     "lower edge is inclusive",
			values:   []*float64{domain.Float(0), domain.Float(20), domain.Float(40), domain.Float(60), domain.Float(80)},
			edges:    ScoreEdges,
			expected: []int{1, 1, 1, 1, 1},
		},
		{
			name:     "just below edges",
			values:   []*float64{domain.Float(19.999), domain.Float(99.99)},
			edges:    ScoreEdges,
			expected: []int{1, 0, 0, 0, 1},
		},
		{
			name:     "nil and non-finite skipped",
			values:   []*float64{nil, domain.Float(math.NaN()), domain.Float(math.Inf(1)), domain.Float(50)},
			edges:    ScoreEdges,
			expected: []int{0, 0, 1, 0, 0},
		},
		{
			name:     "below first edge dropped",
			values:   []*float64{domain.Float(-5), domain.Float(55)},
			edges:    ConfidenceEdges,
			expected: []int{1, 0, 0, 0, 0},
		},
		{
			name:     "empty input",
			values:   nil,
			edges:    YieldEdges,
			expected: []int{0, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets, err := Bucketize(tt.values, tt.edges)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, counts(buckets))
		})
	}
}

func TestBucketize_Labels(t *testing.T) {
	buckets, err := Bucketize(nil, ScoreEdges)
	require.NoError(t, err)
	require.Len(t, buckets, 5)

	assert.Equal(t, "0-20", buckets[0].Label)
	assert.Equal(t, "80-100", buckets[4].Label)
	assert.Equal(t, 80.0, buckets[4].Lo)
	assert.Equal(t, 100.0, buckets[4].Hi)

	withPct := WithSuffix(buckets, "%")
	assert.Equal(t, "0-20%", withPct[0].Label)
	assert.Equal(t, "0-20", buckets[0].Label, "original untouched")
}

func TestBucketize_InvalidEdges(t *testing.T) {
	tests := []struct {
		name  string
		edges []float64
	}{
		{"nil", nil},
		{"single", []float64{0}},
		{"not increasing", []float64{0, 10, 10}},
		{"decreasing", []float64{10, 0}},
		{"nan", []float64{0, math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bucketize([]*float64{domain.Float(1)}, tt.edges)
			assert.ErrorIs(t, err, domain.ErrInvalidEdges)
		})
	}
}

// Property: counts sum to the number of defined values inside [e0, eN)
func TestBucketize_CountsSumToInRangeValues(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	edgeSets := [][]float64{ScoreEdges, ConfidenceEdges, YieldEdges, {-10, 0, 0.5, 1e6}}

	for run := 0; run < 200; run++ {
		edges := edgeSets[run%len(edgeSets)]
		n := rng.Intn(50)
		values := make([]*float64, n)
		expected := 0
		for i := range values {
			if rng.Intn(5) == 0 {
				continue
			}
			v := rng.Float64()*140 - 20
			values[i] = &v
			if v >= edges[0] && v < edges[len(edges)-1] {
				expected++
			}
		}

		buckets, err := Bucketize(values, edges)
		require.NoError(t, err)
		assert.Equal(t, expected, Total(buckets))
	}
}

func TestBucketizeFloats(t *testing.T) {
	buckets, err := BucketizeFloats([]float64{1, 3, 3.5, 9.99, 10, math.NaN()}, YieldEdges)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 0, 1}, counts(buckets))

	_, err = BucketizeFloats([]float64{1}, []float64{5, 5})
	assert.ErrorIs(t, err, domain.ErrInvalidEdges)
}

func TestScale(t *testing.T) {
	scaled := Scale([]*float64{domain.Float(0.065), nil, domain.Float(0.5)}, 100)
	require.Len(t, scaled, 3)
	assert.InDelta(t, 6.5, *scaled[0], 1e-9)
	assert.Nil(t, scaled[1])
	assert.InDelta(t, 50.0, *scaled[2], 1e-9)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"0-60%", "60-70%", "70-80%", "80-90%", "90-100%"}, Labels(ConfidenceEdges, "%"))
	assert.Equal(t, []string{"0-0.5", "0.5-1.25"}, Labels([]float64{0, 0.5, 1.25}, ""))
	assert.Nil(t, Labels([]float64{1}, ""))
}
