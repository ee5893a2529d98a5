package series

import (
	"testing"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderedSeries(t *testing.T) {
	s := ToOrderedSeries("Applications", map[string]float64{
		"2024-03": 4,
		"2023-12": 1,
		"2024-01": 7,
		"2024-02": 2,
	})

	assert.Equal(t, "Applications", s.Name)
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02", "2024-03"}, s.Labels())
	assert.Equal(t, []float64{1, 7, 2, 4}, s.Values())
}

func TestToOrderedSeries_Empty(t *testing.T) {
	s := ToOrderedSeries("empty", nil)
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Points)
}

func TestToRankedSeries(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Wind", 3)
	acc.Add("Solar", 5)
	acc.Add("Hydro", 3)
	acc.Add("Geothermal", 1)
	acc.Add("Biomass", 3)

	s := ToRankedSeries("Project Types", acc, 0)
	assert.Equal(t, []string{"Solar", "Wind", "Hydro", "Biomass", "Geothermal"}, s.Labels())

	top := ToRankedSeries("Project Types", acc, 2)
	assert.Equal(t, []string{"Solar", "Wind"}, top.Labels())
	assert.Equal(t, []float64{5, 3}, top.Values())

	// ranking does not disturb the accumulator
	assert.Equal(t, []string{"Wind", "Solar", "Hydro", "Geothermal", "Biomass"}, acc.Keys())
}

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("b", 1)
	acc.Add("a", 2)
	acc.Add("b", 3)
	acc.Set("c", 9)
	acc.Set("a", 1)

	assert.Equal(t, 3, acc.Len())
	assert.Equal(t, []string{"b", "a", "c"}, acc.Keys())

	v, ok := acc.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	_, ok = acc.Get("missing")
	assert.False(t, ok)

	m := acc.Map()
	m["b"] = 100
	v, _ = acc.Get("b")
	assert.Equal(t, 4.0, v, "Map returns a copy")

	assert.Equal(t, []Point{{"b", 4}, {"a", 1}, {"c", 9}}, FromAccumulator("x", acc).Points)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]float64{}))
	assert.Equal(t, 60.0, Average([]float64{80, 60, 40}))
}

func TestAverageDefined(t *testing.T) {
	assert.Equal(t, 0.0, AverageDefined([]*float64{nil, nil}))
	assert.Equal(t, 50.0, AverageDefined([]*float64{domain.Float(40), nil, domain.Float(60)}))
	assert.Equal(t, 0.0, AverageDefined([]*float64{domain.Float(0)}))
}

func TestFromBuckets(t *testing.T) {
	buckets, err := bucketing.Bucketize([]*float64{domain.Float(10), domain.Float(90)}, bucketing.ScoreEdges)
	require.NoError(t, err)

	s := FromBuckets("Credit", buckets)
	assert.Equal(t, []string{"0-20", "20-40", "40-60", "60-80", "80-100"}, s.Labels())
	assert.Equal(t, []float64{1, 0, 0, 0, 1}, s.Values())
}

func TestFromCategoryCounts(t *testing.T) {
	s := FromCategoryCounts("Status", []bucketing.CategoryCount{{Category: "Listed", Count: 3}, {Category: "Sold", Count: 1}})
	assert.Equal(t, []Point{{"Listed", 3}, {"Sold", 1}}, s.Points)
}

func TestConstantSeries(t *testing.T) {
	s := ConstantSeries("Min", []string{"Month 1", "Month 2"}, 10)
	assert.Equal(t, []Point{{"Month 1", 10}, {"Month 2", 10}}, s.Points)
}

func TestScatterSeries(t *testing.T) {
	s := ScatterSeries{Points: []ScatterPoint{{ID: "a", X: 1, Y: 2}, {ID: "b", X: 3, Y: 4}}}
	assert.Equal(t, []float64{1, 3}, s.XValues())
	assert.Equal(t, []float64{2, 4}, s.YValues())
}
