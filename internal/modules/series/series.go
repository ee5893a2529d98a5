// Package series converts bucketed or raw values into named, ordered
// label/value series for charts.
package series

import (
	"sort"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/pkg/formulas"
)

// Point is a single label/value pair
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered sequence of points feeding one chart trace.
// Point order is display order.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Labels returns the point labels in order
func (s Series) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the point values in order
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Len returns the number of points
func (s Series) Len() int {
	return len(s.Points)
}

// ToOrderedSeries sorts mapping by key ascending. With YYYY-MM or YYYY-MM-DD
// keys this is chronological order.
func ToOrderedSeries(name string, mapping map[string]float64) Series {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]Point, len(keys))
	for i, k := range keys {
		points[i] = Point{Label: k, Value: mapping[k]}
	}
	return Series{Name: name, Points: points}
}

// ToRankedSeries sorts acc by value descending, keeping first-insertion order
// on ties, and truncates to topN. topN <= 0 keeps every entry.
func ToRankedSeries(name string, acc *Accumulator, topN int) Series {
	points := acc.Points()
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	if topN > 0 && len(points) > topN {
		points = points[:topN]
	}
	return Series{Name: name, Points: points}
}

// FromAccumulator keeps insertion order
func FromAccumulator(name string, acc *Accumulator) Series {
	return Series{Name: name, Points: acc.Points()}
}

// FromBuckets turns bucket counts into a series labelled by bucket
func FromBuckets(name string, buckets []domain.Bucket) Series {
	points := make([]Point, len(buckets))
	for i, b := range buckets {
		points[i] = Point{Label: b.Label, Value: float64(b.Count)}
	}
	return Series{Name: name, Points: points}
}

// FromCategoryCounts turns a categorical tally into a series
func FromCategoryCounts(name string, counts []bucketing.CategoryCount) Series {
	points := make([]Point, len(counts))
	for i, c := range counts {
		points[i] = Point{Label: c.Category, Value: float64(c.Count)}
	}
	return Series{Name: name, Points: points}
}

// ConstantSeries draws a flat reference line across labels
func ConstantSeries(name string, labels []string, value float64) Series {
	points := make([]Point, len(labels))
	for i, l := range labels {
		points[i] = Point{Label: l, Value: value}
	}
	return Series{Name: name, Points: points}
}

// Average returns the arithmetic mean, or 0 for empty input
func Average(values []float64) float64 {
	return formulas.Mean(values)
}

// AverageDefined averages the non-nil values, or returns 0 when none are defined
func AverageDefined(values []*float64) float64 {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			defined = append(defined, *v)
		}
	}
	return Average(defined)
}
