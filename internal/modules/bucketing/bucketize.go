// Package bucketing provides numeric binning, categorical tallies and the
// date keys used to group records for charts.
package bucketing

import (
	"math"
	"strconv"

	"github.com/aristath/ecoledger/internal/domain"
)

// Standard edge sets used by the charts
var (
	// ScoreEdges bins 0-100 scores (credit, ESG, financial health)
	ScoreEdges = []float64{0, 20, 40, 60, 80, 100}
	// ConfidenceEdges bins OCR confidence expressed as a percentage
	ConfidenceEdges = []float64{0, 60, 70, 80, 90, 100}
	// YieldEdges bins portfolio yield expressed as a percentage
	YieldEdges = []float64{0, 2, 4, 6, 8, 10}
)

// ValidateEdges checks edges are strictly increasing, finite, and at least two long
func ValidateEdges(edges []float64) error {
	if len(edges) < 2 {
		return domain.ErrInvalidEdges
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return domain.ErrInvalidEdges
		}
		if i > 0 && e <= edges[i-1] {
			return domain.ErrInvalidEdges
		}
	}
	return nil
}

// Bucketize counts values into the half-open intervals [edges[i], edges[i+1]).
//
// Buckets are tested left to right and the first match wins. Values below the
// first edge or at/above the last edge are not counted, so a score of exactly
// 100 falls outside ScoreEdges. nil and non-finite values are skipped.
func Bucketize(values []*float64, edges []float64) ([]domain.Bucket, error) {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			defined = append(defined, *v)
		}
	}
	return BucketizeFloats(defined, edges)
}

// BucketizeFloats is Bucketize over values that are all defined
func BucketizeFloats(values []float64, edges []float64) ([]domain.Bucket, error) {
	if err := ValidateEdges(edges); err != nil {
		return nil, err
	}

	buckets := emptyBuckets(edges)
	for _, v := range values {
		place(buckets, v)
	}

	return buckets, nil
}

// Scale multiplies every defined value by factor, keeping nil entries nil.
// Used to turn fractions (yield, OCR confidence) into percentages before binning.
func Scale(values []*float64, factor float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		scaled := *v * factor
		out[i] = &scaled
	}
	return out
}

// Labels renders "lo-hi" labels for each interval, with an optional suffix
func Labels(edges []float64, suffix string) []string {
	if len(edges) < 2 {
		return nil
	}
	labels := make([]string, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		labels[i] = formatEdge(edges[i]) + "-" + formatEdge(edges[i+1]) + suffix
	}
	return labels
}

// WithSuffix returns a copy of buckets with suffix appended to every label
func WithSuffix(buckets []domain.Bucket, suffix string) []domain.Bucket {
	out := make([]domain.Bucket, len(buckets))
	for i, b := range buckets {
		b.Label += suffix
		out[i] = b
	}
	return out
}

// Total sums bucket counts
func Total(buckets []domain.Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

func emptyBuckets(edges []float64) []domain.Bucket {
	labels := Labels(edges, "")
	buckets := make([]domain.Bucket, len(edges)-1)
	for i := range buckets {
		buckets[i] = domain.Bucket{
			Label: labels[i],
			Lo:    edges[i],
			Hi:    edges[i+1],
		}
	}
	return buckets
}

func place(buckets []domain.Bucket, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	for i := range buckets {
		if v >= buckets[i].Lo && v < buckets[i].Hi {
			buckets[i].Count++
			return
		}
	}
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
