// Package formulas provides numeric helpers shared by the aggregation modules.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sum adds values left to right. The order is fixed so repeated runs over the
// same input produce bit-identical results.
func Sum(data []float64) float64 {
	total := 0.0
	for _, v := range data {
		total += v
	}
	return total
}

// Mean calculates the arithmetic mean of a slice of float64 values.
// Returns 0 for empty input.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float64(len(data))
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Correlation calculates the Pearson correlation coefficient between two datasets.
// Returns 0 when the inputs are empty, of different length, or constant.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	c := stat.Correlation(x, y, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}
