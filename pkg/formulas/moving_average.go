package formulas

import (
	"github.com/markcheno/go-talib"
)

// MovingAverage calculates a simple moving average over the given window.
//
// The result has the same length as the input. Positions before the first
// full window are nil.
func MovingAverage(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window < 1 || len(values) < window {
		return out
	}

	sma := talib.Sma(values, window)
	for i := window - 1; i < len(sma) && i < len(values); i++ {
		v := sma[i]
		if isNaN(v) {
			continue
		}
		out[i] = &v
	}

	return out
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
