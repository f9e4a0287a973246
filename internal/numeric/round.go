// Package numeric holds the presentation-side number formatting shared by the
// solvers. Solvers compare raw floats internally and only round on output.
package numeric

import (
	"math"

	"github.com/montanaflynn/stats"
)

// OutputPlaces is the number of decimals reported for scalar solver outputs
const OutputPlaces = 4

// Round rounds x half away from zero to the given number of decimal places.
// NaN is passed through unchanged.
func Round(x float64, places int) float64 {
	if math.IsInf(x, 0) {
		return x
	}
	rounded, err := stats.Round(x, places)
	if err != nil {
		return x
	}
	return rounded
}

// Round4 rounds x to OutputPlaces decimals
func Round4(x float64) float64 {
	return Round(x, OutputPlaces)
}

// Finite reports whether every value is neither NaN nor infinite
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
