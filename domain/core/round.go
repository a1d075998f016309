package core

import "math"

// Round3 rounds to 3 decimal places, half away from zero.
// Non-finite values pass through unchanged so degenerate test
// statistics (zero within-group variance) reach the caller as-is.
func Round3(x float64) float64 {
	return roundTo(x, 1000)
}

// Round4 rounds to 4 decimal places, half away from zero.
func Round4(x float64) float64 {
	return roundTo(x, 10000)
}

func roundTo(x float64, scale float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*scale) / scale
}
