package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// DBToLinear converts dB to a linear amplitude ratio (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// DBToLinear32 is DBToLinear narrowed to the sample type.
func DBToLinear32(db float64) float32 {
	return float32(DBToLinear(db))
}

// DBToLinearInPlace converts every dB value in buf to its amplitude ratio.
func DBToLinearInPlace(buf []float64) {
	for i, db := range buf {
		buf[i] = DBToLinear(db)
	}
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// RoundHalfEven rounds x to the nearest integer, ties to even.
func RoundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
