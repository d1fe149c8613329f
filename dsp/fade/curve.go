package fade

import "github.com/cwbudde/algo-augment/dsp/core"

// FillDB writes len(dst) evenly spaced decibel levels from startDB to endDB,
// both inclusive. A single-point curve holds startDB.
func FillDB(dst []float64, startDB, endDB float64) {
	n := len(dst)
	switch n {
	case 0:
		return
	case 1:
		dst[0] = startDB
		return
	}

	step := (endDB - startDB) / float64(n-1)
	for i := range dst {
		dst[i] = startDB + float64(i)*step
	}
	dst[n-1] = endDB
}

// FillAmplitude writes the amplitude ratios of a dB-linear fade into dst.
func FillAmplitude(dst []float64, startDB, endDB float64) {
	FillDB(dst, startDB, endDB)
	core.DBToLinearInPlace(dst)
}

// Curve returns length amplitude multipliers fading from startDB to endDB.
// The result is empty when length <= 0.
func Curve(startDB, endDB float64, length int) []float32 {
	if length <= 0 {
		return []float32{}
	}

	amp := make([]float64, length)
	FillAmplitude(amp, startDB, endDB)

	out := make([]float32, length)
	core.Narrow(out, amp)
	return out
}
