package augment

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-augment/waveform"
)

// Transform is a randomized waveform-to-waveform augmentation.
type Transform interface {
	Name() string
	// Process decides whether to apply the transform, and returns a new
	// waveform either way. The input is never modified.
	Process(r Rand, w waveform.Waveform, sampleRate int) (waveform.Waveform, error)
}

// Gate is the Bernoulli trial deciding whether a transform applies.
type Gate struct {
	P float64
}

// NewGate validates p in [0, 1].
func NewGate(p float64) (Gate, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return Gate{}, fmt.Errorf("%w: probability must be in [0, 1]: %f", ErrInvalidConfiguration, p)
	}
	return Gate{P: p}, nil
}

// ShouldApply draws one trial from r.
func (g Gate) ShouldApply(r Rand) bool {
	return r.Float64() < g.P
}
