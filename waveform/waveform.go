package waveform

import "fmt"

// Waveform holds float32 samples with shape (channels, samples).
type Waveform struct {
	data     []float32
	channels int
	samples  int
	mono     bool
}

// New returns a zeroed waveform with the given shape.
func New(channels, samples int) (Waveform, error) {
	if channels <= 0 || samples < 0 {
		return Waveform{}, fmt.Errorf("%w: channels=%d samples=%d", ErrInvalidShape, channels, samples)
	}
	return Waveform{
		data:     make([]float32, channels*samples),
		channels: channels,
		samples:  samples,
	}, nil
}

// FromMono copies a 1-D signal into a mono waveform.
func FromMono(samples []float32) Waveform {
	data := make([]float32, len(samples))
	copy(data, samples)
	return Waveform{
		data:     data,
		channels: 1,
		samples:  len(samples),
		mono:     true,
	}
}

// FromChannels copies a (channels, samples) signal. Every channel must have
// the same length.
func FromChannels(channels [][]float32) (Waveform, error) {
	if len(channels) == 0 {
		return Waveform{}, fmt.Errorf("%w: no channels", ErrInvalidShape)
	}

	n := len(channels[0])
	for i, ch := range channels {
		if len(ch) != n {
			return Waveform{}, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRaggedChannels, i, len(ch), n)
		}
	}

	w, err := New(len(channels), n)
	if err != nil {
		return Waveform{}, err
	}
	for i, ch := range channels {
		copy(w.Channel(i), ch)
	}
	return w, nil
}

// Channels returns the channel count.
func (w Waveform) Channels() int { return w.channels }

// Len returns the number of samples per channel.
func (w Waveform) Len() int { return w.samples }

// Mono reports whether the waveform was built from a 1-D signal.
func (w Waveform) Mono() bool { return w.mono }

// Shape returns (channels, samples).
func (w Waveform) Shape() (int, int) { return w.channels, w.samples }

// Channel returns the samples of channel i. The slice aliases the waveform.
func (w Waveform) Channel(i int) []float32 {
	off := i * w.samples
	return w.data[off : off+w.samples : off+w.samples]
}

// Data returns the planar backing slice. It aliases the waveform.
func (w Waveform) Data() []float32 { return w.data }

// Clone returns a deep copy that shares no memory with w.
func (w Waveform) Clone() Waveform {
	c := w
	c.data = make([]float32, len(w.data))
	copy(c.data, w.data)
	return c
}

// SameShape reports whether w and o have identical shape and dimensionality.
func (w Waveform) SameShape(o Waveform) bool {
	return w.channels == o.channels && w.samples == o.samples && w.mono == o.mono
}

// ToChannels returns a copy of the samples as one slice per channel.
func (w Waveform) ToChannels() [][]float32 {
	out := make([][]float32, w.channels)
	for i := range out {
		out[i] = make([]float32, w.samples)
		copy(out[i], w.Channel(i))
	}
	return out
}
