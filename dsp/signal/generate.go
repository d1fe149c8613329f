// Package signal generates deterministic float32 test waveforms.
package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/waveform"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates the same sine wave on every channel.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (waveform.Waveform, error) {
	w, err := g.alloc("sine", samples)
	if err != nil {
		return waveform.Waveform{}, err
	}

	step := 2 * math.Pi * freqHz / float64(g.cfg.SampleRate)
	for ch := range w.Channels() {
		out := w.Channel(ch)
		for i := range out {
			out[i] = float32(amplitude * math.Sin(step*float64(i)))
		}
	}
	return w, nil
}

// WhiteNoise generates deterministic, independent white noise per channel
// in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (waveform.Waveform, error) {
	if amplitude < 0 {
		return waveform.Waveform{}, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	w, err := g.alloc("noise", samples)
	if err != nil {
		return waveform.Waveform{}, err
	}

	rng := rand.New(rand.NewPCG(g.seed, g.seed))
	data := w.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return w, nil
}

// DC generates a constant signal on every channel.
func (g *Generator) DC(value float32, samples int) (waveform.Waveform, error) {
	w, err := g.alloc("dc", samples)
	if err != nil {
		return waveform.Waveform{}, err
	}
	data := w.Data()
	for i := range data {
		data[i] = value
	}
	return w, nil
}

func (g *Generator) alloc(kind string, samples int) (waveform.Waveform, error) {
	if samples <= 0 {
		return waveform.Waveform{}, fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}
	if g.cfg.Channels == 1 {
		return waveform.FromMono(make([]float32, samples)), nil
	}
	return waveform.New(g.cfg.Channels, samples)
}
