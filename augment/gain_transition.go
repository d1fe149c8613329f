package augment

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-augment/dsp/buffer"
	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/fade"
	"github.com/cwbudde/algo-augment/waveform"
)

const (
	defaultGainTransitionMinGainDB   = -24.0
	defaultGainTransitionMaxGainDB   = 6.0
	defaultGainTransitionMinDuration = 0.2
	defaultGainTransitionMaxDuration = 6.0
	defaultGainTransitionProbability = 0.5

	// minFadeSamples is the shortest transition that still has a start, a
	// middle and an end point.
	minFadeSamples = 3
)

var workPool = buffer.NewPool()

// DurationUnit selects how transition duration bounds are interpreted.
type DurationUnit string

const (
	UnitSeconds  DurationUnit = "seconds"
	UnitSamples  DurationUnit = "samples"
	UnitFraction DurationUnit = "fraction"
)

// ParseDurationUnit converts s to a DurationUnit.
func ParseDurationUnit(s string) (DurationUnit, error) {
	u := DurationUnit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q (want seconds, samples or fraction)", ErrInvalidDurationUnit, s)
	}
	return u, nil
}

// Valid reports whether u is a recognized unit.
func (u DurationUnit) Valid() bool {
	switch u {
	case UnitSeconds, UnitSamples, UnitFraction:
		return true
	}
	return false
}

// GainTransitionConfig bounds the random draws of a GainTransition.
type GainTransitionConfig struct {
	MinGainDB    float64      `yaml:"min_gain_db"`
	MaxGainDB    float64      `yaml:"max_gain_db"`
	MinDuration  float64      `yaml:"min_duration"`
	MaxDuration  float64      `yaml:"max_duration"`
	DurationUnit DurationUnit `yaml:"duration_unit"`
	P            float64      `yaml:"p"`
}

// DefaultGainTransitionConfig returns a -24..+6 dB fade lasting 0.2..6 s,
// applied half of the time.
func DefaultGainTransitionConfig() GainTransitionConfig {
	return GainTransitionConfig{
		MinGainDB:    defaultGainTransitionMinGainDB,
		MaxGainDB:    defaultGainTransitionMaxGainDB,
		MinDuration:  defaultGainTransitionMinDuration,
		MaxDuration:  defaultGainTransitionMaxDuration,
		DurationUnit: UnitSeconds,
		P:            defaultGainTransitionProbability,
	}
}

// Validate reports the first inconsistent bound, wrapped in ErrInvalidConfiguration.
func (c GainTransitionConfig) Validate() error {
	if !core.IsFinite(c.MinGainDB) || !core.IsFinite(c.MaxGainDB) {
		return fmt.Errorf("%w: gain bounds must be finite: [%f, %f]", ErrInvalidConfiguration, c.MinGainDB, c.MaxGainDB)
	}
	if c.MinGainDB > c.MaxGainDB {
		return fmt.Errorf("%w: min gain %f dB exceeds max gain %f dB", ErrInvalidConfiguration, c.MinGainDB, c.MaxGainDB)
	}
	if !core.IsFinite(c.MinDuration) || !core.IsFinite(c.MaxDuration) {
		return fmt.Errorf("%w: duration bounds must be finite: [%f, %f]", ErrInvalidConfiguration, c.MinDuration, c.MaxDuration)
	}
	if c.MinDuration <= 0 {
		return fmt.Errorf("%w: min duration must be > 0: %f", ErrInvalidConfiguration, c.MinDuration)
	}
	if c.MinDuration > c.MaxDuration {
		return fmt.Errorf("%w: min duration %f exceeds max duration %f", ErrInvalidConfiguration, c.MinDuration, c.MaxDuration)
	}
	if _, err := ParseDurationUnit(string(c.DurationUnit)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if c.DurationUnit == UnitSamples && (c.MinDuration != math.Trunc(c.MinDuration) || c.MaxDuration != math.Trunc(c.MaxDuration)) {
		return fmt.Errorf("%w: sample durations must be whole numbers: [%f, %f]", ErrInvalidConfiguration, c.MinDuration, c.MaxDuration)
	}
	if _, err := NewGate(c.P); err != nil {
		return err
	}
	return nil
}

// GainTransitionOption mutates gain transition construction parameters.
type GainTransitionOption func(*gainTransitionSettings) error

type gainTransitionSettings struct {
	cfg GainTransitionConfig
	log logrus.FieldLogger
}

// WithGainRangeDB sets the range both endpoint gains are drawn from.
func WithGainRangeDB(minDB, maxDB float64) GainTransitionOption {
	return func(s *gainTransitionSettings) error {
		s.cfg.MinGainDB = minDB
		s.cfg.MaxGainDB = maxDB
		return nil
	}
}

// WithDurationRange sets the transition length bounds, in the configured unit.
func WithDurationRange(minDuration, maxDuration float64) GainTransitionOption {
	return func(s *gainTransitionSettings) error {
		s.cfg.MinDuration = minDuration
		s.cfg.MaxDuration = maxDuration
		return nil
	}
}

// WithDurationUnit sets the unit of the duration bounds.
func WithDurationUnit(unit DurationUnit) GainTransitionOption {
	return func(s *gainTransitionSettings) error {
		if !unit.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidConfiguration, ErrInvalidDurationUnit, unit)
		}
		s.cfg.DurationUnit = unit
		return nil
	}
}

// WithProbability sets the chance in [0, 1] that the transform applies.
func WithProbability(p float64) GainTransitionOption {
	return func(s *gainTransitionSettings) error {
		s.cfg.P = p
		return nil
	}
}

// WithLogger routes decision logging to log.
func WithLogger(log logrus.FieldLogger) GainTransitionOption {
	return func(s *gainTransitionSettings) error {
		if log != nil {
			s.log = log
		}
		return nil
	}
}

// GainTransitionParams are the draws of one invocation.
type GainTransitionParams struct {
	ShouldApply     bool
	FadeTimeSamples int
	// T0 is the sample index of the first curve point. It may be negative.
	T0          int
	StartGainDB float64
	EndGainDB   float64
}

// Window places the transition on a waveform of total samples.
func (p GainTransitionParams) Window(total int) fade.Window {
	return fade.Crop(p.T0, p.FadeTimeSamples, total)
}

// GainTransition gradually changes the volume up or down over a random time
// span, on a logarithmic scale. It picks a start gain and an end gain, holds
// the start gain until the transition begins, fades to the end gain, and
// holds that until the end of the audio. The transition may begin before the
// audio starts or end after it ends, so the output can start or finish in the
// middle of a fade.
type GainTransition struct {
	cfg  GainTransitionConfig
	gate Gate
	log  logrus.FieldLogger
}

var _ Transform = (*GainTransition)(nil)

// NewGainTransition creates a gain transition with practical defaults and
// optional overrides.
func NewGainTransition(opts ...GainTransitionOption) (*GainTransition, error) {
	return NewGainTransitionFromConfig(DefaultGainTransitionConfig(), opts...)
}

// NewGainTransitionFromConfig creates a gain transition from cfg, then applies opts.
func NewGainTransitionFromConfig(cfg GainTransitionConfig, opts ...GainTransitionOption) (*GainTransition, error) {
	s := gainTransitionSettings{
		cfg: cfg,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&s); err != nil {
			return nil, err
		}
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	g := &GainTransition{
		cfg:  s.cfg,
		gate: Gate{P: s.cfg.P},
		log:  s.log,
	}
	g.log.WithFields(logrus.Fields{
		"transform":     g.Name(),
		"min_gain_db":   g.cfg.MinGainDB,
		"max_gain_db":   g.cfg.MaxGainDB,
		"min_duration":  g.cfg.MinDuration,
		"max_duration":  g.cfg.MaxDuration,
		"duration_unit": g.cfg.DurationUnit,
		"p":             g.cfg.P,
	}).Debug("transform configured")

	return g, nil
}

// Name returns the transform name.
func (g *GainTransition) Name() string { return "GainTransition" }

// Config returns the validated configuration.
func (g *GainTransition) Config() GainTransitionConfig { return g.cfg }

// SupportsMultichannel reports that every channel receives the same gain curve.
func (g *GainTransition) SupportsMultichannel() bool { return true }

// RandomizeParameters draws the parameters for one invocation on w.
func (g *GainTransition) RandomizeParameters(r Rand, w waveform.Waveform, sampleRate int) (GainTransitionParams, error) {
	var p GainTransitionParams
	p.ShouldApply = g.gate.ShouldApply(r)
	if !p.ShouldApply {
		return p, nil
	}

	minSamples, maxSamples, err := g.durationBoundsInSamples(w.Len(), sampleRate)
	if err != nil {
		return GainTransitionParams{}, err
	}

	total := w.Len()
	p.FadeTimeSamples = max(minFadeSamples, RandInt(r, minSamples, maxSamples))
	p.T0 = RandInt(r, -p.FadeTimeSamples+2, total-2)
	p.StartGainDB = Uniform(r, g.cfg.MinGainDB, g.cfg.MaxGainDB)
	p.EndGainDB = Uniform(r, g.cfg.MinGainDB, g.cfg.MaxGainDB)
	return p, nil
}

func (g *GainTransition) durationBoundsInSamples(total, sampleRate int) (int, int, error) {
	switch g.cfg.DurationUnit {
	case UnitSamples:
		return int(g.cfg.MinDuration), int(g.cfg.MaxDuration), nil
	case UnitFraction:
		n := float64(total)
		return core.RoundHalfEven(g.cfg.MinDuration * n), core.RoundHalfEven(g.cfg.MaxDuration * n), nil
	case UnitSeconds:
		if sampleRate <= 0 {
			return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
		}
		sr := float64(sampleRate)
		return core.RoundHalfEven(g.cfg.MinDuration * sr), core.RoundHalfEven(g.cfg.MaxDuration * sr), nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDurationUnit, g.cfg.DurationUnit)
	}
}

// Apply returns a copy of w with p applied. When p.ShouldApply is false the
// copy is unchanged.
func (g *GainTransition) Apply(w waveform.Waveform, p GainTransitionParams) waveform.Waveform {
	out := w.Clone()
	if !p.ShouldApply || p.FadeTimeSamples <= 0 {
		return out
	}

	total := out.Len()
	win := p.Window(total)

	curveBuf := workPool.Get(p.FadeTimeSamples)
	defer workPool.Put(curveBuf)
	fade.FillAmplitude(curveBuf.Samples(), p.StartGainDB, p.EndGainDB)
	curve := curveBuf.Samples()[win.CurveStart:win.CurveEnd]

	startAmp := core.DBToLinear(p.StartGainDB)
	endAmp := core.DBToLinear(p.EndGainDB)

	workBuf := workPool.Get(total)
	defer workPool.Put(workBuf)
	for ch := range out.Channels() {
		samples := out.Channel(ch)
		workBuf.Load(samples)
		work := workBuf.Samples()

		if !win.Empty() {
			vecmath.MulBlockInPlace(work[win.Start:win.End], curve)
		}
		if win.HoldsStart() {
			vecmath.ScaleBlockInPlace(work[:win.Start], startAmp)
		}
		if win.HoldsEnd() {
			vecmath.ScaleBlockInPlace(work[win.End:], endAmp)
		}

		workBuf.Store(samples)
	}

	return out
}

// Process draws parameters and applies them when selected.
func (g *GainTransition) Process(r Rand, w waveform.Waveform, sampleRate int) (waveform.Waveform, error) {
	out, _, err := g.Augment(r, w, sampleRate)
	return out, err
}

// Augment is Process that also returns the drawn parameters.
func (g *GainTransition) Augment(r Rand, w waveform.Waveform, sampleRate int) (waveform.Waveform, GainTransitionParams, error) {
	p, err := g.RandomizeParameters(r, w, sampleRate)
	if err != nil {
		return waveform.Waveform{}, GainTransitionParams{}, err
	}

	entry := g.log.WithFields(logrus.Fields{
		"transform":    g.Name(),
		"should_apply": p.ShouldApply,
		"channels":     w.Channels(),
		"samples":      w.Len(),
	})
	if p.ShouldApply {
		entry = entry.WithFields(logrus.Fields{
			"fade_time_samples": p.FadeTimeSamples,
			"t0":                p.T0,
			"start_gain_db":     p.StartGainDB,
			"end_gain_db":       p.EndGainDB,
		})
	}
	entry.Debug("parameters drawn")

	return g.Apply(w, p), p, nil
}
