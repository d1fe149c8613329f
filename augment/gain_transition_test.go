package augment

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/fade"
	"github.com/cwbudde/algo-augment/internal/testutil"
	"github.com/cwbudde/algo-augment/waveform"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestGainTransition(t *testing.T, opts ...GainTransitionOption) *GainTransition {
	t.Helper()
	opts = append([]GainTransitionOption{WithLogger(quietLogger())}, opts...)
	g, err := NewGainTransition(opts...)
	if err != nil {
		t.Fatalf("NewGainTransition() error = %v", err)
	}
	return g
}

func TestGainTransitionZeroGainKeepsSilence(t *testing.T) {
	g := newTestGainTransition(t)
	in := waveform.FromMono(make([]float32, 10))

	out := g.Apply(in, GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 4,
		T0:              3,
	})

	testutil.RequireSliceNearlyEqual(t, out.Channel(0), in.Channel(0), 0)
}

func TestGainTransitionLeftOverhangConstantGain(t *testing.T) {
	g := newTestGainTransition(t)
	in := waveform.FromMono(testutil.Ones(5))

	out := g.Apply(in, GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 5,
		T0:              -2,
		StartGainDB:     -20,
		EndGainDB:       -20,
	})

	testutil.RequireSliceNearlyEqual(t, out.Channel(0), testutil.DC(0.1, 5), 1e-6)
}

func TestGainTransitionWindowInsideHoldsGains(t *testing.T) {
	g := newTestGainTransition(t)
	input := testutil.Ramp(10, 0.1)
	in := waveform.FromMono(input)

	p := GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 4,
		T0:              3,
		StartGainDB:     -6,
		EndGainDB:       -12,
	}
	out := g.Apply(in, p).Channel(0)

	startAmp := core.DBToLinear(-6)
	endAmp := core.DBToLinear(-12)
	curve := fade.Curve(-6, -12, 4)

	want := make([]float32, len(input))
	for i, v := range input {
		switch {
		case i < 3:
			want[i] = float32(float64(v) * startAmp)
		case i < 7:
			want[i] = float32(float64(v) * float64(curve[i-3]))
		default:
			want[i] = float32(float64(v) * endAmp)
		}
	}

	testutil.RequireSliceNearlyEqual(t, out[:3], want[:3], 1e-6)
	testutil.RequireSliceNearlyEqual(t, out[7:], want[7:], 1e-6)
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-6)
}

func TestGainTransitionMultichannelBroadcast(t *testing.T) {
	g := newTestGainTransition(t)
	in, err := waveform.FromChannels([][]float32{
		{1, 1, 1, 1, 1},
		{0.5, 0.5, 0.5, 0.5, 0.5},
	})
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	p := GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 3,
		T0:              1,
		StartGainDB:     0,
		EndGainDB:       -20,
	}
	out := g.Apply(in, p)

	if !out.SameShape(in) {
		t.Fatalf("shape changed: got (%d, %d)", out.Channels(), out.Len())
	}

	left := out.Channel(0)
	right := out.Channel(1)
	for i := range left {
		if math.Abs(float64(left[i])*0.5-float64(right[i])) > 1e-7 {
			t.Fatalf("sample %d: channel gains differ: left=%v right=%v", i, left[i], right[i])
		}
	}

	want := []float32{1, 1, float32(core.DBToLinear(-10)), 0.1, 0.1}
	testutil.RequireSliceNearlyEqual(t, left, want, 1e-6)
}

func TestGainTransitionRightOverhang(t *testing.T) {
	g := newTestGainTransition(t)
	in := waveform.FromMono(testutil.Ones(4))

	out := g.Apply(in, GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 5,
		T0:              2,
		StartGainDB:     -20,
		EndGainDB:       20,
	}).Channel(0)

	curve := fade.Curve(-20, 20, 5)
	want := []float32{0.1, 0.1, curve[0], curve[1]}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-6)
}

func TestGainTransitionWindowOutsideIsConstantGain(t *testing.T) {
	g := newTestGainTransition(t)
	in := waveform.FromMono(testutil.Ones(6))

	before := g.Apply(in, GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 4,
		T0:              -10,
		StartGainDB:     0,
		EndGainDB:       -20,
	})
	testutil.RequireSliceNearlyEqual(t, before.Channel(0), testutil.DC(0.1, 6), 1e-6)

	after := g.Apply(in, GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 4,
		T0:              6,
		StartGainDB:     -20,
		EndGainDB:       0,
	})
	testutil.RequireSliceNearlyEqual(t, after.Channel(0), testutil.DC(0.1, 6), 1e-6)
}

func TestGainTransitionEarliestPlacement(t *testing.T) {
	g := newTestGainTransition(t)
	in := waveform.FromMono(testutil.Ones(8))

	p := GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 6,
		T0:              -6 + 2,
		StartGainDB:     -20,
		EndGainDB:       0,
	}
	out := g.Apply(in, p).Channel(0)
	if len(out) != 8 {
		t.Fatalf("len = %d, want 8", len(out))
	}

	curve := fade.Curve(-20, 0, 6)
	want := []float32{curve[4], curve[5], 1, 1, 1, 1, 1, 1}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-6)
}

func TestGainTransitionApplyDoesNotMutateInput(t *testing.T) {
	g := newTestGainTransition(t)
	input := testutil.DeterministicNoise(7, 0.5, 32)
	in := waveform.FromMono(input)

	out := g.Apply(in, GainTransitionParams{
		ShouldApply:     true,
		FadeTimeSamples: 10,
		T0:              5,
		StartGainDB:     -12,
		EndGainDB:       3,
	})

	testutil.RequireSliceNearlyEqual(t, in.Channel(0), input, 0)

	out.Channel(0)[0] = 99
	if in.Channel(0)[0] == 99 {
		t.Fatal("output aliases input")
	}
}

func TestGainTransitionSkipReturnsCopy(t *testing.T) {
	g := newTestGainTransition(t)
	in := waveform.FromMono([]float32{0.5, 0.6, -0.2, 0})

	out := g.Apply(in, GainTransitionParams{ShouldApply: false, FadeTimeSamples: 3, StartGainDB: -20})
	testutil.RequireSliceNearlyEqual(t, out.Channel(0), in.Channel(0), 0)

	out.Channel(0)[0] = 1
	if in.Channel(0)[0] != 0.5 {
		t.Fatal("skipped output aliases input")
	}
}

func TestGainTransitionProcessProbability(t *testing.T) {
	in := waveform.FromMono(testutil.Ones(100))

	never := newTestGainTransition(t, WithProbability(0), WithGainRangeDB(-20, -20))
	out, err := never.Process(NewRand(1), in, 16000)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Channel(0), in.Channel(0), 0)

	always := newTestGainTransition(t, WithProbability(1), WithGainRangeDB(-20, -20))
	out, p, err := always.Augment(NewRand(1), in, 16000)
	if err != nil {
		t.Fatalf("Augment() error = %v", err)
	}
	if !p.ShouldApply {
		t.Fatal("p=1 must always apply")
	}
	testutil.RequireSliceNearlyEqual(t, out.Channel(0), testutil.DC(0.1, 100), 1e-6)
}

func TestGainTransitionPreservesShape(t *testing.T) {
	g := newTestGainTransition(t, WithProbability(1))

	mono := waveform.FromMono([]float32{0.5, 0.6, -0.2, 0})
	out, err := g.Process(NewRand(3), mono, 16000)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !out.SameShape(mono) || !out.Mono() {
		t.Fatalf("mono shape changed: (%d, %d) mono=%v", out.Channels(), out.Len(), out.Mono())
	}

	stereo, err := waveform.FromChannels([][]float32{
		{0.9, 0.5, -0.25, -0.125, 0},
		{0.95, 0.5, -0.25, -0.125, 0},
	})
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}
	out, err = g.Process(NewRand(3), stereo, 16000)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !out.SameShape(stereo) {
		t.Fatalf("stereo shape changed: (%d, %d)", out.Channels(), out.Len())
	}
	testutil.RequireFinite(t, out.Data())
}

func TestGainTransitionReproducible(t *testing.T) {
	in := waveform.FromMono(testutil.DeterministicSine(440, 16000, 0.8, 4000))

	g1 := newTestGainTransition(t, WithProbability(1))
	g2 := newTestGainTransition(t, WithProbability(1))

	for seed := uint64(0); seed < 10; seed++ {
		a, err := g1.Process(NewRand(seed), in, 16000)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		b, err := g2.Process(NewRand(seed), in, 16000)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, a.Channel(0), b.Channel(0), 0)
	}
}

func TestGainTransitionRandomizeParametersBounds(t *testing.T) {
	tests := []struct {
		name       string
		opts       []GainTransitionOption
		total      int
		sampleRate int
		minFade    int
		maxFade    int
	}{
		{
			name:       "seconds",
			opts:       []GainTransitionOption{WithDurationRange(0.01, 0.05)},
			total:      2000,
			sampleRate: 16000,
			minFade:    160,
			maxFade:    800,
		},
		{
			name:       "samples",
			opts:       []GainTransitionOption{WithDurationUnit(UnitSamples), WithDurationRange(10, 40)},
			total:      50,
			sampleRate: 8000,
			minFade:    10,
			maxFade:    40,
		},
		{
			name:       "fraction",
			opts:       []GainTransitionOption{WithDurationUnit(UnitFraction), WithDurationRange(0.1, 1.5)},
			total:      200,
			sampleRate: 8000,
			minFade:    20,
			maxFade:    300,
		},
		{
			name:       "short clamps to three",
			opts:       []GainTransitionOption{WithDurationUnit(UnitSamples), WithDurationRange(1, 2)},
			total:      10,
			sampleRate: 8000,
			minFade:    3,
			maxFade:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]GainTransitionOption{WithProbability(1), WithGainRangeDB(-18, 3)}, tt.opts...)
			g := newTestGainTransition(t, opts...)
			w := waveform.FromMono(make([]float32, tt.total))
			r := NewRand(11)

			for range 500 {
				p, err := g.RandomizeParameters(r, w, tt.sampleRate)
				if err != nil {
					t.Fatalf("RandomizeParameters() error = %v", err)
				}
				if !p.ShouldApply {
					t.Fatal("p=1 must always apply")
				}
				if p.FadeTimeSamples < tt.minFade || p.FadeTimeSamples > tt.maxFade {
					t.Fatalf("fade = %d, want [%d, %d]", p.FadeTimeSamples, tt.minFade, tt.maxFade)
				}
				if p.T0 < -p.FadeTimeSamples+2 || p.T0 > tt.total-2 {
					t.Fatalf("t0 = %d out of [%d, %d]", p.T0, -p.FadeTimeSamples+2, tt.total-2)
				}
				if p.StartGainDB < -18 || p.StartGainDB > 3 || p.EndGainDB < -18 || p.EndGainDB > 3 {
					t.Fatalf("gains out of range: %+v", p)
				}

				win := p.Window(tt.total)
				if win.Len() < 2 {
					t.Fatalf("window overlaps only %d samples: %+v", win.Len(), p)
				}
			}
		})
	}
}

func TestGainTransitionRandomizeParametersSkipped(t *testing.T) {
	g := newTestGainTransition(t, WithProbability(0))
	p, err := g.RandomizeParameters(NewRand(5), waveform.FromMono(testutil.Ones(10)), 16000)
	if err != nil {
		t.Fatalf("RandomizeParameters() error = %v", err)
	}
	if p != (GainTransitionParams{}) {
		t.Fatalf("skipped params = %+v, want zero value", p)
	}
}

func TestGainTransitionInvalidSampleRate(t *testing.T) {
	g := newTestGainTransition(t, WithProbability(1))
	_, err := g.Process(NewRand(1), waveform.FromMono(testutil.Ones(10)), 0)
	if !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v, want ErrInvalidSampleRate", err)
	}
}

func TestGainTransitionUnknownUnitAtRandomization(t *testing.T) {
	g := &GainTransition{
		cfg:  GainTransitionConfig{MinDuration: 1, MaxDuration: 2, DurationUnit: "minutes"},
		gate: Gate{P: 1},
		log:  quietLogger(),
	}
	_, err := g.RandomizeParameters(NewRand(1), waveform.FromMono(testutil.Ones(10)), 16000)
	if !errors.Is(err, ErrInvalidDurationUnit) {
		t.Fatalf("err = %v, want ErrInvalidDurationUnit", err)
	}
}

func TestNewGainTransitionInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts []GainTransitionOption
	}{
		{name: "gain order", opts: []GainTransitionOption{WithGainRangeDB(6, -6)}},
		{name: "gain nan", opts: []GainTransitionOption{WithGainRangeDB(math.NaN(), 0)}},
		{name: "zero duration", opts: []GainTransitionOption{WithDurationRange(0, 1)}},
		{name: "negative duration", opts: []GainTransitionOption{WithDurationRange(-1, 1)}},
		{name: "duration order", opts: []GainTransitionOption{WithDurationRange(2, 1)}},
		{name: "duration inf", opts: []GainTransitionOption{WithDurationRange(1, math.Inf(1))}},
		{name: "unknown unit", opts: []GainTransitionOption{WithDurationUnit("minutes")}},
		{name: "fractional samples", opts: []GainTransitionOption{WithDurationUnit(UnitSamples), WithDurationRange(1.5, 4)}},
		{name: "probability high", opts: []GainTransitionOption{WithProbability(1.5)}},
		{name: "probability negative", opts: []GainTransitionOption{WithProbability(-0.1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]GainTransitionOption{WithLogger(quietLogger())}, tt.opts...)
			g, err := NewGainTransition(opts...)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
			}
			if g != nil {
				t.Fatal("expected nil transform on error")
			}
		})
	}
}

func TestNewGainTransitionDefaults(t *testing.T) {
	g := newTestGainTransition(t)
	if g.Config() != DefaultGainTransitionConfig() {
		t.Fatalf("Config() = %+v, want defaults", g.Config())
	}
	if g.Name() != "GainTransition" {
		t.Fatalf("Name() = %q", g.Name())
	}
	if !g.SupportsMultichannel() {
		t.Fatal("gain transition supports multichannel audio")
	}
}

func TestNewGainTransitionAcceptsEqualBounds(t *testing.T) {
	g := newTestGainTransition(t, WithGainRangeDB(0, 0), WithDurationRange(1, 1))
	if g.Config().MinGainDB != 0 || g.Config().MaxDuration != 1 {
		t.Fatalf("unexpected config: %+v", g.Config())
	}
}

func TestParseDurationUnit(t *testing.T) {
	for _, s := range []string{"seconds", "samples", "fraction"} {
		u, err := ParseDurationUnit(s)
		if err != nil {
			t.Fatalf("ParseDurationUnit(%q) error = %v", s, err)
		}
		if string(u) != s {
			t.Fatalf("ParseDurationUnit(%q) = %q", s, u)
		}
	}
	if _, err := ParseDurationUnit("ms"); !errors.Is(err, ErrInvalidDurationUnit) {
		t.Fatalf("err = %v, want ErrInvalidDurationUnit", err)
	}
}
