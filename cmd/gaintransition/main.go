// Command gaintransition runs the gain transition augmentation on a generated
// test signal and prints the parameters drawn for each run.
//
// Usage:
//
//	gaintransition [flags]
//
// Examples:
//
//	gaintransition --runs 8
//	gaintransition --signal noise --channels 2 --unit fraction --min-duration 0.1 --max-duration 0.6
//	gaintransition --config augment.yaml --seed 7
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/signal"
	"github.com/cwbudde/algo-augment/waveform"
)

var CLI struct {
	Config      string  `help:"YAML gain transition configuration; overrides the gain and duration flags"`
	MinGainDB   float64 `name:"min-gain-db" help:"Minimum gain in dB" default:"-24"`
	MaxGainDB   float64 `name:"max-gain-db" help:"Maximum gain in dB" default:"6"`
	MinDuration float64 `help:"Minimum transition length, in --unit" default:"0.2"`
	MaxDuration float64 `help:"Maximum transition length, in --unit" default:"6"`
	Unit        string  `help:"Duration unit" enum:"seconds,samples,fraction" default:"seconds"`
	P           float64 `name:"p" help:"Probability of applying the transform" default:"1"`

	Signal     string  `help:"Test signal" enum:"sine,noise,dc" default:"sine"`
	Freq       float64 `help:"Sine frequency in Hz" default:"440"`
	Seconds    float64 `help:"Signal length in seconds" default:"2"`
	SampleRate int     `name:"sample-rate" help:"Sample rate in Hz" default:"16000"`
	Channels   int     `help:"Channel count" default:"1"`

	Seed     uint64 `help:"Random seed" default:"1"`
	Runs     int    `help:"Number of independent runs" default:"5"`
	LogLevel string `name:"log-level" help:"Log level" enum:"debug,info,warn,error" default:"warn"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("gaintransition"),
		kong.Description("Fade a test signal between two random gains and report the draws."),
		kong.UsageOnError(),
	)

	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(CLI.LogLevel)
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
	log.SetLevel(level)

	g, err := buildTransform(log)
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	in, err := buildSignal()
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	printHeader(g.Config(), in, CLI.SampleRate)

	r := augment.NewRand(CLI.Seed)
	rows := make([]runRow, 0, CLI.Runs)
	for i := range CLI.Runs {
		out, p, err := g.Augment(r, in, CLI.SampleRate)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}
		rows = append(rows, runRow{
			run:     i + 1,
			params:  p,
			peakIn:  peak(in),
			peakOut: peak(out),
		})
	}
	printRuns(rows)
}

func buildTransform(log logrus.FieldLogger) (*augment.GainTransition, error) {
	if CLI.Config != "" {
		f, err := os.Open(CLI.Config)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		cfg, err := augment.LoadGainTransitionConfig(f, log)
		if err != nil {
			return nil, err
		}
		return augment.NewGainTransitionFromConfig(cfg, augment.WithLogger(log))
	}

	unit, err := augment.ParseDurationUnit(CLI.Unit)
	if err != nil {
		return nil, err
	}
	return augment.NewGainTransition(
		augment.WithGainRangeDB(CLI.MinGainDB, CLI.MaxGainDB),
		augment.WithDurationRange(CLI.MinDuration, CLI.MaxDuration),
		augment.WithDurationUnit(unit),
		augment.WithProbability(CLI.P),
		augment.WithLogger(log),
	)
}

func buildSignal() (waveform.Waveform, error) {
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(CLI.SampleRate), core.WithChannels(CLI.Channels)},
		signal.WithSeed(CLI.Seed),
	)
	n := core.RoundHalfEven(CLI.Seconds * float64(CLI.SampleRate))

	switch CLI.Signal {
	case "noise":
		return g.WhiteNoise(0.5, n)
	case "dc":
		return g.DC(0.5, n)
	default:
		return g.Sine(CLI.Freq, 0.8, n)
	}
}

func peak(w waveform.Waveform) float64 {
	buf := make([]float64, len(w.Data()))
	core.Widen(buf, w.Data())
	return vecmath.MaxAbs(buf)
}
