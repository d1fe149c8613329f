package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/waveform"
)

var (
	accentColor = lipgloss.Color("#FFA500")
	mutedColor  = lipgloss.Color("#888888")
	errorColor  = lipgloss.Color("#A40000")
	skipColor   = lipgloss.Color("#5F5F5F")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	keyStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	valueStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	skipStyle  = lipgloss.NewStyle().Foreground(skipColor).Italic(true)
	cellStyle  = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
)

type runRow struct {
	run     int
	params  augment.GainTransitionParams
	peakIn  float64
	peakOut float64
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}

func printHeader(cfg augment.GainTransitionConfig, w waveform.Waveform, sampleRate int) {
	fmt.Println(titleStyle.Render("GainTransition"))
	kv := func(k, v string) {
		fmt.Printf("  %s %s\n", keyStyle.Render(k), valueStyle.Render(v))
	}
	kv("gain:", fmt.Sprintf("[%.1f, %.1f] dB", cfg.MinGainDB, cfg.MaxGainDB))
	kv("duration:", fmt.Sprintf("[%g, %g] %s", cfg.MinDuration, cfg.MaxDuration, cfg.DurationUnit))
	kv("p:", fmt.Sprintf("%.2f", cfg.P))
	kv("signal:", fmt.Sprintf("%d ch x %d samples @ %d Hz", w.Channels(), w.Len(), sampleRate))
	fmt.Println()
}

func printRuns(rows []runRow) {
	header := []string{"run", "fade", "t0", "start dB", "end dB", "peak in", "peak out"}
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = cellStyle.Render(h)
	}
	fmt.Println(keyStyle.Render(strings.Join(cells, "")))

	for _, r := range rows {
		if !r.params.ShouldApply {
			fmt.Println(cellStyle.Render(fmt.Sprint(r.run)) + skipStyle.Render("  skipped"))
			continue
		}
		values := []string{
			fmt.Sprint(r.run),
			fmt.Sprint(r.params.FadeTimeSamples),
			fmt.Sprint(r.params.T0),
			fmt.Sprintf("%.2f", r.params.StartGainDB),
			fmt.Sprintf("%.2f", r.params.EndGainDB),
			fmt.Sprintf("%.2f dB", core.LinearToDB(r.peakIn)),
			fmt.Sprintf("%.2f dB", core.LinearToDB(r.peakOut)),
		}
		for i, v := range values {
			cells[i] = cellStyle.Render(v)
		}
		fmt.Println(strings.Join(cells, ""))
	}
}
