package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/config"
	"github.com/vovakirdan/tui-cca/internal/registry"
)

// Rule and layout flags shared by play, check and bench.
var (
	flagPreset    string
	flagRule      string
	flagRadius    int
	flagThreshold int
	flagStates    int
	flagShape     string
	flagWorkers   int
	flagWidth     int
	flagHeight    int
	flagMargin    int
	flagFrame     int
)

// addRuleFlags registers the rule and layout flags on cmd.
func addRuleFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagPreset, "preset", "", "Rule preset (see 'cca presets')")
	f.StringVar(&flagRule, "rule", "", "Rule in R/T/C/N notation, e.g. R1/T3/C3/NM")
	f.IntVar(&flagRadius, "radius", 0, "Neighbourhood radius")
	f.IntVar(&flagThreshold, "threshold", 0, "Neighbours needed to advance")
	f.IntVar(&flagStates, "states", 0, "Number of cyclic states")
	f.StringVar(&flagShape, "shape", "", "Neighbourhood shape: moore or von_neumann")
	f.IntVar(&flagWorkers, "workers", 0, "Row bands scanned concurrently (0 = from config)")
	f.IntVar(&flagWidth, "width", 0, "Grid width in cells (0 = terminal width)")
	f.IntVar(&flagHeight, "height", 0, "Grid height in cells (0 = twice the terminal height)")
	f.IntVar(&flagMargin, "margin", 0, "Black margin thickness")
	f.IntVar(&flagFrame, "frame", 0, "White frame thickness")
}

// resolveConfig loads the config file and applies, in order, the preset,
// the --rule notation and the individual flags the user set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset := cfg.Preset
	if flagPreset != "" {
		preset = flagPreset
	}
	if preset != "" {
		p, err := registry.Lookup(preset)
		if err != nil {
			return cfg, fmt.Errorf("%w (run 'cca presets' to list them)", err)
		}
		config.ApplyPreset(&cfg, p)
	}

	if flagRule != "" {
		rule, err := cca.ParseRule(flagRule)
		if err != nil {
			return cfg, err
		}
		cfg.SetRule(rule)
		cfg.Preset = ""
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("radius") {
		cfg.Rule.Radius = flagRadius
	}
	if changed("threshold") {
		cfg.Rule.Threshold = flagThreshold
	}
	if changed("states") {
		cfg.Rule.States = flagStates
	}
	if changed("shape") {
		cfg.Rule.Shape = flagShape
	}
	if changed("radius") || changed("threshold") || changed("states") || changed("shape") {
		cfg.Preset = ""
	}

	if changed("workers") {
		cfg.Sim.Workers = flagWorkers
	}
	if changed("width") {
		cfg.Layout.Width = flagWidth
	}
	if changed("height") {
		cfg.Layout.Height = flagHeight
	}
	if changed("margin") {
		cfg.Layout.Margin = flagMargin
	}
	if changed("frame") {
		cfg.Layout.Frame = flagFrame
	}

	if changed("fps") {
		cfg.Sim.TickRate = flagFPS
	}
	if changed("seed") {
		cfg.Sim.Seed = flagSeed
	}

	return cfg, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// presetLabel names the run in the journal.
func presetLabel(cfg config.Config) string {
	if cfg.Preset == "" {
		return "custom"
	}
	return cfg.Preset
}

// warnPalette logs a warning when the state count has no curated palette.
func warnPalette(states int) {
	if err := cca.PaletteWarning(states); err != nil {
		logger.Warn("using fallback palette", "states", states, "warning", err)
	}
}
