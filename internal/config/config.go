// Package config provides YAML-based configuration loading for the
// automaton: the rule, the grid layout and the simulation pace.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-cca/internal/cca"
)

// Config is the full configuration for a run.
type Config struct {
	Preset string       `yaml:"preset"` // Replaces Rule when set
	Rule   RuleConfig   `yaml:"rule"`
	Layout LayoutConfig `yaml:"layout"`
	Sim    SimConfig    `yaml:"sim"`
}

// RuleConfig defines the transition rule.
type RuleConfig struct {
	Radius    int    `yaml:"radius"`
	Threshold int    `yaml:"threshold"`
	States    int    `yaml:"states"`
	Shape     string `yaml:"shape"` // "moore" or "von_neumann"
}

// LayoutConfig defines the grid size and its concentric bands.
type LayoutConfig struct {
	Width  int `yaml:"width"`  // 0 = terminal width
	Height int `yaml:"height"` // 0 = twice the terminal height, minus the HUD
	Margin int `yaml:"margin"`
	Frame  int `yaml:"frame"`
}

// SimConfig defines how the host drives the simulator.
type SimConfig struct {
	TickRate int   `yaml:"tick_rate"`
	Workers  int   `yaml:"workers"`
	Seed     int64 `yaml:"seed"` // 0 = seed from the clock
}

// CCARule converts the rule section into an engine rule.
// The result is not validated; cca.New does that.
func (c Config) CCARule() (cca.Rule, error) {
	shape, ok := cca.ParseShape(c.Rule.Shape)
	if !ok {
		return cca.Rule{}, cca.ValidationError{
			Code:    cca.CodeConfiguration,
			Field:   "shape",
			Message: fmt.Sprintf("unknown neighbourhood %q", c.Rule.Shape),
		}
	}
	return cca.Rule{
		Radius:    c.Rule.Radius,
		Threshold: c.Rule.Threshold,
		States:    c.Rule.States,
		Shape:     shape,
	}, nil
}

// SetRule overwrites the rule section.
func (c *Config) SetRule(r cca.Rule) {
	c.Rule = RuleConfig{
		Radius:    r.Radius,
		Threshold: r.Threshold,
		States:    r.States,
		Shape:     r.Shape.String(),
	}
}

// Resolve returns the grid layout for a terminal of termW x termH cells.
// Each terminal line shows two grid rows and the last line holds the HUD.
func (l LayoutConfig) Resolve(termW, termH int) cca.Layout {
	width := l.Width
	if width <= 0 {
		width = termW
	}
	height := l.Height
	if height <= 0 {
		height = (termH - HUDLines) * 2
	}
	return cca.Layout{
		Width:  width,
		Height: height,
		Margin: l.Margin,
		Frame:  l.Frame,
	}
}

// HUDLines is the number of terminal lines below the grid.
const HUDLines = 1
