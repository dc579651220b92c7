package config

import (
	_ "embed"
)

//go:embed defaults/cca.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration: the classic
// R6/T7/C18 von Neumann rule fitted to the terminal.
func DefaultConfig() Config {
	return Config{
		Rule: RuleConfig{
			Radius:    6,
			Threshold: 7,
			States:    18,
			Shape:     "von_neumann",
		},
		Layout: LayoutConfig{
			Margin: 4,
			Frame:  2,
		},
		Sim: SimConfig{
			TickRate: 30,
			Workers:  1,
		},
	}
}
