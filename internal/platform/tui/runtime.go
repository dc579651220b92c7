package tui

import (
	"github.com/vovakirdan/tui-cca/internal/config"
	"github.com/vovakirdan/tui-cca/internal/core"
)

// sessionRuntime builds the runtime config for a terminal of the given size.
func sessionRuntime(width, height int, sim config.SimConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if width > 0 {
		rt.ScreenW = width
	}
	if height > 0 {
		rt.ScreenH = height
	}
	if sim.TickRate > 0 {
		rt.TickRate = core.Clamp(sim.TickRate, core.MinTickRate, core.MaxTickRate)
	}
	rt.Seed = sim.Seed
	return rt
}

// NewSessionConfig builds a local session config from a loaded config.
func NewSessionConfig(cfg config.Config, width, height int) SessionConfig {
	return SessionConfig{
		Runtime: sessionRuntime(width, height, cfg.Sim),
		Layout:  cfg.Layout,
		Workers: cfg.Sim.Workers,
		Preset:  cfg.Preset,
		Source:  "local",
	}
}
