package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/config"
	"github.com/vovakirdan/tui-cca/internal/platform/tui"
	"github.com/vovakirdan/tui-cca/internal/storage"
)

var flagReplay string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the automaton full screen",
	Long: `Run a cyclic cellular automaton in the terminal.

The rule comes from the config file, then --preset, then --rule, then the
individual rule flags. Each terminal row shows two grid rows.

Controls:
  p/space   Pause or resume
  n         Step one generation while paused
  r         Restart with a fresh seed
  +/-       Change speed
  ctrl+s    Save a PNG screenshot
  ?         Toggle help
  q         Quit

Examples:
  cca play
  cca play --preset cyclic-spirals
  cca play --rule R3/T5/C8/NM --seed 7
  cca play --states 14 --threshold 1 --radius 1
  cca play --replay 3f2a`,
	Run: runPlay,
}

func init() {
	addRuleFlags(playCmd)
	playCmd.Flags().StringVar(&flagReplay, "replay", "", "Replay a journaled run by ID or unique prefix")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open the journal (optional, continue without it on failure)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "path", flagDBPath, "error", err)
		store = nil
	}

	settings, err := playSettings(cfg, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting run",
		"rule", settings.Rule.String(),
		"preset", settings.Preset,
		"width", settings.Layout.Width,
		"height", settings.Layout.Height,
		"workers", settings.Workers,
	)
	warnPalette(settings.Rule.States)

	runErr := tui.Run(settings, store)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running automaton: %v\n", runErr)
		os.Exit(1)
	}
}

// playSettings builds the run settings from the resolved config, or from
// the journal when --replay is set.
func playSettings(cfg config.Config, store *storage.Store) (tui.RunSettings, error) {
	termW, termH := terminalSize()

	if flagReplay != "" {
		if store == nil {
			return tui.RunSettings{}, fmt.Errorf("cannot replay %q: run journal unavailable", flagReplay)
		}
		entry, err := store.RunByID(flagReplay)
		if err != nil {
			return tui.RunSettings{}, err
		}
		if entry == nil {
			return tui.RunSettings{}, fmt.Errorf("no journaled run matches %q (see 'cca runs')", flagReplay)
		}
		settings, err := tui.SettingsFromRun(*entry)
		if err != nil {
			return tui.RunSettings{}, err
		}
		settings.TickRate = cfg.Sim.TickRate
		settings.Workers = cfg.Sim.Workers
		settings.Source = "replay"
		logger.Info("replaying run", "run", entry.RunID, "rule", entry.Rule, "seed", entry.Seed)
		return settings, nil
	}

	rule, err := cfg.CCARule()
	if err != nil {
		return tui.RunSettings{}, err
	}

	return tui.RunSettings{
		Preset:   presetLabel(cfg),
		Rule:     rule,
		Layout:   cfg.Layout.Resolve(termW, termH),
		Seed:     cfg.Sim.Seed,
		TickRate: cfg.Sim.TickRate,
		Workers:  cfg.Sim.Workers,
		Source:   "local",
	}, nil
}
