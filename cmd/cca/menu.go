package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/config"
	"github.com/vovakirdan/tui-cca/internal/platform/tui"
	"github.com/vovakirdan/tui-cca/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive preset picker",
	Long: `Open an interactive menu to pick a rule preset and run it.

Press Tab in the menu to browse the run journal and replay a run.
Press b or Esc while a run is on screen to return to the menu.`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Sim.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}

	// Open the journal (optional)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "path", flagDBPath, "error", err)
		store = nil
	}

	width, height := terminalSize()
	runErr := tui.RunSession(store, tui.NewSessionConfig(cfg, width, height))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", runErr)
		os.Exit(1)
	}
}
