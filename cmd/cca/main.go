// cca runs cyclic cellular automata in the terminal.
//
// Usage:
//
//	cca play                 - Run the automaton full screen
//	cca menu                 - Pick a rule preset interactively
//	cca presets              - List rule presets
//	cca runs                 - Show the run journal
//	cca check                - Validate a configuration without running it
//	cca bench                - Time the engine headless
//	cca serve                - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config)
//	--seed <value>        - Set RNG seed for a reproducible run
//	--db <path>           - Set journal path (default: ~/.tui-cca/runs.db)
//	--config <path>       - Use a specific config file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the built-in rule presets
	_ "github.com/vovakirdan/tui-cca/internal/rules"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cca",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cca",
	Short: "Cyclic cellular automata in your terminal",
	Long: `cca runs cyclic cellular automata: every cell holds one of N states
and advances to the next state when enough of its neighbours already hold it.

Available commands:
  play     - Run the automaton full screen
  menu     - Interactive preset picker and run journal
  presets  - List rule presets
  runs     - Show journaled runs
  check    - Validate a configuration
  bench    - Time the engine without a terminal
  serve    - Start SSH server for remote viewing

Examples:
  cca play
  cca play --preset lava-lamp
  cca play --rule R1/T3/C3/NM --seed 42
  cca menu
  cca serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in generations per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tui-cca/runs.db", "Path to the run journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
}
