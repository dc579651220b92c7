package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/config"
)

var (
	flagBenchGenerations int
	flagBenchTermSize    bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the engine without a terminal",
	Long: `Run the automaton headless and report how fast it advances.

Margin and frame come from the config and flags as in 'cca play'. A width
or height left at 0 is 580 rather than the terminal size, so results do not
depend on the terminal unless --terminal-size is set.

Examples:
  cca bench
  cca bench --generations 1000 --workers 8
  cca bench --preset lava-lamp --seed 1`,
	Run: runBench,
}

func init() {
	addRuleFlags(benchCmd)
	benchCmd.Flags().IntVar(&flagBenchGenerations, "generations", 500, "Generations to run")
	benchCmd.Flags().BoolVar(&flagBenchTermSize, "terminal-size", false, "Size the grid to the terminal like 'cca play'")
}

func runBench(cmd *cobra.Command, _ []string) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rule, err := cfg.CCARule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	layout := benchLayout(cfg.Layout, flagBenchTermSize)

	sim, err := cca.New(rule, layout, cca.WithWorkers(cfg.Sim.Workers))
	if err != nil {
		reportInvalid(err)
		os.Exit(1)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim.Start(rand.New(rand.NewSource(seed)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("benchmarking",
		"rule", rule.String(),
		"grid", fmt.Sprintf("%dx%d", layout.Width, layout.Height),
		"workers", cfg.Sim.Workers,
		"seed", seed,
	)

	started := time.Now()
	var transitions int64
	var generations int
	for generations < flagBenchGenerations && ctx.Err() == nil {
		res := sim.Tick()
		transitions += int64(res.Transitions)
		generations++
	}
	elapsed := time.Since(started)

	interior := layout.Interior()
	cells := float64(interior.W*interior.H) * float64(generations)
	secs := elapsed.Seconds()
	if secs == 0 {
		secs = 1e-9
	}

	fmt.Printf("Rule          %s\n", rule)
	fmt.Printf("Grid          %dx%d (%s interior cells)\n",
		layout.Width, layout.Height, humanize.Comma(int64(interior.W*interior.H)))
	fmt.Printf("Generations   %s in %s\n", humanize.Comma(int64(generations)), elapsed.Round(time.Millisecond))
	fmt.Printf("Speed         %s gen/s, %s\n",
		humanize.CommafWithDigits(float64(generations)/secs, 1), humanize.SI(cells/secs, "cells/s"))
	fmt.Printf("Transitions   %s\n", humanize.Comma(transitions))
	if ctx.Err() != nil {
		fmt.Println("Interrupted before the last generation.")
	}
}

// benchLayout resolves the grid for a benchmark. Unset dimensions fall back
// to the default 580x580 grid, or to the terminal when fitTerminal is set.
func benchLayout(lc config.LayoutConfig, fitTerminal bool) cca.Layout {
	if fitTerminal {
		return lc.Resolve(terminalSize())
	}
	layout := cca.DefaultLayout()
	if lc.Width > 0 {
		layout.Width = lc.Width
	}
	if lc.Height > 0 {
		layout.Height = lc.Height
	}
	layout.Margin = lc.Margin
	layout.Frame = lc.Frame
	return layout
}
