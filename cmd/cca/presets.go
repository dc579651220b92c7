package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/registry"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List rule presets",
	Long:  `Shows every built-in rule preset with its rule notation.`,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-14s  %-4s  %-8s  %s\n", maxIDLen, "ID", "Rule", "Max", "Palette", "Title")
	fmt.Printf("  %-*s  %-14s  %-4s  %-8s  %s\n", maxIDLen, "--", "----", "---", "-------", "-----")

	for _, p := range presets {
		palette := "curated"
		if _, ok := cca.PaletteFor(p.Rule.States); !ok {
			palette = "fallback"
		}
		fmt.Printf("  %-*s  %-14s  %-4d  %-8s  %s\n",
			maxIDLen, p.ID, p.Rule.String(), p.Rule.MaxNeighbors(), palette, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'cca play --preset <id>' to run a preset.")
}
