package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/config"
)

var flagDump bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a configuration without running it",
	Long: `Resolve the configuration exactly as 'cca play' would and validate
the rule and grid layout. Exits with status 1 when anything is invalid.

Examples:
  cca check
  cca check --config ./cca.yaml
  cca check --rule R2/T30/C3/NM
  cca check --preset stripes --dump`,
	Run: runCheck,
}

func init() {
	addRuleFlags(checkCmd)
	checkCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the resolved config as YAML")
}

func runCheck(cmd *cobra.Command, _ []string) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		reportInvalid(err)
		os.Exit(1)
	}

	if flagDump {
		out, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		fmt.Println()
	}

	rule, err := cfg.CCARule()
	if err == nil {
		err = rule.Validate()
	}
	if err != nil {
		reportInvalid(err)
		os.Exit(1)
	}

	termW, termH := terminalSize()
	layout := cfg.Layout.Resolve(termW, termH)
	if err := layout.Validate(rule.Radius); err != nil {
		reportInvalid(err)
		os.Exit(1)
	}

	fmt.Printf("Rule     %s (%d of %d neighbours)\n", rule, rule.Threshold, rule.MaxNeighbors())
	fmt.Printf("Grid     %dx%d, margin %d, frame %d\n", layout.Width, layout.Height, layout.Margin, layout.Frame)
	interior := layout.Interior()
	fmt.Printf("Interior %dx%d cells\n", interior.W, interior.H)

	if err := cca.PaletteWarning(rule.States); err != nil {
		fmt.Printf("Palette  fallback (%v)\n", err)
	} else {
		fmt.Println("Palette  curated")
	}
	fmt.Println()
	fmt.Println("OK")
}

// reportInvalid prints a validation error with its code when it has one.
func reportInvalid(err error) {
	var verr cca.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "Invalid [%s] %s: %s\n", verr.Code, verr.Field, verr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
