package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/cca"
)

// newRuleCmd returns a command with fresh rule flags and a config file
// holding an R2/T3/C5 Moore rule.
func newRuleCmd(t *testing.T, preset string) *cobra.Command {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cca.yaml")
	data := "preset: \"" + preset + "\"\n" +
		"rule:\n  radius: 2\n  threshold: 3\n  states: 5\n  shape: moore\n" +
		"layout:\n  margin: 2\n  frame: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	flagConfig = path
	t.Cleanup(func() { flagConfig = "" })

	cmd := &cobra.Command{Use: "test"}
	addRuleFlags(cmd)
	return cmd
}

func mustRule(t *testing.T, cmd *cobra.Command) (cca.Rule, string) {
	t.Helper()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	rule, err := cfg.CCARule()
	if err != nil {
		t.Fatalf("CCARule: %v", err)
	}
	return rule, cfg.Preset
}

func TestResolveConfigFileRule(t *testing.T) {
	rule, preset := mustRule(t, newRuleCmd(t, ""))

	if rule.String() != "R2/T3/C5/NM" {
		t.Errorf("rule = %s, expected R2/T3/C5/NM", rule)
	}
	if preset != "" {
		t.Errorf("preset = %q, expected none", preset)
	}
}

func TestResolveConfigPresetFromFile(t *testing.T) {
	rule, preset := mustRule(t, newRuleCmd(t, "313"))

	if rule.String() != "R1/T3/C3/NM" {
		t.Errorf("rule = %s, expected R1/T3/C3/NM", rule)
	}
	if preset != "313" {
		t.Errorf("preset = %q, expected 313", preset)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	cmd := newRuleCmd(t, "")
	for name, value := range map[string]string{
		"preset":    "lava-lamp",
		"rule":      "R1/T1/C14/NN",
		"threshold": "2",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}

	rule, preset := mustRule(t, cmd)

	// --rule beats --preset, --threshold beats --rule
	if rule.String() != "R1/T2/C14/NN" {
		t.Errorf("rule = %s, expected R1/T2/C14/NN", rule)
	}
	if preset != "" {
		t.Errorf("preset = %q, expected it cleared by --rule", preset)
	}
}

func TestResolveConfigLayoutFlags(t *testing.T) {
	cmd := newRuleCmd(t, "")
	if err := cmd.Flags().Set("width", "64"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("frame", "3"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Layout.Width != 64 || cfg.Layout.Frame != 3 {
		t.Errorf("layout = %+v, expected width 64 frame 3", cfg.Layout)
	}
	if cfg.Layout.Margin != 2 {
		t.Errorf("margin = %d, expected 2 from the file", cfg.Layout.Margin)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	t.Run("unknown preset", func(t *testing.T) {
		cmd := newRuleCmd(t, "")
		if err := cmd.Flags().Set("preset", "no-such-rule"); err != nil {
			t.Fatal(err)
		}
		if _, err := resolveConfig(cmd); err == nil {
			t.Error("expected error for unknown preset")
		}
	})

	t.Run("bad notation", func(t *testing.T) {
		cmd := newRuleCmd(t, "")
		if err := cmd.Flags().Set("rule", "R1/T3"); err != nil {
			t.Fatal(err)
		}
		if _, err := resolveConfig(cmd); err == nil {
			t.Error("expected error for malformed rule")
		}
	})
}

func TestConnectPort(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"[::1]:2200":     "2200",
		"2222":           "2222",
	}
	for addr, expected := range tests {
		if got := connectPort(addr); got != expected {
			t.Errorf("connectPort(%q) = %q, expected %q", addr, got, expected)
		}
	}
}
