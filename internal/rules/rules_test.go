package rules_test

import (
	"testing"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/registry"
	"github.com/vovakirdan/tui-cca/internal/rules"
)

func TestBuiltinPresetsRegistered(t *testing.T) {
	tests := []struct {
		id   string
		rule string
	}{
		{rules.DefaultID, "R6/T7/C18/NN"},
		{"313", "R1/T3/C3/NM"},
		{"amoeba", "R3/T10/C2/NN"},
		{"black-vs-white", "R5/T23/C2/NN"},
		{"cca", "R1/T1/C14/NN"},
		{"cyclic-spirals", "R3/T5/C8/NM"},
		{"lava-lamp", "R2/T10/C3/NM"},
		{"perfect-spirals", "R1/T3/C4/NM"},
		{"squarish-spirals", "R2/T2/C6/NN"},
		{"stripes", "R3/T4/C5/NN"},
		{"turbulent-phase", "R2/T5/C8/NM"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := registry.Lookup(tt.id)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if got := p.Rule.String(); got != tt.rule {
				t.Errorf("rule = %s, expected %s", got, tt.rule)
			}
			if p.Title == "" {
				t.Error("preset has no title")
			}
		})
	}

	if got := len(registry.List()); got != len(tests) {
		t.Errorf("registry holds %d presets, expected %d", got, len(tests))
	}
}

func TestPresetsRunOnSmallGrid(t *testing.T) {
	for _, p := range registry.List() {
		t.Run(p.ID, func(t *testing.T) {
			inset := p.Rule.Radius + 1
			layout := cca.Layout{Width: 4*inset + 8, Height: 4*inset + 8, Margin: inset - 1, Frame: 1}

			sim, err := cca.New(p.Rule, layout)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			sim.Start(fixedSource(0))
			sim.Tick()
		})
	}
}

// fixedSource cycles through states deterministically.
type fixedSource int

func (f fixedSource) Intn(n int) int {
	return int(f) % n
}
