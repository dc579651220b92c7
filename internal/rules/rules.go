// Package rules registers the built-in rule presets.
// Import it for its side effects:
//
//	import _ "github.com/vovakirdan/tui-cca/internal/rules"
package rules

import (
	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/registry"
)

// DefaultID is the preset used when none is requested.
const DefaultID = "default"

// builtin lists the classic cyclic rules. Shapes follow the usual
// R/T/C/N notation: NM is Moore, NN is von Neumann.
var builtin = []registry.Preset{
	{ID: DefaultID, Title: "Default", Rule: cca.DefaultRule()},
	{ID: "313", Title: "313", Rule: rule(1, 3, 3, cca.Moore)},
	{ID: "amoeba", Title: "Amoeba", Rule: rule(3, 10, 2, cca.VonNeumann)},
	{ID: "black-vs-white", Title: "Black vs White", Rule: rule(5, 23, 2, cca.VonNeumann)},
	{ID: "cca", Title: "CCA", Rule: rule(1, 1, 14, cca.VonNeumann)},
	{ID: "cyclic-spirals", Title: "Cyclic Spirals", Rule: rule(3, 5, 8, cca.Moore)},
	{ID: "lava-lamp", Title: "Lava Lamp", Rule: rule(2, 10, 3, cca.Moore)},
	{ID: "perfect-spirals", Title: "Perfect Spirals", Rule: rule(1, 3, 4, cca.Moore)},
	{ID: "squarish-spirals", Title: "Squarish Spirals", Rule: rule(2, 2, 6, cca.VonNeumann)},
	{ID: "stripes", Title: "Stripes", Rule: rule(3, 4, 5, cca.VonNeumann)},
	{ID: "turbulent-phase", Title: "Turbulent Phase", Rule: rule(2, 5, 8, cca.Moore)},
}

func init() {
	for _, p := range builtin {
		registry.Register(p)
	}
}

func rule(radius, threshold, states int, shape cca.Shape) cca.Rule {
	return cca.Rule{
		Radius:    radius,
		Threshold: threshold,
		States:    states,
		Shape:     shape,
	}
}
