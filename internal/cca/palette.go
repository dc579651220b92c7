package cca

import (
	"fmt"

	"github.com/vovakirdan/tui-cca/internal/core"
)

// Palette is an ordered list of colours, one per automaton state.
type Palette []core.RGB

// Named hues shared by the curated palettes.
var (
	darkRed         = core.RGB{R: 181, G: 0, B: 0}
	red             = core.RGB{R: 255, G: 0, B: 0}
	redOrange       = core.RGB{R: 211, G: 46, B: 0}
	orange          = core.RGB{R: 255, G: 153, B: 0}
	orangeYellow    = core.RGB{R: 250, G: 180, B: 0}
	yellow          = core.RGB{R: 255, G: 255, B: 0}
	yellowGreen     = core.RGB{R: 185, G: 255, B: 0}
	green           = core.RGB{R: 0, G: 255, B: 0}
	darkGreen       = core.RGB{R: 0, G: 157, B: 0}
	darkBlueGreen   = core.RGB{R: 0, G: 254, B: 0}
	brightGreenBlue = core.RGB{R: 0, G: 157, B: 99}
	brightBlue      = core.RGB{R: 0, G: 255, B: 255}
	blue            = core.RGB{R: 0, G: 0, B: 255}
	darkBlue        = core.RGB{R: 0, G: 0, B: 136}
	indigo          = core.RGB{R: 63, G: 0, B: 255}
	violet          = core.RGB{R: 127, G: 0, B: 255}
	mauve           = core.RGB{R: 216, G: 0, B: 255}
	pink            = core.RGB{R: 255, G: 0, B: 181}
)

// palettes holds a hand-picked palette for every state count from 3 to 18.
var palettes = map[int]Palette{
	3:  {red, green, violet},
	4:  {red, yellow, green, violet},
	5:  {red, orange, green, blue, violet},
	6:  {red, orange, yellow, green, blue, violet},
	7:  {red, orange, yellow, green, blue, indigo, violet},
	8:  {red, orange, orangeYellow, yellow, green, blue, indigo, violet},
	9:  {red, orange, orangeYellow, yellow, green, blue, indigo, violet, pink},
	10: {red, redOrange, orange, orangeYellow, yellow, green, blue, indigo, violet, pink},
	11: {red, redOrange, orange, orangeYellow, yellow, yellowGreen, green, blue, indigo, violet, pink},
	12: {red, redOrange, orange, orangeYellow, yellow, yellowGreen, green, brightBlue, blue, indigo, violet, pink},
	13: {
		red, redOrange, orange, orangeYellow, yellow, yellowGreen, green,
		brightBlue, blue, darkBlue, indigo, violet, pink,
	},
	14: {
		red, redOrange, orange, orangeYellow, yellow, yellowGreen, green,
		brightGreenBlue, brightBlue, blue, darkBlue, indigo, violet, pink,
	},
	15: {
		red, redOrange, orange, orangeYellow, yellow, yellowGreen, green, darkBlueGreen,
		brightGreenBlue, brightBlue, blue, darkBlue, indigo, violet, pink,
	},
	16: {
		red, redOrange, orange, orangeYellow, yellow, yellowGreen, green, darkBlueGreen,
		brightGreenBlue, brightBlue, blue, darkBlue, indigo, violet, mauve, pink,
	},
	17: {
		darkRed, red, redOrange, orange, orangeYellow, yellow, yellowGreen, green, darkBlueGreen,
		brightGreenBlue, brightBlue, blue, darkBlue, indigo, violet, mauve, pink,
	},
	18: {
		darkRed, red, redOrange, orange, orangeYellow, yellow, yellowGreen, green, darkGreen,
		darkBlueGreen, brightGreenBlue, brightBlue, blue, darkBlue, indigo, violet, mauve, pink,
	},
}

// fallbackPalette is used for any state count without a curated palette.
var fallbackPalette = Palette{red, green}

// PaletteFor returns a copy of the palette for the given state count and
// whether it is a curated one. Uncurated counts get the red/green fallback.
func PaletteFor(states int) (Palette, bool) {
	p, ok := palettes[states]
	if !ok {
		p = fallbackPalette
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out, ok
}

// PaletteWarning returns a PALETTE_GAP ValidationError if there is no curated
// palette for the state count, nil otherwise. It is a warning, not a failure.
func PaletteWarning(states int) error {
	if _, ok := palettes[states]; ok {
		return nil
	}
	return ValidationError{
		Code:  CodePaletteGap,
		Field: "states",
		Message: fmt.Sprintf("no curated palette for %d states, using the %d-colour fallback",
			states, len(fallbackPalette)),
	}
}

// ColorMapper maps states and sentinels to colours for one run.
type ColorMapper struct {
	states  int
	palette Palette
}

// NewColorMapper selects the palette for the given state count.
func NewColorMapper(states int) *ColorMapper {
	p, _ := PaletteFor(states)
	return &ColorMapper{
		states:  states,
		palette: p,
	}
}

// ColorFor returns the colour of a state. The margin sentinel is black and
// the frame sentinel white. States past the end of a fallback palette wrap
// around it. Panics for any other value outside [0, states).
func (m *ColorMapper) ColorFor(state int) core.RGB {
	switch {
	case state == StateMargin:
		return core.Black
	case state == StateFrame:
		return core.White
	case state < 0 || state >= m.states:
		panic(fmt.Sprintf("cca: state %d outside [0, %d)", state, m.states))
	}
	return m.palette[state%len(m.palette)]
}
