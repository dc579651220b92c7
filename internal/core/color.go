package core

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 24-bit colour as painted onto a Canvas.
type RGB struct {
	R, G, B uint8
}

// Colours used for the decorative grid bands.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// IsBlack reports whether the colour is pure black.
// Renderers treat black as transparent and keep the terminal background.
func (c RGB) IsBlack() bool {
	return c == Black
}

// Hex returns the colour as a "#rrggbb" string suitable for lipgloss.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// Blend mixes c towards other by t in [0, 1] using Lab interpolation.
func (c RGB) Blend(other RGB, t float64) RGB {
	mixed := c.colorful().BlendLab(other.colorful(), ClampF(t, 0, 1)).Clamped()
	r, g, b := mixed.RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
