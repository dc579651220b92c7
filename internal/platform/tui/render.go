package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cca/internal/core"
)

// Half-block glyphs. One terminal cell shows two grid rows.
const (
	glyphEmpty = " "
	glyphUpper = "▀"
	glyphLower = "▄"
	glyphFull  = "█"
)

// cellPair is the colour of the upper and lower grid row of one terminal cell.
type cellPair struct {
	top, bottom core.RGB
}

// Renderer converts a Canvas into styled half-block text.
// Styles are cached per colour pair.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[cellPair]lipgloss.Style
	theme  Theme
}

// NewRenderer creates a renderer. A nil lipgloss renderer selects the
// default one bound to stdout; SSH sessions pass their own.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	r := &Renderer{
		lg:     lg,
		styles: make(map[cellPair]lipgloss.Style),
	}
	r.theme = NewTheme(r)
	return r
}

// Theme returns the chrome styles bound to this renderer.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// NewStyle returns a style bound to the renderer's output.
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle()
}

// glyph returns the character and style for a colour pair.
// Black is left to the terminal background.
func (r *Renderer) glyph(p cellPair) (string, lipgloss.Style, bool) {
	switch {
	case p.top.IsBlack() && p.bottom.IsBlack():
		return glyphEmpty, lipgloss.Style{}, false
	case p.top == p.bottom:
		return glyphFull, r.style(p, func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(lipgloss.Color(p.top.Hex()))
		}), true
	case p.top.IsBlack():
		return glyphLower, r.style(p, func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(lipgloss.Color(p.bottom.Hex()))
		}), true
	case p.bottom.IsBlack():
		return glyphUpper, r.style(p, func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(lipgloss.Color(p.top.Hex()))
		}), true
	default:
		return glyphUpper, r.style(p, func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(lipgloss.Color(p.top.Hex())).
				Background(lipgloss.Color(p.bottom.Hex()))
		}), true
	}
}

func (r *Renderer) style(p cellPair, build func(lipgloss.Style) lipgloss.Style) lipgloss.Style {
	if s, ok := r.styles[p]; ok {
		return s
	}
	s := build(r.lg.NewStyle())
	r.styles[p] = s
	return s
}

// RenderCanvas converts the view region of a canvas to a styled string.
// Every two grid rows become one terminal line; an odd last row is paired
// with black. dim in [0, 1] darkens every colour towards black.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (r *Renderer) RenderCanvas(c *core.Canvas, view core.Rect, dim float64) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(view.W*(view.H/2+1)*4 + view.H)

	pairAt := func(x, y int) cellPair {
		p := cellPair{top: c.At(x, y)}
		if y+1 < view.Bottom() {
			p.bottom = c.At(x, y+1)
		}
		if dim > 0 {
			p.top = darken(p.top, dim)
			p.bottom = darken(p.bottom, dim)
		}
		return p
	}

	first := true
	for y := view.Y; y < view.Bottom(); y += 2 {
		if !first {
			sb.WriteRune('\n')
		}
		first = false

		x := view.X
		for x < view.Right() {
			start := pairAt(x, y)
			n := 0
			for x < view.Right() && pairAt(x, y) == start {
				n++
				x++
			}

			glyph, style, styled := r.glyph(start)
			run := strings.Repeat(glyph, n)
			if styled {
				run = style.Render(run)
			}
			sb.WriteString(run)
		}
	}
	return sb.String()
}

// darken blends a colour towards black, leaving black untouched.
func darken(c core.RGB, t float64) core.RGB {
	if c.IsBlack() {
		return c
	}
	return c.Blend(core.Black, t)
}
