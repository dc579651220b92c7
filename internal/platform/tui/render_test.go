package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cca/internal/core"
)

// plainRenderer writes no escape sequences, so output can be compared as text.
func plainRenderer() *Renderer {
	return NewRenderer(lipgloss.NewRenderer(io.Discard))
}

var (
	red   = core.RGB{R: 255}
	green = core.RGB{G: 255}
)

// testCanvas is 3x3:
//
//	red   black white
//	red   black black
//	black green black
func testCanvas() *core.Canvas {
	c := core.NewCanvas(3, 3)
	c.Paint(0, 0, red)
	c.Paint(2, 0, core.White)
	c.Paint(0, 1, red)
	c.Paint(1, 2, green)
	return c
}

func TestRenderCanvasHalfBlocks(t *testing.T) {
	r := plainRenderer()
	c := testCanvas()

	got := r.RenderCanvas(c, c.Bounds(), 0)
	want := "█ ▀\n ▀ "
	if got != want {
		t.Errorf("RenderCanvas() = %q, expected %q", got, want)
	}
}

func TestRenderCanvasLowerHalf(t *testing.T) {
	r := plainRenderer()
	c := core.NewCanvas(2, 2)
	c.Paint(0, 1, green)
	c.Paint(1, 0, red)
	c.Paint(1, 1, green)

	got := r.RenderCanvas(c, c.Bounds(), 0)
	if got != "▄▀" {
		t.Errorf("RenderCanvas() = %q, expected %q", got, "▄▀")
	}
}

func TestRenderCanvasCrop(t *testing.T) {
	r := plainRenderer()
	c := testCanvas()

	got := r.RenderCanvas(c, core.NewRect(0, 0, 2, 2), 0)
	if got != "█ " {
		t.Errorf("cropped RenderCanvas() = %q, expected %q", got, "█ ")
	}
}

func TestRenderCanvasLineCount(t *testing.T) {
	r := plainRenderer()
	c := core.NewCanvas(10, 7)
	c.Fill(red)

	out := r.RenderCanvas(c, c.Bounds(), 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d width = %d, expected 10", i, w)
		}
	}
	// Odd last row pairs with black
	if !strings.Contains(lines[3], glyphUpper) {
		t.Errorf("last line %q should use the upper half block", lines[3])
	}
}

func TestRenderCanvasStyleCache(t *testing.T) {
	r := plainRenderer()
	c := testCanvas()

	r.RenderCanvas(c, c.Bounds(), 0)
	n := len(r.styles)
	r.RenderCanvas(c, c.Bounds(), 0)
	if len(r.styles) != n {
		t.Errorf("style cache grew from %d to %d on identical frame", n, len(r.styles))
	}
	if n != 3 {
		t.Errorf("cached %d styles, expected 3", n)
	}
}

func TestDarken(t *testing.T) {
	if got := darken(core.Black, 0.5); got != core.Black {
		t.Errorf("darken(black) = %v, expected black", got)
	}
	got := darken(core.White, 0.5)
	if got == core.White || got.IsBlack() {
		t.Errorf("darken(white, 0.5) = %v, expected a grey", got)
	}
	if got := darken(red, 0); got != red {
		t.Errorf("darken(red, 0) = %v, expected red", got)
	}
}
