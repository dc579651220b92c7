package core

import "testing"

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(8, 5)

	if c.Width() != 8 {
		t.Errorf("Width() = %d, expected 8", c.Width())
	}
	if c.Height() != 5 {
		t.Errorf("Height() = %d, expected 5", c.Height())
	}

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.At(x, y) != Black {
				t.Errorf("new canvas should be black, got %v at (%d, %d)", c.At(x, y), x, y)
			}
		}
	}
}

func TestCanvasPaintAt(t *testing.T) {
	c := NewCanvas(10, 10)
	red := RGB{255, 0, 0}

	c.Paint(3, 4, red)
	if c.At(3, 4) != red {
		t.Errorf("At(3, 4) = %v, expected %v", c.At(3, 4), red)
	}
	if c.At(4, 3) != Black {
		t.Errorf("At(4, 3) = %v, expected black", c.At(4, 3))
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)

	// Should not panic
	c.Paint(-1, 0, White)
	c.Paint(0, -1, White)
	c.Paint(4, 0, White)
	c.Paint(0, 4, White)

	if c.At(-1, 0) != Black || c.At(10, 10) != Black {
		t.Error("out-of-bounds At should return black")
	}
}

func TestCanvasFillClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Fill(White)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if c.At(x, y) != White {
				t.Fatalf("Fill did not paint (%d, %d)", x, y)
			}
		}
	}

	c.Clear()
	if c.At(1, 1) != Black {
		t.Error("Clear should reset cells to black")
	}
}

func TestCanvasEqual(t *testing.T) {
	a := NewCanvas(3, 3)
	b := NewCanvas(3, 3)

	if !a.Equal(b) {
		t.Error("fresh canvases of the same size should be equal")
	}

	a.Paint(1, 1, White)
	if a.Equal(b) {
		t.Error("canvases with different cells should not be equal")
	}

	if a.Equal(NewCanvas(3, 4)) {
		t.Error("canvases with different sizes should not be equal")
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Paint(1, 0, RGB{10, 20, 30})

	img := c.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds = %v, expected 2x2", img.Bounds())
	}

	px := img.RGBAAt(1, 0)
	if px.R != 10 || px.G != 20 || px.B != 30 || px.A != 255 {
		t.Errorf("pixel (1, 0) = %v, expected {10 20 30 255}", px)
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		c        RGB
		expected string
	}{
		{RGB{255, 0, 0}, "#ff0000"},
		{RGB{0, 157, 99}, "#009d63"},
		{White, "#ffffff"},
		{Black, "#000000"},
	}

	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.expected {
			t.Errorf("%v.Hex() = %q, expected %q", tc.c, got, tc.expected)
		}
	}
}

func TestRGBBlendEndpoints(t *testing.T) {
	red := RGB{255, 0, 0}

	if got := red.Blend(Black, 0); got != red {
		t.Errorf("Blend(t=0) = %v, expected %v", got, red)
	}
	if got := red.Blend(Black, 1); got != Black {
		t.Errorf("Blend(t=1) = %v, expected black", got)
	}
}
