package core

import (
	"image"
	"image/color"
)

// Canvas is a fixed-size 2D colour buffer that a simulation paints into.
// It decouples the engine from the terminal: the engine hands over a
// position and a colour, the platform decides how to show it.
type Canvas struct {
	width  int
	height int
	cells  [][]RGB
}

// NewCanvas creates a canvas of the given dimensions filled with black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.allocate()
	return c
}

// allocate creates the underlying cell storage.
func (c *Canvas) allocate() {
	c.cells = make([][]RGB, c.height)
	for y := range c.cells {
		c.cells[y] = make([]RGB, c.width)
	}
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Bounds returns the canvas area as a rectangle at the origin.
func (c *Canvas) Bounds() Rect {
	return NewRect(0, 0, c.width, c.height)
}

// Clear fills the canvas with black.
func (c *Canvas) Clear() {
	c.Fill(Black)
}

// Fill paints every cell with the given colour.
func (c *Canvas) Fill(col RGB) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = col
		}
	}
}

// Paint sets the colour at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Paint(x, y int, col RGB) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = col
}

// At returns the colour at the given position.
// Returns black for out-of-bounds coordinates.
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Black
	}
	return c.cells[y][x]
}

// Equal returns true if both canvases have the same size and contents.
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for y := range c.cells {
		for x := range c.cells[y] {
			if c.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Image converts the canvas to an RGBA image, one pixel per cell.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := range c.cells {
		for x, col := range c.cells[y] {
			img.SetRGBA(x, y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 255})
		}
	}
	return img
}
