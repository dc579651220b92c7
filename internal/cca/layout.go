package cca

import "github.com/vovakirdan/tui-cca/internal/core"

// Sentinel states for the decorative bands around the simulated interior.
// They lie outside [0, States) and are never touched by the rule.
const (
	StateMargin = -2
	StateFrame  = -1
)

// Region identifies which concentric band a cell belongs to.
type Region uint8

const (
	RegionMargin Region = iota
	RegionFrame
	RegionInterior
)

// String returns the string representation of a region.
func (r Region) String() string {
	switch r {
	case RegionMargin:
		return "margin"
	case RegionFrame:
		return "frame"
	case RegionInterior:
		return "interior"
	default:
		return "unknown"
	}
}

// Layout describes the grid dimensions and its three regions: an outer
// margin, a frame band inside it and the simulated interior.
type Layout struct {
	Width  int
	Height int
	Margin int // Width of the outer margin band
	Frame  int // Width of the frame band
}

// DefaultLayout mirrors the classic 580x580 window: a 540 cell interior
// inside a 5 cell frame and a 15 cell margin.
func DefaultLayout() Layout {
	return Layout{
		Width:  580,
		Height: 580,
		Margin: 15,
		Frame:  5,
	}
}

// Bounds returns the whole grid.
func (l Layout) Bounds() core.Rect {
	return core.NewRect(0, 0, l.Width, l.Height)
}

// FrameBounds returns the area inside the margin (frame plus interior).
func (l Layout) FrameBounds() core.Rect {
	return l.Bounds().Inset(l.Margin)
}

// Interior returns the simulated area.
func (l Layout) Interior() core.Rect {
	return l.Bounds().Inset(l.Margin + l.Frame)
}

// Inset returns how far the interior is from the grid edge.
func (l Layout) Inset() int {
	return l.Margin + l.Frame
}

// Region returns the band that (x, y) falls in.
// Coordinates outside the grid count as margin.
func (l Layout) Region(x, y int) Region {
	if l.Interior().Contains(x, y) {
		return RegionInterior
	}
	if l.FrameBounds().Contains(x, y) {
		return RegionFrame
	}
	return RegionMargin
}

// Validate checks that a neighbourhood of the given radius, centred on any
// interior cell, stays inside the grid. Returns a LAYOUT ValidationError.
func (l Layout) Validate(radius int) error {
	if l.Width < 1 || l.Height < 1 {
		return layoutError("size", "grid must be at least 1x1, got %dx%d", l.Width, l.Height)
	}
	if l.Margin < 0 {
		return layoutError("margin", "must not be negative, got %d", l.Margin)
	}
	if l.Frame < 0 {
		return layoutError("frame", "must not be negative, got %d", l.Frame)
	}
	if l.Inset() < radius {
		return layoutError("inset",
			"interior is inset by %d cells (margin %d + frame %d) but radius %d reaches further",
			l.Inset(), l.Margin, l.Frame, radius)
	}
	if l.Interior().Empty() {
		return layoutError("size",
			"%dx%d grid leaves no interior inside a %d cell inset",
			l.Width, l.Height, l.Inset())
	}
	return nil
}
