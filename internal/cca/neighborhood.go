package cca

import (
	"fmt"

	"github.com/vovakirdan/tui-cca/internal/core"
)

// Offset is a relative position inside a neighbourhood.
type Offset struct {
	DX, DY int
}

// Neighborhood is the precomputed list of offsets for a shape and radius.
// Offsets are ordered dx outer, dy inner, both ascending from -radius.
// The centre offset is left out: a cell's own state never equals its
// successor, so it could never count as a match anyway.
type Neighborhood struct {
	radius  int
	offsets []Offset
}

// NewNeighborhood builds the offset list for the given shape and radius.
func NewNeighborhood(shape Shape, radius int) Neighborhood {
	n := Neighborhood{
		radius:  radius,
		offsets: make([]Offset, 0, MaxNeighbors(shape, radius)),
	}
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			if i == 0 && j == 0 {
				continue
			}
			if shape == VonNeumann && core.Abs(i)+core.Abs(j) > radius {
				continue
			}
			n.offsets = append(n.offsets, Offset{DX: i, DY: j})
		}
	}
	return n
}

// Size returns the number of cells in the neighbourhood.
func (n Neighborhood) Size() int {
	return len(n.offsets)
}

// Offsets returns a copy of the offset list.
func (n Neighborhood) Offsets() []Offset {
	out := make([]Offset, len(n.offsets))
	copy(out, n.offsets)
	return out
}

// Reaches reports whether at least threshold neighbours of (x, y) hold target
// in the current generation. It stops scanning as soon as the threshold is met.
// Panics if the neighbourhood of (x, y) leaves the grid.
func (n Neighborhood) Reaches(b *Buffer, x, y, target, threshold int) bool {
	n.checkFits(b, x, y)
	return reaches(b.current(), y*b.width+x, n.deltas(b.width), target, threshold)
}

// Count returns how many neighbours of (x, y) hold target in the current
// generation, scanning the whole neighbourhood.
func (n Neighborhood) Count(b *Buffer, x, y, target int) int {
	n.checkFits(b, x, y)
	cells := b.current()
	base := y*b.width + x
	count := 0
	for _, d := range n.deltas(b.width) {
		if cells[base+d] == target {
			count++
		}
	}
	return count
}

// CountMatches reports whether the threshold of cells equal to target is
// reached within the shape/radius neighbourhood of (x, y).
func CountMatches(b *Buffer, x, y, target int, shape Shape, radius, threshold int) bool {
	return NewNeighborhood(shape, radius).Reaches(b, x, y, target, threshold)
}

// deltas converts offsets to flat index deltas for a grid of the given width.
func (n Neighborhood) deltas(width int) []int {
	out := make([]int, len(n.offsets))
	for i, o := range n.offsets {
		out[i] = o.DY*width + o.DX
	}
	return out
}

// checkFits panics if the square of the neighbourhood around (x, y) does not
// lie inside the grid. Flat indexing would otherwise wrap to another row.
func (n Neighborhood) checkFits(b *Buffer, x, y int) {
	r := n.radius
	if x-r < 0 || y-r < 0 || x+r >= b.width || y+r >= b.height {
		panic(fmt.Sprintf("cca: radius %d neighbourhood of (%d, %d) leaves %dx%d grid",
			r, x, y, b.width, b.height))
	}
}

// reaches is the short-circuiting count over precomputed deltas.
func reaches(cells []int, base int, deltas []int, target, threshold int) bool {
	if threshold <= 0 {
		return true
	}
	count := 0
	for _, d := range deltas {
		if cells[base+d] == target {
			count++
			if count >= threshold {
				return true
			}
		}
	}
	return false
}
