package cca

import "fmt"

// Buffer holds the two generations of the grid. Reads go to the current
// generation, writes to the next one; Swap exchanges their roles.
// Cells are stored in row-major order: index = y*width + x.
//
// Nothing copies current into next between ticks. A cell that is not
// written during a tick keeps, in next, whatever was written there two
// generations earlier.
type Buffer struct {
	width  int
	height int
	gens   [2][]int
	cur    int // index into gens of the current generation
}

// NewBuffer allocates both generations, all cells set to 0.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		gens: [2][]int{
			make([]int, width*height),
			make([]int, width*height),
		},
	}
}

// Width returns the grid width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the grid height.
func (b *Buffer) Height() int {
	return b.height
}

// index converts a coordinate to a flat index.
// Panics if the coordinate is outside the grid.
func (b *Buffer) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("cca: cell (%d, %d) outside %dx%d grid", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// Current returns the state at (x, y) in the current generation.
func (b *Buffer) Current(x, y int) int {
	return b.gens[b.cur][b.index(x, y)]
}

// Next returns the state at (x, y) in the next generation.
func (b *Buffer) Next(x, y int) int {
	return b.gens[1-b.cur][b.index(x, y)]
}

// SetNext writes state into the next generation at (x, y).
func (b *Buffer) SetNext(x, y, state int) {
	b.gens[1-b.cur][b.index(x, y)] = state
}

// SetInitial seeds (x, y) with the same state in both generations.
func (b *Buffer) SetInitial(x, y, state int) {
	i := b.index(x, y)
	b.gens[0][i] = state
	b.gens[1][i] = state
}

// Swap exchanges the current and next generations.
func (b *Buffer) Swap() {
	b.cur = 1 - b.cur
}

// current returns the raw current generation.
func (b *Buffer) current() []int {
	return b.gens[b.cur]
}

// next returns the raw next generation.
func (b *Buffer) next() []int {
	return b.gens[1-b.cur]
}
