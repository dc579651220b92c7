package cca

import (
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-cca/internal/core"
)

// Painter receives display signals from the simulator.
// It is handed a position and a colour, never a reference into the grid.
type Painter interface {
	Paint(x, y int, c core.RGB)
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(x, y int, c core.RGB)

// Paint calls f(x, y, c).
func (f PainterFunc) Paint(x, y int, c core.RGB) {
	f(x, y, c)
}

// StateSource supplies pseudo-random states for initialisation.
// *rand.Rand satisfies it.
type StateSource interface {
	Intn(n int) int
}

// StepResult describes one completed tick.
type StepResult struct {
	Generation  uint64 // Generations completed, including this tick
	Transitions int    // Cells that advanced to their successor
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithPainter sets the painter that receives display signals.
func WithPainter(p Painter) Option {
	return func(s *Simulator) {
		s.painter = p
	}
}

// WithWorkers splits the interior scan into n row bands run concurrently.
// Values below 2 keep the scan on the calling goroutine.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		s.workers = n
	}
}

// paint is a buffered display signal from a worker band.
type paint struct {
	x, y int
	c    core.RGB
}

// Simulator drives the automaton one generation per Tick.
type Simulator struct {
	rule     Rule
	layout   Layout
	interior core.Rect
	hood     Neighborhood
	deltas   []int
	buf      *Buffer
	colors   *ColorMapper
	painter  Painter
	workers  int
	bands    [][]paint

	generation uint64
	started    bool
}

// New validates the rule and layout and allocates the grid pair.
// Configuration and layout errors are reported here, before any tick runs.
func New(rule Rule, layout Layout, opts ...Option) (*Simulator, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := layout.Validate(rule.Radius); err != nil {
		return nil, err
	}

	hood := NewNeighborhood(rule.Shape, rule.Radius)
	s := &Simulator{
		rule:     rule,
		layout:   layout,
		interior: layout.Interior(),
		hood:     hood,
		deltas:   hood.deltas(layout.Width),
		buf:      NewBuffer(layout.Width, layout.Height),
		colors:   NewColorMapper(rule.States),
		workers:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.painter == nil {
		s.painter = PainterFunc(func(int, int, core.RGB) {})
	}
	if s.workers > s.interior.H {
		s.workers = s.interior.H
	}
	if s.workers > 1 {
		s.bands = make([][]paint, s.workers)
	}
	return s, nil
}

// Rule returns the active rule.
func (s *Simulator) Rule() Rule {
	return s.rule
}

// Layout returns the grid layout.
func (s *Simulator) Layout() Layout {
	return s.layout
}

// Colors returns the colour mapper for the run.
func (s *Simulator) Colors() *ColorMapper {
	return s.colors
}

// Buffer returns the generation pair.
func (s *Simulator) Buffer() *Buffer {
	return s.buf
}

// Generation returns how many ticks have run since Start.
func (s *Simulator) Generation() uint64 {
	return s.generation
}

// Start fills the grid: margin and frame cells get their sentinels, interior
// cells a random state from src. Both generations receive the same values
// and every cell is painted once.
func (s *Simulator) Start(src StateSource) {
	frame := s.layout.FrameBounds()
	for y := 0; y < s.layout.Height; y++ {
		for x := 0; x < s.layout.Width; x++ {
			var state int
			switch {
			case s.interior.Contains(x, y):
				state = src.Intn(s.rule.States)
			case frame.Contains(x, y):
				state = StateFrame
			default:
				state = StateMargin
			}
			s.buf.SetInitial(x, y, state)
			s.painter.Paint(x, y, s.colors.ColorFor(state))
		}
	}
	s.generation = 0
	s.started = true
}

// Tick advances the automaton by one generation.
//
// The buffers are swapped first, then every interior cell whose successor
// reaches the threshold is written to the next generation. The painter gets
// the colour of the cell's state before the transition, so the display runs
// one transition behind the grid.
func (s *Simulator) Tick() StepResult {
	if !s.started {
		panic("cca: Tick called before Start")
	}

	s.buf.Swap()

	var transitions int
	if s.workers > 1 {
		transitions = s.tickParallel()
	} else {
		transitions = s.scanRows(s.interior.Y, s.interior.Bottom(), s.painter.Paint)
	}

	s.generation++
	return StepResult{
		Generation:  s.generation,
		Transitions: transitions,
	}
}

// scanRows applies the rule to interior rows [y0, y1) and returns the
// number of transitions. emit receives the display signal of each one.
func (s *Simulator) scanRows(y0, y1 int, emit func(x, y int, c core.RGB)) int {
	cur := s.buf.current()
	next := s.buf.next()
	width := s.layout.Width
	threshold := s.rule.Threshold

	transitions := 0
	for y := y0; y < y1; y++ {
		for x := s.interior.X; x < s.interior.Right(); x++ {
			i := y*width + x
			state := cur[i]
			successor := s.rule.Successor(state)
			if !reaches(cur, i, s.deltas, successor, threshold) {
				continue
			}
			next[i] = successor
			emit(x, y, s.colors.ColorFor(state))
			transitions++
		}
	}
	return transitions
}

// tickParallel scans disjoint row bands concurrently. Reads all target the
// current generation and writes hit disjoint cells of the next one. Paint
// signals are buffered per band and replayed in band order, so the painter
// sees the same sequence as a sequential scan.
func (s *Simulator) tickParallel() int {
	var (
		eg       errgroup.Group
		top      = s.interior.Y
		rows     = s.interior.H
		perBand  = (rows + s.workers - 1) / s.workers
		counts   = make([]int, s.workers)
		numBands = 0
	)

	for i := range s.workers {
		y0 := top + i*perBand
		y1 := min(y0+perBand, top+rows)
		if y0 >= y1 {
			break
		}
		numBands++

		s.bands[i] = s.bands[i][:0]
		eg.Go(func() error {
			counts[i] = s.scanRows(y0, y1, func(x, y int, c core.RGB) {
				s.bands[i] = append(s.bands[i], paint{x: x, y: y, c: c})
			})
			return nil
		})
	}
	//nolint:errcheck // Bands never fail
	eg.Wait()

	total := 0
	for i := range numBands {
		for _, p := range s.bands[i] {
			s.painter.Paint(p.x, p.y, p.c)
		}
		total += counts[i]
	}
	return total
}
