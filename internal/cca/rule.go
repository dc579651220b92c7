// Package cca implements a cyclic cellular automaton engine.
//
// A cell holds a state in [0, States). Each tick a cell advances to its cyclic
// successor when at least Threshold cells of its neighbourhood already hold
// that successor. The engine is UI-agnostic and deterministic for a given seed;
// the host drives it through Simulator.Start and Simulator.Tick and receives
// colours through a Painter.
package cca

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape selects which offsets around a cell form its neighbourhood.
type Shape uint8

const (
	// Moore includes every offset in the (2r+1)x(2r+1) square.
	Moore Shape = iota
	// VonNeumann includes offsets with |dx| + |dy| <= r.
	VonNeumann
)

// String returns the string representation of a shape.
func (s Shape) String() string {
	switch s {
	case Moore:
		return "moore"
	case VonNeumann:
		return "von_neumann"
	default:
		return "unknown"
	}
}

// Code returns the two-letter shape code used in rule notation.
func (s Shape) Code() string {
	switch s {
	case Moore:
		return "NM"
	case VonNeumann:
		return "NN"
	default:
		return "N?"
	}
}

// ParseShape converts a string to a Shape.
// Returns Moore and false if the string is not recognized.
func ParseShape(s string) (Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moore", "m", "nm":
		return Moore, true
	case "von_neumann", "vonneumann", "von-neumann", "neumann", "vn", "nn":
		return VonNeumann, true
	default:
		return Moore, false
	}
}

// Rule is the immutable configuration of one automaton run.
type Rule struct {
	Radius    int   // Neighbourhood radius, >= 1
	Threshold int   // Matching neighbours needed to advance, >= 1
	States    int   // Number of cyclic states, >= 2
	Shape     Shape // Neighbourhood shape
}

// DefaultRule is R6/T7/C18 with a von Neumann neighbourhood.
func DefaultRule() Rule {
	return Rule{
		Radius:    6,
		Threshold: 7,
		States:    18,
		Shape:     VonNeumann,
	}
}

// Successor returns the state that follows s in the cycle.
func (r Rule) Successor(s int) int {
	if s < r.States-1 {
		return s + 1
	}
	return 0
}

// MaxNeighbors returns the largest possible neighbour count for the rule's
// shape and radius. The centre cell is not counted.
func (r Rule) MaxNeighbors() int {
	return MaxNeighbors(r.Shape, r.Radius)
}

// MaxNeighbors returns the neighbourhood size for a shape and radius.
func MaxNeighbors(shape Shape, radius int) int {
	if radius < 1 {
		return 0
	}
	switch shape {
	case Moore:
		side := 2*radius + 1
		return side*side - 1
	case VonNeumann:
		return 2 * radius * (radius + 1)
	default:
		return 0
	}
}

// Validate checks the rule and returns a CONFIGURATION ValidationError for
// the first violated constraint.
func (r Rule) Validate() error {
	if r.Radius < 1 {
		return configError("radius", "must be at least 1, got %d", r.Radius)
	}
	if r.States < 2 {
		return configError("states", "must be at least 2, got %d", r.States)
	}
	if r.Shape != Moore && r.Shape != VonNeumann {
		return configError("shape", "unknown shape %d", r.Shape)
	}
	if r.Threshold < 1 {
		return configError("threshold", "must be at least 1, got %d", r.Threshold)
	}
	if limit := r.MaxNeighbors(); r.Threshold > limit {
		return configError("threshold",
			"%d exceeds the %d cells of a radius %d %s neighbourhood",
			r.Threshold, limit, r.Radius, r.Shape)
	}
	return nil
}

// String returns the rule in R/T/C/N notation, e.g. "R6/T7/C18/NN".
func (r Rule) String() string {
	return fmt.Sprintf("R%d/T%d/C%d/%s", r.Radius, r.Threshold, r.States, r.Shape.Code())
}

// ParseRule parses R/T/C/N notation such as "R1/T3/C3/NM".
// Fields may appear in any order; the shape defaults to Moore when omitted.
// The result is not validated.
func ParseRule(s string) (Rule, error) {
	r := Rule{Shape: Moore}
	seen := make(map[byte]bool)

	for _, part := range strings.Split(strings.TrimSpace(s), "/") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if len(part) < 2 {
			return Rule{}, fmt.Errorf("cca: bad rule field %q in %q", part, s)
		}

		key := part[0]
		if seen[key] {
			return Rule{}, fmt.Errorf("cca: duplicate rule field %q in %q", part, s)
		}
		seen[key] = true

		if key == 'N' {
			shape, ok := ParseShape(part)
			if !ok {
				return Rule{}, fmt.Errorf("cca: unknown neighbourhood %q in %q", part, s)
			}
			r.Shape = shape
			continue
		}

		n, err := strconv.Atoi(part[1:])
		if err != nil {
			return Rule{}, fmt.Errorf("cca: bad rule field %q in %q: %w", part, s, err)
		}
		switch key {
		case 'R':
			r.Radius = n
		case 'T':
			r.Threshold = n
		case 'C':
			r.States = n
		default:
			return Rule{}, fmt.Errorf("cca: unknown rule field %q in %q", part, s)
		}
	}

	for _, key := range []byte{'R', 'T', 'C'} {
		if !seen[key] {
			return Rule{}, fmt.Errorf("cca: rule %q is missing %c", s, key)
		}
	}

	return r, nil
}
