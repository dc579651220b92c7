package cca_test

import (
	"testing"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/core"
)

func TestLayoutRegions(t *testing.T) {
	l := cca.Layout{Width: 12, Height: 10, Margin: 2, Frame: 1}

	tests := []struct {
		x, y     int
		expected cca.Region
	}{
		{0, 0, cca.RegionMargin},
		{1, 5, cca.RegionMargin},
		{11, 9, cca.RegionMargin},
		{2, 2, cca.RegionFrame},
		{9, 5, cca.RegionFrame},
		{5, 7, cca.RegionFrame},
		{3, 3, cca.RegionInterior},
		{8, 6, cca.RegionInterior},
		{-1, 4, cca.RegionMargin},
	}

	for _, tc := range tests {
		if got := l.Region(tc.x, tc.y); got != tc.expected {
			t.Errorf("Region(%d, %d) = %s, expected %s", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestLayoutInterior(t *testing.T) {
	l := cca.Layout{Width: 12, Height: 10, Margin: 2, Frame: 1}

	if got := l.Interior(); got != core.NewRect(3, 3, 6, 4) {
		t.Errorf("Interior() = %+v, expected {3 3 6 4}", got)
	}
	if got := l.FrameBounds(); got != core.NewRect(2, 2, 8, 6) {
		t.Errorf("FrameBounds() = %+v, expected {2 2 8 6}", got)
	}
	if l.Inset() != 3 {
		t.Errorf("Inset() = %d, expected 3", l.Inset())
	}
}

func TestDefaultLayout(t *testing.T) {
	l := cca.DefaultLayout()

	in := l.Interior()
	if in.W != 540 || in.H != 540 {
		t.Errorf("interior = %dx%d, expected 540x540", in.W, in.H)
	}
	if err := l.Validate(cca.DefaultRule().Radius); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout cca.Layout
		radius int
		valid  bool
	}{
		{"inset equals radius", cca.Layout{Width: 20, Height: 20, Margin: 4, Frame: 2}, 6, true},
		{"inset below radius", cca.Layout{Width: 20, Height: 20, Margin: 3, Frame: 2}, 6, false},
		{"no interior left", cca.Layout{Width: 12, Height: 30, Margin: 4, Frame: 2}, 6, false},
		{"zero size", cca.Layout{Width: 0, Height: 10, Margin: 1, Frame: 0}, 1, false},
		{"negative margin", cca.Layout{Width: 10, Height: 10, Margin: -1, Frame: 3}, 1, false},
		{"frame only", cca.Layout{Width: 5, Height: 5, Margin: 0, Frame: 1}, 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.layout.Validate(tc.radius)
			if tc.valid {
				if err != nil {
					t.Fatalf("Validate() = %v, expected nil", err)
				}
				return
			}
			if !cca.HasCode(err, cca.CodeLayout) {
				t.Fatalf("Validate() = %v, expected LAYOUT error", err)
			}
		})
	}
}
