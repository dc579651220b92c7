package tui

import "testing"

func TestTickRateSteps(t *testing.T) {
	tests := []struct {
		rate, faster, slower int
	}{
		{1, 2, 1},
		{30, 45, 20},
		{31, 45, 30},
		{120, 120, 90},
		{200, 120, 120},
	}

	for _, tt := range tests {
		if got := fasterRate(tt.rate); got != tt.faster {
			t.Errorf("fasterRate(%d) = %d, expected %d", tt.rate, got, tt.faster)
		}
		if got := slowerRate(tt.rate); got != tt.slower {
			t.Errorf("slowerRate(%d) = %d, expected %d", tt.rate, got, tt.slower)
		}
	}
}

func TestTickIDsUnique(t *testing.T) {
	a := nextTickID()
	b := nextTickID()
	if a == b {
		t.Errorf("nextTickID returned %d twice", a)
	}
}
