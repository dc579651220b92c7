// Package tui provides the Bubble Tea host for the automaton.
// It handles the terminal UI loop, key bindings and run orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
// Ticks from a superseded loop carry a stale ID and are dropped.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickLoops hands out loop IDs. IDs are unique across models so a tick
// left over from a previous run is never taken for the current loop.
var tickLoops atomic.Int64

func nextTickID() int {
	return int(tickLoops.Add(1))
}

// tickCmd returns a Bubble Tea command that sends one tick message at the specified rate.
func tickCmd(id, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

// tickRates are the steps offered by the faster/slower keys.
var tickRates = []int{1, 2, 5, 10, 15, 20, 30, 45, 60, 90, 120}

// fasterRate returns the next step above rate.
func fasterRate(rate int) int {
	for _, r := range tickRates {
		if r > rate {
			return r
		}
	}
	return tickRates[len(tickRates)-1]
}

// slowerRate returns the next step below rate.
func slowerRate(rate int) int {
	for i := len(tickRates) - 1; i >= 0; i-- {
		if tickRates[i] < rate {
			return tickRates[i]
		}
	}
	return tickRates[0]
}
