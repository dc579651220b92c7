package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/core"
	"github.com/vovakirdan/tui-cca/internal/storage"
)

// pausedDim is how far colours are darkened while paused.
const pausedDim = 0.45

// RunSettings describes one run of the automaton.
type RunSettings struct {
	Preset   string
	Rule     cca.Rule
	Layout   cca.Layout
	Seed     int64 // 0 = derive one from the clock
	TickRate int
	Workers  int
	Source   string // journal source, "local" or "ssh"
}

// SimModel is the Bubble Tea model hosting one simulator.
type SimModel struct {
	settings RunSettings
	sim      *cca.Simulator
	canvas   *core.Canvas
	store    *storage.Store
	renderer *Renderer
	keys     SimKeyMap
	help     help.Model

	runID       string
	last        cca.StepResult
	transitions int64
	tickID      int
	width       int
	height      int
	paused      bool
	journaled   bool
	status      string
	warning     string // palette gap, shown for the whole run

	quitting   bool
	backToMenu bool
}

// NewSimModel validates the settings and starts the first run.
// The store may be nil, in which case nothing is journaled.
func NewSimModel(settings RunSettings, store *storage.Store, renderer *Renderer) (SimModel, error) {
	if settings.TickRate <= 0 {
		settings.TickRate = core.DefaultConfig().TickRate
	}
	settings.TickRate = core.Clamp(settings.TickRate, core.MinTickRate, core.MaxTickRate)
	if settings.Source == "" {
		settings.Source = "local"
	}
	if renderer == nil {
		renderer = NewRenderer(nil)
	}

	m := SimModel{
		settings: settings,
		store:    store,
		renderer: renderer,
		keys:     DefaultSimKeyMap(),
		help:     help.New(),
		tickID:   nextTickID(),
	}
	if err := m.start(); err != nil {
		return SimModel{}, err
	}
	return m, nil
}

// start builds a fresh simulator and paints the initial grid.
func (m *SimModel) start() error {
	if m.settings.Seed == 0 {
		m.settings.Seed = time.Now().UnixNano()
	}

	m.canvas = core.NewCanvas(m.settings.Layout.Width, m.settings.Layout.Height)
	sim, err := cca.New(m.settings.Rule, m.settings.Layout,
		cca.WithPainter(m.canvas),
		cca.WithWorkers(m.settings.Workers),
	)
	if err != nil {
		return err
	}

	m.warning = ""
	if gap := cca.PaletteWarning(m.settings.Rule.States); gap != nil {
		m.warning = fmt.Sprintf("fallback palette: no colours for %d states", m.settings.Rule.States)
	}

	sim.Start(rand.New(rand.NewSource(m.settings.Seed)))
	m.sim = sim
	m.runID = storage.NewRunID()
	m.last = cca.StepResult{}
	m.transitions = 0
	m.journaled = false
	return nil
}

// WithBack enables the back key, used when the model is opened from a menu.
func (m SimModel) WithBack() SimModel {
	m.keys.Back.SetEnabled(true)
	return m
}

// WithSize sets the terminal size before the first WindowSizeMsg arrives.
func (m SimModel) WithSize(width, height int) SimModel {
	m.width = width
	m.height = height
	m.help.Width = width
	return m
}

// Init starts the tick loop.
func (m SimModel) Init() tea.Cmd {
	return tickCmd(m.tickID, m.settings.TickRate)
}

// Update handles messages and updates the model state.
func (m SimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m SimModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.journal()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.journal()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			return m, nil
		}
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.journal()
		m.settings.Seed = 0
		if err := m.start(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if m.paused {
			return m, nil
		}
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Faster):
		m.settings.TickRate = fasterRate(m.settings.TickRate)
		if m.paused {
			return m, nil
		}
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Slower):
		m.settings.TickRate = slowerRate(m.settings.TickRate)
		if m.paused {
			return m, nil
		}
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// restartTicks supersedes any pending tick and starts a new loop.
func (m *SimModel) restartTicks() tea.Cmd {
	m.tickID = nextTickID()
	return tickCmd(m.tickID, m.settings.TickRate)
}

// handleTick processes simulation ticks.
func (m SimModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.tickID || m.paused || m.quitting || m.backToMenu {
		return m, nil
	}

	m.step()

	// Continue ticking
	return m, tickCmd(m.tickID, m.settings.TickRate)
}

// step advances the simulator by one generation.
func (m *SimModel) step() {
	m.last = m.sim.Tick()
	m.transitions += int64(m.last.Transitions)
}

// journal records the current run once. Runs that never ticked are skipped.
func (m *SimModel) journal() {
	if m.store == nil || m.journaled || m.sim.Generation() == 0 {
		return
	}
	rule := m.settings.Rule
	layout := m.settings.Layout

	//nolint:errcheck // Best-effort save, the session continues regardless
	m.store.SaveRun(storage.RunEntry{
		RunID:       m.runID,
		Preset:      m.settings.Preset,
		Rule:        rule.String(),
		Radius:      rule.Radius,
		Threshold:   rule.Threshold,
		States:      rule.States,
		Shape:       rule.Shape.String(),
		Width:       layout.Width,
		Height:      layout.Height,
		Margin:      layout.Margin,
		Frame:       layout.Frame,
		Seed:        m.settings.Seed,
		Generations: int64(m.sim.Generation()),
		Transitions: m.transitions,
		Source:      m.settings.Source,
	})
	m.journaled = true
}

// saveScreenshot writes the canvas as a PNG and reports the path.
func (m *SimModel) saveScreenshot() {
	prefix := m.settings.Preset
	if prefix == "" {
		prefix = "cca"
	}
	path, err := SavePNG(m.canvas, screenshotDir(), prefix)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + path
}

// viewport returns the part of the canvas that fits the terminal.
// The grid is never resized; a small terminal crops it.
func (m SimModel) viewport() core.Rect {
	view := m.canvas.Bounds()
	if m.width <= 0 || m.height <= 0 {
		return view
	}

	lines := m.height - lipgloss.Height(m.hud())
	view.W = core.Min(view.W, m.width)
	view.H = core.Min(view.H, core.Max(lines, 0)*2)
	return view
}

// hud renders the status line.
func (m SimModel) hud() string {
	parts := []string{
		m.settings.Rule.String(),
		"gen " + humanize.Comma(int64(m.sim.Generation())),
		"changed " + humanize.Comma(int64(m.last.Transitions)),
		fmt.Sprintf("%d tps", m.settings.TickRate),
	}
	if m.paused {
		parts = append(parts, "PAUSED")
	}
	if m.warning != "" {
		parts = append(parts, m.warning)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	line := m.renderer.Theme().Muted.Render(strings.Join(parts, "  "))
	if m.help.ShowAll {
		return line + "\n" + m.help.View(m.keys)
	}
	return line + "  " + m.help.View(m.keys)
}

// View renders the current state to a string for display.
func (m SimModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	dim := 0.0
	if m.paused {
		dim = pausedDim
	}
	grid := m.renderer.RenderCanvas(m.canvas, m.viewport(), dim)
	return grid + "\n" + m.hud()
}

// Simulator returns the hosted simulator.
func (m SimModel) Simulator() *cca.Simulator {
	return m.sim
}

// Canvas returns the canvas the simulator paints into.
func (m SimModel) Canvas() *core.Canvas {
	return m.canvas
}

// Settings returns the settings of the current run.
func (m SimModel) Settings() RunSettings {
	return m.settings
}

// RunID returns the journal ID of the current run.
func (m SimModel) RunID() string {
	return m.runID
}

// Warning returns the palette warning of the current run, if any.
func (m SimModel) Warning() string {
	return m.warning
}

// IsPaused returns true while the tick loop is stopped.
func (m SimModel) IsPaused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m SimModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m SimModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single run.
func Run(settings RunSettings, store *storage.Store) error {
	model, err := NewSimModel(settings, store, nil)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
