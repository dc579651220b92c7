package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/config"
	"github.com/vovakirdan/tui-cca/internal/core"
	"github.com/vovakirdan/tui-cca/internal/registry"
	"github.com/vovakirdan/tui-cca/internal/storage"
)

// SessionConfig holds what a session needs to start runs.
type SessionConfig struct {
	Runtime core.RuntimeConfig  // Terminal size, tick rate and seed
	Layout  config.LayoutConfig // Resolved against the terminal for each run
	Workers int
	Preset  string // Preset under the cursor when the menu opens
	Source  string // Journal source for runs started in this session
}

// SettingsFromRun rebuilds the settings of a journaled run for replay.
func SettingsFromRun(e storage.RunEntry) (RunSettings, error) {
	shape, ok := cca.ParseShape(e.Shape)
	if !ok {
		return RunSettings{}, fmt.Errorf("tui: run %s has unknown shape %q", shortID(e.RunID), e.Shape)
	}
	return RunSettings{
		Preset: e.Preset,
		Rule: cca.Rule{
			Radius:    e.Radius,
			Threshold: e.Threshold,
			States:    e.States,
			Shape:     shape,
		},
		Layout: cca.Layout{
			Width:  e.Width,
			Height: e.Height,
			Margin: e.Margin,
			Frame:  e.Frame,
		},
		Seed: e.Seed,
	}, nil
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewSim
	viewRuns
)

// SessionModel manages the full session flow: menu -> run -> menu,
// and menu -> journal -> replay. Used by `cca menu` and SSH sessions.
type SessionModel struct {
	config   SessionConfig
	store    *storage.Store
	renderer *Renderer
	view     sessionView
	menu     MenuModel
	sim      SimModel
	runs     RunsModel
	err      string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg SessionConfig, renderer *Renderer) SessionModel {
	if renderer == nil {
		renderer = NewRenderer(nil)
	}
	if cfg.Source == "" {
		cfg.Source = "local"
	}
	m := SessionModel{
		config:   cfg,
		store:    store,
		renderer: renderer,
	}
	if cfg.Preset != "" && !registry.Exists(cfg.Preset) {
		m.err = fmt.Sprintf("unknown preset %q", cfg.Preset)
		m.config.Preset = ""
	}
	m.menu = m.freshMenu(m.config.Preset)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.Runtime.ScreenW = wsm.Width
		m.config.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewSim:
		return m.updateSim(msg)
	case viewRuns:
		return m.updateRuns(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = ""
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		m.menu = m.freshMenu(m.config.Preset)
		m.runs = NewRunsModel(m.store, m.config.Runtime.ScreenW, m.config.Runtime.ScreenH, m.renderer)
		m.view = viewRuns
		return m, m.runs.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config.Preset = selected.ID
		m.menu = m.freshMenu(selected.ID)
		return m.startRun(m.presetSettings(*selected))
	}

	return m, cmd
}

// updateSim handles updates while a run is on screen.
func (m SessionModel) updateSim(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sim.Update(msg)
	if simModel, ok := newModel.(SimModel); ok {
		m.sim = simModel
	}

	if m.sim.BackToMenu() {
		m.view = viewMenu
		return m, m.menu.Init()
	}

	if m.sim.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRuns handles updates while the journal is on screen.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if runsModel, ok := newModel.(RunsModel); ok {
		m.runs = runsModel
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.runs.IsGoingBack() {
		m.view = viewMenu
		return m, m.menu.Init()
	}

	if run := m.runs.Replay(); run != nil {
		settings, err := SettingsFromRun(*run)
		if err != nil {
			m.err = err.Error()
			m.view = viewMenu
			return m, nil
		}
		settings.TickRate = m.config.Runtime.TickRate
		settings.Workers = m.config.Workers
		settings.Source = m.config.Source
		return m.startRun(settings)
	}

	return m, cmd
}

// presetSettings builds run settings for a preset sized to the terminal.
func (m SessionModel) presetSettings(p registry.Preset) RunSettings {
	rt := m.config.Runtime
	return RunSettings{
		Preset:   p.ID,
		Rule:     p.Rule,
		Layout:   m.config.Layout.Resolve(rt.ScreenW, rt.ScreenH),
		Seed:     rt.Seed,
		TickRate: rt.TickRate,
		Workers:  m.config.Workers,
		Source:   m.config.Source,
	}
}

// startRun switches to the simulation view. Invalid settings keep the
// menu open with the error shown.
func (m SessionModel) startRun(settings RunSettings) (tea.Model, tea.Cmd) {
	sim, err := NewSimModel(settings, m.store, m.renderer)
	if err != nil {
		m.err = err.Error()
		m.view = viewMenu
		return m, nil
	}

	m.sim = sim.WithBack().WithSize(m.config.Runtime.ScreenW, m.config.Runtime.ScreenH)
	m.view = viewSim
	return m, m.sim.Init()
}

func (m SessionModel) freshMenu(preset string) MenuModel {
	return NewMenuModel(m.config.Runtime.ScreenW, m.config.Runtime.ScreenH, preset, m.renderer)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewSim:
		return m.sim.View()
	case viewRuns:
		return m.runs.View()
	}

	view := m.menu.View()
	if m.err != "" {
		errStyle := m.renderer.Theme().Error
		view += "\n" + centerText(errStyle.Render(m.err), m.config.Runtime.ScreenW)
	}
	return view
}

// RunSession starts the Bubble Tea program for an interactive session.
func RunSession(store *storage.Store, cfg SessionConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, nil),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
