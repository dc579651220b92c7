package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cca/internal/cca"
	"github.com/vovakirdan/tui-cca/internal/registry"
)

// swatchWidth is the number of palette colours shown next to a preset.
const swatchWidth = 18

// MenuModel is the Bubble Tea model for the preset picker.
type MenuModel struct {
	presets  []registry.Preset
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	renderer *Renderer
	quitting bool
	selected *registry.Preset // Set when user selects a preset
	openRuns bool             // True if user pressed Tab for the journal
}

// NewMenuModel creates a new menu model with the cursor on preset.
func NewMenuModel(width, height int, preset string, renderer *Renderer) MenuModel {
	if renderer == nil {
		renderer = NewRenderer(nil)
	}
	presets := registry.List()

	cursor := 0
	for i, p := range presets {
		if p.ID == preset {
			cursor = i
		}
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		presets:  presets,
		cursor:   cursor,
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		help:     h,
		renderer: renderer,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.presets) > 0 {
			selected := m.presets[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Runs):
		m.openRuns = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	theme := m.renderer.Theme()
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("C Y C L I C"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a rule", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		nameStyle := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			nameStyle = theme.ItemActive
		}

		line := fmt.Sprintf("%s%s %-14s %s",
			cursor, nameStyle.Render(padRight(p.Title, 18)), p.Rule.String(), m.swatch(p.Rule.States))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Muted.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// swatch renders the first colours of the palette for a state count.
func (m MenuModel) swatch(states int) string {
	colors := cca.NewColorMapper(states)
	var b strings.Builder
	for s := range min(states, swatchWidth) {
		c := colors.ColorFor(s)
		b.WriteString(m.renderer.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(glyphFull))
	}
	return b.String()
}

// Selected returns the selected preset, or nil if none selected.
func (m MenuModel) Selected() *registry.Preset {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the run journal.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// padRight pads text with spaces to width.
func padRight(text string, width int) string {
	if w := lipgloss.Width(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}
