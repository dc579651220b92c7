package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-cca/internal/storage"
)

// Journal browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the rule sidebar
	sidebarWidth       = 22  // Width of the rule sidebar
	maxRuns            = 200 // Max runs to load
	allRules           = "All rules"
)

// RunsKeyMap defines the key bindings for the journal browser.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextRule key.Binding
	PrevRule key.Binding
	Replay   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRule, k.Replay, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextRule, k.PrevRule},
		{k.Replay, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextRule: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next rule"),
		),
		PrevRule: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev rule"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run journal browser.
type RunsModel struct {
	store       *storage.Store
	rules       []string // "All rules" followed by every journaled rule
	stats       map[string]*storage.RuleStats
	ruleCursor  int
	all         []storage.RunEntry
	runs        []storage.RunEntry // all, filtered by the selected rule
	table       table.Model
	wide        bool // Table shows the preset column
	help        help.Model
	keys        RunsKeyMap
	renderer    *Renderer
	width       int
	height      int
	quitting    bool
	goingBack   bool
	replay      *storage.RunEntry
	showSidebar bool
}

// NewRunsModel creates a new journal browser.
func NewRunsModel(store *storage.Store, width, height int, renderer *Renderer) RunsModel {
	if renderer == nil {
		renderer = NewRenderer(nil)
	}
	h := help.New()
	h.Width = width

	m := RunsModel{
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		renderer:    renderer,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Preset", Width: 16},
		{Title: "Rule", Width: 14},
		{Title: "Size", Width: 9},
		{Title: "Gens", Width: 9},
		{Title: "When", Width: 16},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	m.wide = tableWidth >= 80
	if !m.wide {
		// Drop the preset column on narrow terminals
		columns = append(columns[:1], columns[2:]...)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	theme := m.renderer.Theme()
	s := table.DefaultStyles()
	s.Header = theme.TableHeader.Padding(0, 1)
	s.Selected = theme.TableSelected
	t.SetStyles(s)

	return t
}

// load reads recent runs and per-rule statistics from the store.
func (m *RunsModel) load() {
	m.rules = []string{allRules}
	m.all = nil
	m.stats = nil

	if m.store != nil {
		if runs, err := m.store.RecentRuns(maxRuns); err == nil {
			m.all = runs
		}
		if stats, err := m.store.GetAllRuleStats(); err == nil {
			m.stats = stats
			rules := make([]string, 0, len(stats))
			for rule := range stats {
				rules = append(rules, rule)
			}
			sort.Strings(rules)
			m.rules = append(m.rules, rules...)
		}
	}

	m.ruleCursor = 0
	m.filter()
}

// filter narrows the runs to the selected rule and refreshes the table.
func (m *RunsModel) filter() {
	rule := m.rules[m.ruleCursor]
	m.runs = nil
	for _, r := range m.all {
		if rule == allRules || r.Rule == rule {
			m.runs = append(m.runs, r)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{shortID(r.RunID)}
		if m.wide {
			row = append(row, r.Preset)
		}
		row = append(row,
			r.Rule,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			humanize.Comma(r.Generations),
			humanize.Time(r.CreatedAt),
		)
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// shortID returns the first eight characters of a run ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the journal browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextRule):
			m.ruleCursor = (m.ruleCursor + 1) % len(m.rules)
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.PrevRule):
			m.ruleCursor--
			if m.ruleCursor < 0 {
				m.ruleCursor = len(m.rules) - 1
			}
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.Replay):
			if i := m.table.Cursor(); i >= 0 && i < len(m.runs) {
				run := m.runs[i]
				m.replay = &run
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	theme := m.renderer.Theme()
	title := fmt.Sprintf("RUN JOURNAL - %s", m.rules[m.ruleCursor])
	b.WriteString(centerText(theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the journal with a rule sidebar.
func (m RunsModel) renderWideLayout() string {
	theme := m.renderer.Theme()
	sidebarStyle := theme.Panel.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Rules\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, rule := range m.rules {
		cursor := "  "
		style := theme.ItemNormal
		if i == m.ruleCursor {
			cursor = "> "
			style = theme.ItemActive
		}

		line := rule
		if st, ok := m.stats[rule]; ok {
			line = fmt.Sprintf("%s (%d)", rule, st.Runs)
		}
		sidebar.WriteString(style.Render(cursor + line))
		sidebar.WriteString("\n")
	}

	if st, ok := m.stats[m.rules[m.ruleCursor]]; ok {
		sidebar.WriteString("\n")
		sidebar.WriteString(fmt.Sprintf("longest %s\n", humanize.Comma(st.LongestRun)))
		sidebar.WriteString(fmt.Sprintf("total   %s\n", humanize.Comma(st.Generations)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", theme.Panel.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the journal with the rule filter above the table.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.rules[m.ruleCursor]), m.width))
	b.WriteString("\n\n")

	b.WriteString(m.renderer.Theme().Panel.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return m.renderer.Theme().Empty.Render("No runs journaled yet.\nRuns are recorded when you leave them.")
	}

	return m.table.View()
}

// Replay returns the run chosen for replay, or nil.
func (m RunsModel) Replay() *storage.RunEntry {
	return m.replay
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}
