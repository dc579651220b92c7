package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the configurable chrome styles: menus, HUD and journal.
// Grid cells are not themed; their colours come from the palette.
type Theme struct {
	// Titles and menu entries
	Title      lipgloss.Style
	ItemNormal lipgloss.Style
	ItemActive lipgloss.Style

	// Status and help text
	Muted lipgloss.Style
	Error lipgloss.Style

	// Boxes around the journal table and sidebar
	Panel lipgloss.Style

	// Journal table
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Empty         lipgloss.Style
}

// NewTheme returns the default theme bound to the renderer's output.
func NewTheme(r *Renderer) Theme {
	return Theme{
		Title:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		ItemNormal: r.NewStyle(),
		ItemActive: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),

		Muted: r.NewStyle().Foreground(lipgloss.Color("241")),
		Error: r.NewStyle().Foreground(lipgloss.Color("9")),

		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		TableHeader: r.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true),
		TableSelected: r.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false),
		Empty: r.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
	}
}
