package ui

import "github.com/charmbracelet/lipgloss"

var (
	indigo = lipgloss.Color("#4F46E5")
	slate  = lipgloss.Color("#CBD5E1")
	ink    = lipgloss.Color("#0F172A")
	muted  = lipgloss.Color("#64748B")
	white  = lipgloss.Color("#FFFFFF")
)

type Styles struct {
	Search       lipgloss.Style
	SearchActive lipgloss.Style
	Sidebar      lipgloss.Style
	Button       lipgloss.Style
	Section      lipgloss.Style
	Option       lipgloss.Style
	Cursor       lipgloss.Style
	Card         lipgloss.Style
	Brand        lipgloss.Style
	Price        lipgloss.Style
	Muted        lipgloss.Style
	Status       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slate).
			Padding(0, 1),
		SearchActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(indigo).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(slate),
		Button: lipgloss.NewStyle().
			Foreground(white).
			Background(indigo).
			Padding(0, 1),
		Section: lipgloss.NewStyle().Bold(true).MarginTop(1),
		Option:  lipgloss.NewStyle(),
		Cursor:  lipgloss.NewStyle().Foreground(indigo).Bold(true),
		Card: lipgloss.NewStyle().
			Width(cardWidth-2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slate).
			Padding(0, 1),
		Brand:  lipgloss.NewStyle().Bold(true).Foreground(ink),
		Price:  lipgloss.NewStyle().Foreground(indigo),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Status: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
