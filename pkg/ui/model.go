package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/filter"
	"github.com/matst80/slask-catalog/pkg/types"
)

const (
	sidebarWidth = 28
	cardWidth    = 30
)

type Focus int

const (
	FocusSearch Focus = iota
	FocusSidebar
)

// Model is the catalog page: search input, filter sidebar and product grid.
// All state changes go through the controller, the view renders its latest
// snapshot.
type Model struct {
	ctrl     *filter.Controller
	search   textinput.Model
	grid     viewport.Model
	entries  []entry
	cursor   int
	focus    Focus
	snapshot filter.Snapshot
	styles   Styles
	width    int
	height   int
}

func NewModel(ctrl *filter.Controller, cfg config.Config, styles Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.Prompt = "> "
	snap := ctrl.Snapshot()
	ti.SetValue(snap.State.Search)
	ti.Focus()

	m := Model{
		ctrl:     ctrl,
		search:   ti,
		grid:     viewport.New(80, 20),
		entries:  buildEntries(cfg, ctrl.Catalog().Brands()),
		focus:    FocusSearch,
		snapshot: snap,
		styles:   styles,
		width:    120,
		height:   30,
	}
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Focus() Focus {
	return m.focus
}

func (m Model) Snapshot() filter.Snapshot {
	return m.snapshot
}

func (m *Model) resize() {
	m.grid.Width = max(cardWidth, m.width-sidebarWidth-2)
	m.grid.Height = max(3, m.height-5)
	m.search.Width = max(10, m.width-8)
	m.grid.SetContent(m.renderGrid())
}

func (m *Model) apply(snap filter.Snapshot) {
	m.snapshot = snap
	m.grid.SetContent(m.renderGrid())
	m.grid.GotoTop()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusSearch {
		m.focus = FocusSidebar
		m.search.Blur()
		if !m.entries[m.cursor].selectable() {
			m.cursor = nextSelectable(m.entries, m.cursor, 1)
		}
		return nil
	}
	m.focus = FocusSearch
	return m.search.Focus()
}

func (m *Model) activate() {
	e := m.entries[m.cursor]
	switch e.kind {
	case entryClear:
		m.apply(m.ctrl.ClearAll())
	case entryOption:
		m.apply(m.ctrl.Toggle(e.dimension, e.value))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			return m, m.toggleFocus()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.grid, cmd = m.grid.Update(msg)
			return m, cmd
		}
		if m.focus == FocusSearch {
			return m.updateSearch(msg)
		}
		return m.updateSidebar(msg)
	}
	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m, m.toggleFocus()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != m.snapshot.State.Search {
		m.apply(m.ctrl.SetSearch(value))
	}
	return m, cmd
}

func (m Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = nextSelectable(m.entries, m.cursor, -1)
	case "down", "j":
		m.cursor = nextSelectable(m.entries, m.cursor, 1)
	case " ", "enter":
		m.activate()
	case "c":
		m.apply(m.ctrl.ClearAll())
	case "/":
		return m, m.toggleFocus()
	}
	return m, nil
}

func (m Model) renderSidebar() string {
	var sb strings.Builder
	for i, e := range m.entries {
		pointer := "  "
		if m.focus == FocusSidebar && i == m.cursor {
			pointer = m.styles.Cursor.Render("> ")
		}
		switch e.kind {
		case entryClear:
			sb.WriteString(pointer + m.styles.Button.Render(e.title) + "\n")
		case entryHeader:
			sb.WriteString(m.styles.Section.Render(e.title) + "\n")
		case entryOption:
			box := "[ ]"
			if e.checked(m.snapshot.State) {
				box = "[x]"
			}
			sb.WriteString(pointer + m.styles.Option.Render(box+" "+e.title) + "\n")
		}
	}
	return m.styles.Sidebar.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) renderCard(p *types.ProductRecord) string {
	lines := []string{
		m.styles.Brand.Render(p.ProductBrand),
		p.Titles.Title,
		m.styles.Muted.Render(p.Titles.CoSubtitle),
		m.styles.Price.Render(p.PriceString()),
	}
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) renderGrid() string {
	visible := m.snapshot.Visible
	if len(visible) == 0 {
		return "No products to show."
	}
	cols := max(1, m.grid.Width/cardWidth)
	rows := make([]string, 0, len(visible)/cols+1)
	for start := 0; start < len(visible); start += cols {
		end := min(start+cols, len(visible))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(&visible[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) status() string {
	total := m.ctrl.Catalog().Len()
	text := fmt.Sprintf("%d of %d products", len(m.snapshot.Visible), total)
	if len(m.snapshot.Visible) == 0 {
		if dim, ok := filter.EmptiedBy(m.ctrl.Catalog(), m.snapshot.State); ok {
			text += fmt.Sprintf(", nothing left after the %s filter", dim)
		}
	}
	return m.styles.Status.Render(text + "  tab: focus  space: toggle  c: clear  q: quit")
}

func (m Model) View() string {
	searchStyle := m.styles.Search
	if m.focus == FocusSearch {
		searchStyle = m.styles.SearchActive
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", m.grid.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		searchStyle.Render(m.search.View()),
		body,
		m.status(),
	)
}
