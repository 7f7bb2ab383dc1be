package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectKeys are the key bindings of the inspector.
type inspectKeys struct {
	Up, Down, Open, Back, Quit key.Binding
}

var keys = inspectKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open: key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("⏎", "open")),
	Back: key.NewBinding(key.WithKeys("esc", "backspace", "left", "h"), key.WithHelp("←", "back")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// InspectModel - Interactive level/node browser
// =============================================================================

// InspectModel is the bubbletea model for browsing an inferred diagram.
// The level list is shown first; enter opens the nodes of the selected level.
type InspectModel struct {
	Diagram diagram.Diagram
	Source  string

	Cursor int // selected level
	Offset int // first visible level
	Height int // visible rows in the level table

	// Open is true while the node list of the selected level is shown.
	Open       bool
	NodeCursor int

	help help.Model
}

// NewInspectModel creates a browser over d.
func NewInspectModel(d diagram.Diagram, source string) InspectModel {
	return InspectModel{
		Diagram: d,
		Source:  source,
		Height:  15,
		help:    help.New(),
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Open {
			return m.updateNodes(msg)
		}
		return m.updateLevels(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) updateLevels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit, keys.Back):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case key.Matches(msg, keys.Down):
		if m.Cursor < len(m.Diagram.Levels)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case key.Matches(msg, keys.Open):
		if len(m.Diagram.Levels) > 0 {
			m.Open = true
			m.NodeCursor = 0
		}
	}
	return m, nil
}

func (m InspectModel) updateNodes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes := m.Diagram.Levels[m.Cursor].Nodes
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.Open = false
	case key.Matches(msg, keys.Up):
		if m.NodeCursor > 0 {
			m.NodeCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.NodeCursor < len(nodes)-1 {
			m.NodeCursor++
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	if m.Open {
		return m.nodesView()
	}
	return m.levelsView()
}

func (m InspectModel) levelsView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Levels"))
	b.WriteString(" " + listDimStyle.Render(m.Source))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Open, keys.Quit}))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Diagram.Levels) {
		end = len(m.Diagram.Levels)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		lvl := m.Diagram.Levels[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		chain := "-"
		if lvl.HasConnections {
			chain = "─►"
		}
		link := "-"
		if m.Diagram.Linked(i) {
			link = "▲▼"
		}
		rows = append(rows, []string{cursor, fmt.Sprint(i), levelTypes(lvl), fmt.Sprint(len(lvl.Nodes)), chain, link})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Level", "Types", "Nodes", "Chain", "Link ↓").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 4 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  columns %v  vertical %v",
		m.Cursor+1, len(m.Diagram.Levels), m.Diagram.Columns, m.Diagram.VerticalArrows)))

	return b.String()
}

func (m InspectModel) nodesView() string {
	var b strings.Builder
	lvl := m.Diagram.Levels[m.Cursor]

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Level %d", m.Cursor)))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Back, keys.Quit}))
	b.WriteString("\n\n")

	for i, n := range lvl.Nodes {
		cursor := "  "
		if i == m.NodeCursor {
			cursor = "> "
		}
		col := lvl.ColumnPositions[i]
		line := fmt.Sprintf("%s%-9s %-28s %s", cursor, n.Type, n.Label,
			listDimStyle.Render(fmt.Sprintf("column %d @ %.1f", col, m.Diagram.Columns[col])))

		if i == m.NodeCursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(typeStyle(n.Type).UnsetBold().Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s ingress   %s base   %s backbone\n",
		styleIngress.Render("■"), styleBase.Render("■"), styleBackbone.Render("■")))

	return b.String()
}

// levelTypes lists the distinct node types of a level in node order.
func levelTypes(lvl diagram.Level) string {
	var seen []string
	for _, n := range lvl.Nodes {
		t := string(n.Type)
		if !slices.Contains(seen, t) {
			seen = append(seen, t)
		}
	}
	return strings.Join(seen, ", ")
}
