package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
)

// Terminal geometry in cells.
const (
	textCardWidth  = 20
	textCardHeight = 4
	textGap        = 3
)

var textColors = map[diagram.NodeType]lipgloss.TerminalColor{
	diagram.Ingress:  lipgloss.AdaptiveColor{Light: "#0288d1", Dark: "#03a9f4"},
	diagram.Base:     lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#4caf50"},
	diagram.Backbone: lipgloss.AdaptiveColor{Light: "#183F41", Dark: "#5e9ea0"},
}

var (
	styleConnector = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleCaption   = lipgloss.NewStyle().Faint(true)
)

// RenderText draws the grid as bordered cards for a terminal. Geometry comes
// from the grid's cell structure, not its user-unit coordinates.
func RenderText(g layout.Grid) []byte {
	if g.Empty() {
		return nil
	}
	cols := max(g.Columns, 1)
	total := cols*textCardWidth + (cols-1)*textGap

	var b strings.Builder
	for i, row := range g.Rows {
		b.WriteString(textRow(g, row, total))
		b.WriteString("\n")
		if i < len(g.Rows)-1 {
			if line := textVertical(g, row, total); line != "" {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}
	return []byte(b.String())
}

func textCard(n *diagram.Node) string {
	color := textColors[n.Type]
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(textCardWidth - 2).
		Align(lipgloss.Center)

	label := truncate(n.Label, textCardWidth-4)
	body := styleCaption.Render(typeCaption(n.Type)) + "\n" + lipgloss.NewStyle().Bold(true).Foreground(color).Render(label)
	return style.Render(body)
}

func textSpacer(w int) string {
	return lipgloss.NewStyle().Width(w).Height(textCardHeight).Render("")
}

func textRow(g layout.Grid, row layout.Row, total int) string {
	if row.Centered {
		return lipgloss.PlaceHorizontal(total, lipgloss.Center, textCard(row.Cells[0].Node))
	}

	linked := make(map[int]bool)
	for _, c := range g.Connectors {
		if c.Kind == layout.Horizontal && c.Level == row.Level {
			linked[c.Column] = true
		}
	}

	parts := make([]string, 0, 2*len(row.Cells))
	for i, cell := range row.Cells {
		if cell.Node != nil {
			parts = append(parts, textCard(cell.Node))
		} else {
			parts = append(parts, textSpacer(textCardWidth))
		}
		if i == len(row.Cells)-1 {
			break
		}
		if linked[cell.Column] {
			arrow := styleConnector.Render("─►")
			parts = append(parts, lipgloss.PlaceVertical(textCardHeight, lipgloss.Center, lipgloss.PlaceHorizontal(textGap, lipgloss.Center, arrow)))
		} else {
			parts = append(parts, textSpacer(textGap))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func textVertical(g layout.Grid, row layout.Row, total int) string {
	line := []rune(strings.Repeat(" ", total))
	found := false
	for _, c := range g.Connectors {
		if c.Level != row.Level || c.Kind == layout.Horizontal {
			continue
		}
		glyph := []rune("▼")
		if c.Kind == layout.Bidirectional {
			glyph = []rune("▲▼")
		}
		x := c.Column*(textCardWidth+textGap) + textCardWidth/2 - 1
		if row.Centered {
			x = total/2 - 1
		}
		for j, r := range glyph {
			if x+j >= 0 && x+j < len(line) {
				line[x+j] = r
			}
		}
		found = true
	}
	if !found {
		return ""
	}
	return styleConnector.Render(strings.TrimRight(string(line), " "))
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
