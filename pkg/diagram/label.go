package diagram

import (
	"regexp"
	"strings"
)

var labelPattern = regexp.MustCompile(`\((.*?)\)`)

// ResolveLabel returns the first parenthesized text on line, or on next when
// line has none, trimmed. It returns "" when neither line has one.
func ResolveLabel(line, next string) string {
	if m := labelPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := labelPattern.FindStringSubmatch(next); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ResolveLabels returns a copy of nodes with labels attached.
//
// All boxes on a line share that line's label candidate; a node whose
// candidate is empty falls back to the default label for its own type.
func ResolveLabels(nodes []PositionedNode, lines []string, cfg Config) []PositionedNode {
	out := make([]PositionedNode, len(nodes))
	cached := make(map[int]string)
	for i, n := range nodes {
		label, ok := cached[n.Row]
		if !ok {
			label = ResolveLabel(lineAt(lines, n.Row), lineAt(lines, n.Row+1))
			cached[n.Row] = label
		}
		if label == "" {
			label = cfg.defaultLabel(n.Type)
		}
		n.Label = label
		out[i] = n
	}
	return out
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
