package diagram

import (
	"maps"
	"slices"
	"strings"
)

// Assemble groups labeled nodes by source row into levels, in ascending row
// order, and assigns each node the index of its logical column.
//
// A node whose center matches no column is placed in column 0; that cannot
// happen when cols was clustered from the same nodes. HasConnections is set
// when the level's source line contains a horizontal arrow glyph.
func Assemble(nodes []PositionedNode, lines []string, cols Columns, tolerance float64) []Level {
	rows := make(map[int][]PositionedNode)
	for _, n := range nodes {
		rows[n.Row] = append(rows[n.Row], n)
	}

	levels := make([]Level, 0, len(rows))
	for _, row := range slices.Sorted(maps.Keys(rows)) {
		group := rows[row]
		lvl := Level{
			Nodes:           make([]Node, 0, len(group)),
			ColumnPositions: make([]int, 0, len(group)),
			HasConnections:  containsAny(lineAt(lines, row), GlyphArrowLeft, GlyphArrowRight),
		}
		for _, n := range group {
			idx := cols.Index(n.exactCenter(), tolerance)
			if idx < 0 {
				idx = 0
			}
			lvl.Nodes = append(lvl.Nodes, n.Node)
			lvl.ColumnPositions = append(lvl.ColumnPositions, idx)
		}
		levels = append(levels, lvl)
	}
	return levels
}

// HasVerticalArrows reports whether any line contains a vertical arrow glyph.
func HasVerticalArrows(lines []string) bool {
	for _, l := range lines {
		if containsAny(l, GlyphArrowUp, GlyphArrowDown) {
			return true
		}
	}
	return false
}

// BackboneLinks returns, for each pair of consecutive levels, whether they are
// joined by a vertical bidirectional connection. A pair is linked when both
// levels contain a backbone node and vertical is true; vertical is the
// diagram-wide glyph check from [HasVerticalArrows], not a per-row one.
func BackboneLinks(levels []Level, vertical bool) []bool {
	if len(levels) < 2 {
		return []bool{}
	}
	links := make([]bool, len(levels)-1)
	if !vertical {
		return links
	}
	for i := range links {
		links[i] = levels[i].HasType(Backbone) && levels[i+1].HasType(Backbone)
	}
	return links
}

func containsAny(s string, glyphs ...string) bool {
	for _, g := range glyphs {
		if strings.Contains(s, g) {
			return true
		}
	}
	return false
}
