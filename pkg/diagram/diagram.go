package diagram

// Diagram is the structured graph inferred from one diagram text.
type Diagram struct {
	// Levels are ordered by source row.
	Levels []Level `json:"levels"`

	// Columns are the logical column centers referenced by
	// Level.ColumnPositions.
	Columns Columns `json:"columns"`

	// Links[i] marks a vertical bidirectional connection between Levels[i]
	// and Levels[i+1].
	Links []bool `json:"links"`

	// VerticalArrows records whether any line held a vertical arrow glyph.
	VerticalArrows bool `json:"verticalArrows"`
}

// Parse infers a diagram from text with the default configuration.
func Parse(text string) Diagram {
	return ParseWithConfig(text, DefaultConfig())
}

// ParseWithConfig infers a diagram from text. It never fails: text that does
// not follow the box conventions yields fewer (possibly zero) levels.
func ParseWithConfig(text string, cfg Config) Diagram {
	lines := SplitLines(text)
	tol := cfg.tolerance()

	nodes := Scan(lines, cfg)
	nodes = ResolveLabels(nodes, lines, cfg)
	cols := Cluster(nodes, tol)
	levels := Assemble(nodes, lines, cols, tol)
	vertical := HasVerticalArrows(lines)

	return Diagram{
		Levels:         levels,
		Columns:        cols,
		Links:          BackboneLinks(levels, vertical),
		VerticalArrows: vertical,
	}
}

// Empty reports whether no node box was recognized.
func (d Diagram) Empty() bool { return len(d.Levels) == 0 }

// NodeCount returns the total number of nodes across all levels.
func (d Diagram) NodeCount() int {
	n := 0
	for _, l := range d.Levels {
		n += len(l.Nodes)
	}
	return n
}

// MaxColumn returns the highest column index used by any level, or -1 for an
// empty diagram.
func (d Diagram) MaxColumn() int {
	maxCol := -1
	for _, l := range d.Levels {
		for _, c := range l.ColumnPositions {
			maxCol = max(maxCol, c)
		}
	}
	return maxCol
}

// Linked reports whether level i is vertically linked to level i+1.
func (d Diagram) Linked(i int) bool {
	return i >= 0 && i < len(d.Links) && d.Links[i]
}

// CountByType tallies nodes per type.
func (d Diagram) CountByType() map[NodeType]int {
	counts := make(map[NodeType]int, len(Types))
	for _, l := range d.Levels {
		for _, n := range l.Nodes {
			counts[n.Type]++
		}
	}
	return counts
}
