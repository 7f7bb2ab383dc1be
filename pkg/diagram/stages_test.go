package diagram

import (
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []PositionedNode
	}{
		{
			name:  "keyword without bar",
			lines: []string{"the base relay sits on the roof"},
			want:  nil,
		},
		{
			name:  "bar without keyword",
			lines: []string{"│ (Alice) │"},
			want:  nil,
		},
		{
			name:  "single box",
			lines: []string{"", "  │ Ingress │"},
			want: []PositionedNode{
				{Node: Node{Type: Ingress}, ColumnStart: 2, ColumnEnd: 13, Row: 1},
			},
		},
		{
			name:  "adjacent boxes share no bar",
			lines: []string{"│ base │ backbone │"},
			want: []PositionedNode{
				{Node: Node{Type: Base}, ColumnStart: 0, ColumnEnd: 8, Row: 0},
			},
		},
		{
			name:  "boxes separated by arrow",
			lines: []string{"│ base │◄►│ backbone │"},
			want: []PositionedNode{
				{Node: Node{Type: Base}, ColumnStart: 0, ColumnEnd: 8, Row: 0},
				{Node: Node{Type: Backbone}, ColumnStart: 10, ColumnEnd: 22, Row: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.lines, DefaultConfig())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		box  string
		want NodeType
	}{
		{"│ INGRESS │", Ingress},
		{"│ Backbone │", Backbone},
		{"│ base │", Base},
		{"│ backbone base │", Backbone},
		{"│ base ingress │", Ingress},
		{"│ database │", Base},
		{"│ relay │", Base},
	}
	for _, tt := range tests {
		if got := Classify(tt.box); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.box, got, tt.want)
		}
	}
}

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		line, next string
		want       string
	}{
		{"│ ingress (Alice) │", "(Bob)", "Alice"},
		{"│ ingress │", "│ ( Bob ) │", "Bob"},
		{"│ ingress (A) (B) │", "", "A"},
		{"│ ingress │", "", ""},
		{"│ ingress () │", "(Bob)", ""},
	}
	for _, tt := range tests {
		if got := ResolveLabel(tt.line, tt.next); got != tt.want {
			t.Errorf("ResolveLabel(%q, %q) = %q, want %q", tt.line, tt.next, got, tt.want)
		}
	}
}

func TestResolveLabelsSharesLineCandidate(t *testing.T) {
	lines := []string{"│ ingress │ │ base │ (Hilltop)", "│ backbone │"}
	nodes := ResolveLabels(Scan(lines, DefaultConfig()), lines, DefaultConfig())

	want := []string{"Hilltop", "Hilltop", DefaultBackboneLabel}
	var got []string
	for _, n := range nodes {
		got = append(got, n.Label)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestCluster(t *testing.T) {
	at := func(start int) PositionedNode {
		return PositionedNode{ColumnStart: start, ColumnEnd: start + 10}
	}

	tests := []struct {
		name   string
		starts []int
		want   Columns
	}{
		{"empty", nil, Columns{}},
		{"single", []int{0}, Columns{5}},
		{"merge within tolerance", []int{0, 10}, Columns{10}},
		{"boundary opens new bin", []int{0, 20}, Columns{5, 25}},
		{"unsorted input", []int{60, 0, 30}, Columns{5, 35, 65}},
		{"running average", []int{0, 10, 18}, Columns{16.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nodes []PositionedNode
			for _, s := range tt.starts {
				nodes = append(nodes, at(s))
			}
			got := Cluster(nodes, DefaultTolerance)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Cluster() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnsIndex(t *testing.T) {
	cols := Columns{10, 40, 80}
	tests := []struct {
		center float64
		want   int
	}{
		{10, 0},
		{29.5, 0},
		{30, 1},
		{59, 1},
		{61, 2},
		{200, -1},
	}
	for _, tt := range tests {
		if got := cols.Index(tt.center, DefaultTolerance); got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.center, got, tt.want)
		}
	}
}

func TestCenterRoundsHalfUp(t *testing.T) {
	n := PositionedNode{ColumnStart: 3, ColumnEnd: 10}
	if got := n.Center(); got != 7 {
		t.Errorf("Center() = %d, want 7", got)
	}
	if got := n.exactCenter(); got != 6.5 {
		t.Errorf("exactCenter() = %v, want 6.5", got)
	}
}

func TestAssemble(t *testing.T) {
	lines := []string{
		"│ backbone │ ◄► │ base │",
		"",
		"│ backbone │",
	}
	nodes := []PositionedNode{
		{Node: Node{Type: Backbone, Label: "A"}, ColumnStart: 0, ColumnEnd: 12, Row: 0},
		{Node: Node{Type: Base, Label: "B"}, ColumnStart: 40, ColumnEnd: 48, Row: 0},
		{Node: Node{Type: Backbone, Label: "C"}, ColumnStart: 0, ColumnEnd: 12, Row: 2},
	}
	cols := Cluster(nodes, DefaultTolerance)
	levels := Assemble(nodes, lines, cols, DefaultTolerance)

	want := []Level{
		{
			Nodes:           []Node{{Type: Backbone, Label: "A"}, {Type: Base, Label: "B"}},
			ColumnPositions: []int{0, 1},
			HasConnections:  true,
		},
		{
			Nodes:           []Node{{Type: Backbone, Label: "C"}},
			ColumnPositions: []int{0},
			HasConnections:  false,
		},
	}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("Assemble() = %+v, want %+v", levels, want)
	}
}

func TestAssembleUnknownColumnFallsBackToZero(t *testing.T) {
	nodes := []PositionedNode{{Node: Node{Type: Base}, ColumnStart: 100, ColumnEnd: 110}}
	levels := Assemble(nodes, []string{""}, Columns{5}, DefaultTolerance)
	if got := levels[0].ColumnPositions[0]; got != 0 {
		t.Errorf("column = %d, want 0", got)
	}
}

func TestBackboneLinks(t *testing.T) {
	bb := Level{Nodes: []Node{{Type: Backbone}}}
	base := Level{Nodes: []Node{{Type: Base}}}

	tests := []struct {
		name     string
		levels   []Level
		vertical bool
		want     []bool
	}{
		{"no levels", nil, true, []bool{}},
		{"single level", []Level{bb}, true, []bool{}},
		{"no vertical glyph", []Level{bb, bb}, false, []bool{false}},
		{"backbone pair", []Level{bb, bb}, true, []bool{true}},
		{"global heuristic", []Level{bb, bb, base, bb, bb}, true, []bool{true, false, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BackboneLinks(tt.levels, tt.vertical)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BackboneLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasVerticalArrows(t *testing.T) {
	if HasVerticalArrows([]string{"│ base │", "──►"}) {
		t.Error("HasVerticalArrows() = true for horizontal-only text")
	}
	if !HasVerticalArrows([]string{"", "   ▲"}) {
		t.Error("HasVerticalArrows() = false, want true")
	}
}

func TestParseNodeType(t *testing.T) {
	if got, ok := ParseNodeType(" Backbone "); !ok || got != Backbone {
		t.Errorf("ParseNodeType() = %q, %v", got, ok)
	}
	if _, ok := ParseNodeType("tower"); ok {
		t.Error("ParseNodeType(tower) ok = true, want false")
	}
}
