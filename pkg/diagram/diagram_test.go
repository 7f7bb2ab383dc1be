package diagram

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestParseEmpty(t *testing.T) {
	d := Parse("")
	if !d.Empty() {
		t.Errorf("Empty() = false, want true")
	}
	if len(d.Levels) != 0 {
		t.Errorf("len(Levels) = %d, want 0", len(d.Levels))
	}
	if len(d.Links) != 0 {
		t.Errorf("len(Links) = %d, want 0", len(d.Links))
	}
	if d.MaxColumn() != -1 {
		t.Errorf("MaxColumn() = %d, want -1", d.MaxColumn())
	}
}

func TestParseLabeledIngressOverBackbone(t *testing.T) {
	text := strings.Join([]string{
		"│ (Alice's Radio) ingress │",
		"          ▼",
		"│ backbone │",
	}, "\n")

	d := Parse(text)
	if len(d.Levels) != 2 {
		t.Fatalf("len(Levels) = %d, want 2", len(d.Levels))
	}

	top := d.Levels[0]
	if len(top.Nodes) != 1 || top.Nodes[0].Type != Ingress {
		t.Fatalf("level 0 nodes = %+v, want one ingress", top.Nodes)
	}
	if top.Nodes[0].Label != "Alice's Radio" {
		t.Errorf("level 0 label = %q, want %q", top.Nodes[0].Label, "Alice's Radio")
	}

	bottom := d.Levels[1]
	if len(bottom.Nodes) != 1 || bottom.Nodes[0].Type != Backbone {
		t.Fatalf("level 1 nodes = %+v, want one backbone", bottom.Nodes)
	}
	if bottom.Nodes[0].Label != DefaultBackboneLabel {
		t.Errorf("level 1 label = %q, want %q", bottom.Nodes[0].Label, DefaultBackboneLabel)
	}

	if !d.VerticalArrows {
		t.Error("VerticalArrows = false, want true")
	}
	// Only level 1 holds a backbone, so the pair is not linked.
	if d.Linked(0) {
		t.Error("Linked(0) = true, want false")
	}
}

func TestParseTwoBasesOnOneLine(t *testing.T) {
	text := "│ base │" + strings.Repeat(" ", 30) + "│ base │"

	d := Parse(text)
	if len(d.Levels) != 1 {
		t.Fatalf("len(Levels) = %d, want 1", len(d.Levels))
	}
	lvl := d.Levels[0]
	if len(lvl.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(lvl.Nodes))
	}
	for i, n := range lvl.Nodes {
		if n.Type != Base {
			t.Errorf("node %d type = %s, want base", i, n.Type)
		}
		if n.Label != DefaultBaseLabel {
			t.Errorf("node %d label = %q, want %q", i, n.Label, DefaultBaseLabel)
		}
	}
	if want := []int{0, 1}; !reflect.DeepEqual(lvl.ColumnPositions, want) {
		t.Errorf("ColumnPositions = %v, want %v", lvl.ColumnPositions, want)
	}
	if want := (Columns{4, 42}); !reflect.DeepEqual(d.Columns, want) {
		t.Errorf("Columns = %v, want %v", d.Columns, want)
	}
	if lvl.HasConnections {
		t.Error("HasConnections = true, want false")
	}
}

func TestParseTowerFixture(t *testing.T) {
	d := Parse(readFixture(t, "tower.txt"))

	if len(d.Levels) != 2 {
		t.Fatalf("len(Levels) = %d, want 2", len(d.Levels))
	}
	if want := (Columns{8, 28, 49, 70}); !reflect.DeepEqual(d.Columns, want) {
		t.Errorf("Columns = %v, want %v", d.Columns, want)
	}

	tests := []struct {
		types  []NodeType
		labels []string
		cols   []int
	}{
		{
			types:  []NodeType{Backbone, Base, Ingress},
			labels: []string{"ROUTER", "ROUTER", "ROUTER"},
			cols:   []int{1, 2, 3},
		},
		{
			types:  []NodeType{Ingress, Backbone, Base},
			labels: []string{DefaultIngressLabel, DefaultBackboneLabel, DefaultBaseLabel},
			cols:   []int{0, 1, 2},
		},
	}
	for i, tt := range tests {
		lvl := d.Levels[i]
		var types []NodeType
		var labels []string
		for _, n := range lvl.Nodes {
			types = append(types, n.Type)
			labels = append(labels, n.Label)
		}
		if !reflect.DeepEqual(types, tt.types) {
			t.Errorf("level %d types = %v, want %v", i, types, tt.types)
		}
		if !reflect.DeepEqual(labels, tt.labels) {
			t.Errorf("level %d labels = %v, want %v", i, labels, tt.labels)
		}
		if !reflect.DeepEqual(lvl.ColumnPositions, tt.cols) {
			t.Errorf("level %d columns = %v, want %v", i, lvl.ColumnPositions, tt.cols)
		}
		if !lvl.HasConnections {
			t.Errorf("level %d HasConnections = false, want true", i)
		}
	}

	if !d.Linked(0) {
		t.Error("Linked(0) = false, want true")
	}
	if d.MaxColumn() != 3 {
		t.Errorf("MaxColumn() = %d, want 3", d.MaxColumn())
	}
	if d.NodeCount() != 6 {
		t.Errorf("NodeCount() = %d, want 6", d.NodeCount())
	}
}

func TestParseChainFixture(t *testing.T) {
	d := Parse(readFixture(t, "chain.txt"))

	if len(d.Levels) != 2 {
		t.Fatalf("len(Levels) = %d, want 2", len(d.Levels))
	}
	if got := d.Levels[0].Nodes[0]; got.Type != Ingress || got.Label != "Alice's HT" {
		t.Errorf("level 0 node = %+v, want ingress %q", got, "Alice's HT")
	}
	if got := d.Levels[1].Nodes[0]; got.Type != Base || got.Label != DefaultBaseLabel {
		t.Errorf("level 1 node = %+v, want base %q", got, DefaultBaseLabel)
	}
	if d.Levels[0].ColumnPositions[0] != d.Levels[1].ColumnPositions[0] {
		t.Errorf("stacked boxes in different columns: %d vs %d",
			d.Levels[0].ColumnPositions[0], d.Levels[1].ColumnPositions[0])
	}
	if !d.VerticalArrows {
		t.Error("VerticalArrows = false, want true")
	}
	if d.Linked(0) {
		t.Error("Linked(0) = true, want false (no backbone)")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := readFixture(t, "tower.txt")
	a := Parse(text)
	b := Parse(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Parse not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestParseWithConfigLabels(t *testing.T) {
	cfg := Config{Labels: map[NodeType]string{Backbone: "Mountain site"}}
	d := ParseWithConfig("│ backbone │   │ base │", cfg)

	if len(d.Levels) != 1 || len(d.Levels[0].Nodes) != 2 {
		t.Fatalf("levels = %+v, want one level with two nodes", d.Levels)
	}
	if got := d.Levels[0].Nodes[0].Label; got != "Mountain site" {
		t.Errorf("backbone label = %q, want %q", got, "Mountain site")
	}
	if got := d.Levels[0].Nodes[1].Label; got != DefaultBaseLabel {
		t.Errorf("base label = %q, want %q", got, DefaultBaseLabel)
	}
}

func TestParseWithConfigTabWidth(t *testing.T) {
	text := "│ base │\n\t\t\t│ base │"

	noTabs := Parse(text)
	if noTabs.Levels[1].ColumnPositions[0] != 0 {
		t.Errorf("without expansion column = %d, want 0", noTabs.Levels[1].ColumnPositions[0])
	}

	tabs := ParseWithConfig(text, Config{TabWidth: 8})
	if tabs.Levels[1].ColumnPositions[0] != 1 {
		t.Errorf("with expansion column = %d, want 1", tabs.Levels[1].ColumnPositions[0])
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	unix := Parse("│ ingress │ ►\n│ base │")
	dos := Parse("│ ingress │ ►\r\n│ base │\r\n")
	if !reflect.DeepEqual(unix.Levels, dos.Levels) {
		t.Errorf("CRLF levels = %+v, want %+v", dos.Levels, unix.Levels)
	}
}

func TestDiagramCountByType(t *testing.T) {
	d := Parse(readFixture(t, "tower.txt"))
	counts := d.CountByType()
	for _, typ := range Types {
		if counts[typ] != 2 {
			t.Errorf("count[%s] = %d, want 2", typ, counts[typ])
		}
	}
}
