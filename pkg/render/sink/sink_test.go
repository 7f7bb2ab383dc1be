package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
)

const towerText = `│ ingress │ ──────►────── │ backbone │ ──────►────── │ base │
(Hilltop)
     ▼
│ ingress │               │ backbone │
`

func parsed(t *testing.T) (diagram.Diagram, layout.Grid) {
	t.Helper()
	d := diagram.Parse(towerText)
	if d.Empty() {
		t.Fatal("fixture produced no levels")
	}
	return d, layout.Build(d)
}

func TestRenderJSON(t *testing.T) {
	d, g := parsed(t)

	data, err := RenderJSON(d, g)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Levels []struct {
			Nodes []struct {
				Type  string `json:"type"`
				Label string `json:"label"`
			} `json:"nodes"`
			ColumnPositions []int `json:"columnPositions"`
			HasConnections  bool  `json:"hasConnections"`
		} `json:"levels"`
		Links []bool          `json:"links"`
		Grid  json.RawMessage `json:"grid"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(out.Levels))
	}
	if got := out.Levels[0].Nodes[1]; got.Type != "backbone" || got.Label != "Hilltop" {
		t.Errorf("level 0 node 1 = %+v", got)
	}
	if !out.Levels[0].HasConnections {
		t.Error("level 0 should have connections")
	}
	if len(out.Links) != 1 || !out.Links[0] {
		t.Errorf("links = %v, want [true]", out.Links)
	}
	if len(out.Grid) == 0 {
		t.Error("grid should be present by default")
	}
}

func TestRenderJSONLevelsOnly(t *testing.T) {
	data, err := RenderJSON(diagram.Diagram{}, layout.Grid{}, WithJSONLevelsOnly())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	want := `{"levels":[],"columns":[],"links":[],"verticalArrows":false}`
	if string(data) != want {
		t.Errorf("RenderJSON(empty) = %s, want %s", data, want)
	}
}

func TestRenderSVG(t *testing.T) {
	_, g := parsed(t)
	svg := string(RenderSVG(g))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not an SVG document")
	}
	if got := strings.Count(svg, `<g class="node `); got != 5 {
		t.Errorf("node groups = %d, want 5", got)
	}
	for _, want := range []string{"Hilltop", "Your device", "Tower node", DefaultTheme[diagram.Ingress].Stroke, `marker-start="url(#arrow)"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	d := diagram.Parse("│ base │\n(<Tom & Jerry>)\n")
	svg := string(RenderSVG(layout.Build(d)))
	if strings.Contains(svg, "<Tom") {
		t.Error("label was not escaped")
	}
	if !strings.Contains(svg, "&lt;Tom &amp; Jerry&gt;") {
		t.Error("escaped label missing")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	_, g := parsed(t)
	custom := Theme{diagram.Base: {Fill: "#abcdef", Stroke: "#123456", Text: "#000000"}}
	svg := string(RenderSVG(g, WithTheme(custom), WithBackground("#fff"), WithoutTypeCaption()))

	if !strings.Contains(svg, "#123456") {
		t.Error("custom theme not applied")
	}
	if !strings.Contains(svg, DefaultTheme[diagram.Ingress].Stroke) {
		t.Error("types missing from the custom theme should keep defaults")
	}
	if strings.Contains(svg, ">BACKBONE<") {
		t.Error("type caption should be hidden")
	}
	if !strings.Contains(svg, `fill="#fff"`) {
		t.Error("background missing")
	}
}

func TestRenderText(t *testing.T) {
	_, g := parsed(t)
	out := string(RenderText(g))

	for _, want := range []string{"Hilltop", "Your device", "Tower node", "►", "▲▼"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if RenderText(layout.Grid{}) != nil {
		t.Error("empty grid should render nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Roof", 10, "Roof"},
		{"Mountain relay site", 8, "Mountai…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
