package sink

import (
	"encoding/json"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent  bool
	omitGeo bool
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONLevelsOnly drops the grid, leaving the payload the web client consumes.
func WithJSONLevelsOnly() JSONOption { return func(r *jsonRenderer) { r.omitGeo = true } }

type jsonOutput struct {
	Levels         []diagram.Level `json:"levels"`
	Columns        []float64       `json:"columns"`
	Links          []bool          `json:"links"`
	VerticalArrows bool            `json:"verticalArrows"`
	Grid           *layout.Grid    `json:"grid,omitempty"`
}

// RenderJSON serializes d together with its grid.
func RenderJSON(d diagram.Diagram, g layout.Grid, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Levels:         d.Levels,
		Columns:        d.Columns,
		Links:          d.Links,
		VerticalArrows: d.VerticalArrows,
	}
	if out.Levels == nil {
		out.Levels = []diagram.Level{}
	}
	if out.Columns == nil {
		out.Columns = []float64{}
	}
	if out.Links == nil {
		out.Links = []bool{}
	}
	if !r.omitGeo {
		out.Grid = &g
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
