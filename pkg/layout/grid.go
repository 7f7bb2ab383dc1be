package layout

import "github.com/GuilfordHill/SVMesh/pkg/diagram"

// ConnectorKind is the arrow style of a connector.
type ConnectorKind string

// Connector kinds.
const (
	Horizontal    ConnectorKind = "horizontal"
	Down          ConnectorKind = "down"
	Bidirectional ConnectorKind = "vertical-bidirectional"
)

// Card is the rectangle occupied by one grid cell, in user units.
type Card struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CenterX returns the horizontal center of the card.
func (c Card) CenterX() float64 { return c.X + c.W/2 }

// CenterY returns the vertical center of the card.
func (c Card) CenterY() float64 { return c.Y + c.H/2 }

// Right returns the right edge of the card.
func (c Card) Right() float64 { return c.X + c.W }

// Bottom returns the bottom edge of the card.
func (c Card) Bottom() float64 { return c.Y + c.H }

// Cell is one column slot of a row. Node is nil for spacer cells.
type Cell struct {
	Column int           `json:"column"`
	Node   *diagram.Node `json:"node,omitempty"`
	Card   Card          `json:"card"`
}

// Row is the drawn form of one diagram level.
type Row struct {
	Level          int    `json:"level"`
	Cells          []Cell `json:"cells"`
	Centered       bool   `json:"centered,omitempty"`
	HasConnections bool   `json:"hasConnections,omitempty"`
}

// Nodes returns the non-spacer cells of the row.
func (r Row) Nodes() []Cell {
	var out []Cell
	for _, c := range r.Cells {
		if c.Node != nil {
			out = append(out, c)
		}
	}
	return out
}

// Connector is an arrow segment between two cards.
type Connector struct {
	Kind ConnectorKind `json:"kind"`
	// Level is the row the connector starts from.
	Level  int     `json:"level"`
	Column int     `json:"column"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Grid is the complete placement of a diagram.
type Grid struct {
	Columns     int         `json:"columns"`
	Rows        []Row       `json:"rows"`
	Connectors  []Connector `json:"connectors"`
	FrameWidth  float64     `json:"width"`
	FrameHeight float64     `json:"height"`
	CardWidth   float64     `json:"card_width"`
	CardHeight  float64     `json:"card_height"`
}

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool { return len(g.Rows) == 0 }

// ConnectorsOf returns the connectors of the given kind.
func (g Grid) ConnectorsOf(kind ConnectorKind) []Connector {
	var out []Connector
	for _, c := range g.Connectors {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
