package layout

import "github.com/GuilfordHill/SVMesh/pkg/diagram"

// Default geometry, matching the card sizes of the web client.
const (
	DefaultCardWidth  = 160.0
	DefaultCardHeight = 110.0
	DefaultGap        = 56.0
	DefaultRowGap     = 56.0
	DefaultMargin     = 24.0
)

// Option configures [Build].
type Option func(*builder)

type builder struct {
	cardW, cardH float64
	gap, rowGap  float64
	margin       float64
}

// WithCardSize sets the card width and height. Non-positive values are ignored.
func WithCardSize(w, h float64) Option {
	return func(b *builder) {
		if w > 0 {
			b.cardW = w
		}
		if h > 0 {
			b.cardH = h
		}
	}
}

// WithGap sets the horizontal space between columns.
func WithGap(gap float64) Option {
	return func(b *builder) {
		if gap >= 0 {
			b.gap = gap
		}
	}
}

// WithRowGap sets the vertical space between rows.
func WithRowGap(gap float64) Option {
	return func(b *builder) {
		if gap >= 0 {
			b.rowGap = gap
		}
	}
}

// WithMargin sets the frame margin on every side.
func WithMargin(m float64) Option {
	return func(b *builder) {
		if m >= 0 {
			b.margin = m
		}
	}
}

// Build lays out d on a card grid.
func Build(d diagram.Diagram, opts ...Option) Grid {
	b := builder{
		cardW:  DefaultCardWidth,
		cardH:  DefaultCardHeight,
		gap:    DefaultGap,
		rowGap: DefaultRowGap,
		margin: DefaultMargin,
	}
	for _, opt := range opts {
		opt(&b)
	}

	maxCol := d.MaxColumn()
	width := maxCol + 1
	g := Grid{
		Columns:    width,
		Rows:       make([]Row, 0, len(d.Levels)),
		Connectors: []Connector{},
		CardWidth:  b.cardW,
		CardHeight: b.cardH,
	}
	g.FrameWidth = 2*b.margin + float64(width)*b.cardW + float64(max(width-1, 0))*b.gap
	g.FrameHeight = 2*b.margin + float64(len(d.Levels))*b.cardH + float64(max(len(d.Levels)-1, 0))*b.rowGap

	for i, lvl := range d.Levels {
		var row Row
		if isCentered(lvl) {
			row = b.centeredRow(i, lvl, g.FrameWidth)
		} else {
			row = b.gridRow(i, lvl, width)
		}
		g.Rows = append(g.Rows, row)
	}

	for i, row := range g.Rows {
		if !row.Centered && row.HasConnections {
			g.Connectors = append(g.Connectors, b.horizontal(row, maxCol)...)
		}
		if i < len(g.Rows)-1 {
			g.Connectors = append(g.Connectors, b.vertical(row, d.Linked(i))...)
		}
	}
	return g
}

// isCentered reports whether a level is a lone node in the first column.
func isCentered(lvl diagram.Level) bool {
	return len(lvl.Nodes) == 1 && len(lvl.ColumnPositions) == 1 && lvl.ColumnPositions[0] == 0
}

func (b builder) rowY(level int) float64 {
	return b.margin + float64(level)*(b.cardH+b.rowGap)
}

func (b builder) columnX(col int) float64 {
	return b.margin + float64(col)*(b.cardW+b.gap)
}

func (b builder) centeredRow(level int, lvl diagram.Level, frameWidth float64) Row {
	n := lvl.Nodes[0]
	return Row{
		Level:          level,
		Centered:       true,
		HasConnections: lvl.HasConnections,
		Cells: []Cell{{
			Column: 0,
			Node:   &n,
			Card:   Card{X: (frameWidth - b.cardW) / 2, Y: b.rowY(level), W: b.cardW, H: b.cardH},
		}},
	}
}

func (b builder) gridRow(level int, lvl diagram.Level, width int) Row {
	cells := make([]Cell, width)
	for c := range cells {
		cells[c] = Cell{
			Column: c,
			Card:   Card{X: b.columnX(c), Y: b.rowY(level), W: b.cardW, H: b.cardH},
		}
	}
	// A later node sharing a column replaces the earlier one.
	for i, col := range lvl.ColumnPositions {
		if col < 0 || col >= width || i >= len(lvl.Nodes) {
			continue
		}
		n := lvl.Nodes[i]
		cells[col].Node = &n
	}
	return Row{Level: level, Cells: cells, HasConnections: lvl.HasConnections}
}

func (b builder) horizontal(row Row, maxCol int) []Connector {
	var out []Connector
	for _, c := range row.Cells {
		if c.Node == nil || c.Column >= maxCol {
			continue
		}
		y := c.Card.CenterY()
		out = append(out, Connector{
			Kind:   Horizontal,
			Level:  row.Level,
			Column: c.Column,
			X1:     c.Card.Right(),
			Y1:     y,
			X2:     c.Card.Right() + b.gap,
			Y2:     y,
		})
	}
	return out
}

func (b builder) vertical(row Row, linked bool) []Connector {
	var out []Connector
	for _, c := range row.Cells {
		if c.Node == nil {
			continue
		}
		kind := Bidirectional
		switch {
		case row.Centered && !linked:
			kind = Down
		case row.Centered:
		case !linked || c.Node.Type != diagram.Backbone:
			continue
		}
		x := c.Card.CenterX()
		out = append(out, Connector{
			Kind:   kind,
			Level:  row.Level,
			Column: c.Column,
			X1:     x,
			Y1:     c.Card.Bottom(),
			X2:     x,
			Y2:     c.Card.Bottom() + b.rowGap,
		})
	}
	return out
}
