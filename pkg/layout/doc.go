// Package layout places an inferred mesh diagram onto a card grid.
//
// # Overview
//
// A [diagram.Diagram] says which logical column each node belongs to but not
// where anything is drawn. [Build] turns it into a [Grid]:
//
//   - one [Row] per level, padded with spacer cells so every row spans the
//     same number of columns (the highest column index plus one),
//   - a [Card] rectangle for every cell,
//   - [Connector] segments for horizontal links inside a row and vertical
//     links between consecutive rows.
//
// # Row Shapes
//
// A level holding a single node in column 0 is drawn centered in the frame
// and always gets a connector to the next row: a plain downward arrow, or a
// bidirectional one when the pair is backbone-linked. Every other level is
// drawn on the grid; its nodes get a horizontal connector to the next column
// when the level has connections, and backbone cells get a bidirectional
// connector to the row below when the pair is linked.
//
// # Geometry
//
// Sizes default to the card geometry of the web client and can be tuned with
// [WithCardSize], [WithGap], [WithRowGap] and [WithMargin]:
//
//	g := layout.Build(d, layout.WithCardSize(180, 120))
package layout
