// Package diagram infers a leveled mesh topology from hand-drawn box diagrams.
//
// # Overview
//
// Network pages describe their radio mesh with box-drawing ASCII art: portable
// ingress devices, rooftop base relays and backbone towers drawn as boxes
// delimited by the "│" glyph, joined by arrow glyphs. This package recovers a
// structured graph from that text:
//
//   - the typed nodes ([Node]),
//   - their grouping into rows ([Level]),
//   - their alignment into diagram-wide logical columns ([Columns]),
//   - the horizontal and vertical connections between them.
//
// There is no grammar. The parser is a best-effort heuristic: malformed input
// never fails, it simply yields fewer nodes or levels.
//
// # Stages
//
// [Parse] chains four stateless stages, each exported for isolated testing:
//
//  1. [Scan] finds node boxes on every line and classifies them by keyword.
//  2. [ResolveLabels] attaches a label from the first "(...)" group on the
//     box's line or the line after it, or a per-type default.
//  3. [Cluster] bins every box center into shared logical columns using a
//     fixed tolerance ([DefaultTolerance]).
//  4. [Assemble] groups boxes by row into levels and assigns column indices;
//     [BackboneLinks] flags vertical connections between consecutive levels.
//
// Clustering is the single synchronization point: every row must be scanned
// before any column index can be assigned.
//
// # Usage
//
//	d := diagram.Parse(text)
//	if d.Empty() {
//	    // render "no diagram recognized"
//	}
//	for i, lvl := range d.Levels {
//	    fmt.Println(i, lvl.Nodes, lvl.ColumnPositions, lvl.HasConnections)
//	}
//
// # Heuristics
//
// Two behaviors are deliberately coarse and preserved as-is:
//
//   - A box containing several keywords is classified by the first match in
//     the order ingress, backbone, base.
//   - Vertical links are decided globally: if any line anywhere contains "▲"
//     or "▼", every pair of consecutive levels that both hold a backbone node
//     is linked.
//
// Columns closer together than the tolerance collapse into one logical column.
package diagram
