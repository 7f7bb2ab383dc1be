// Package nodelink renders a mesh diagram as a Graphviz node-link graph.
//
// Each level becomes one rank, top to bottom. Nodes on a level with
// horizontal arrows are chained left to right in column order, and backbone
// nodes of linked levels are joined by double-headed edges.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be written out and processed with the graphviz
// command-line tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no graphviz installation is needed.
package nodelink
