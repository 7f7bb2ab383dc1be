// Package render holds the output formats of meshdiagram.
//
//   - [sink]: JSON, SVG card grid, and terminal text from a layout grid
//   - [nodelink]: Graphviz DOT and SVG from a diagram
//
// [ToPDF] and [ToPNG] convert any SVG produced by those packages using the
// external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(grid)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [sink]: github.com/GuilfordHill/SVMesh/pkg/render/sink
// [nodelink]: github.com/GuilfordHill/SVMesh/pkg/render/nodelink
package render
