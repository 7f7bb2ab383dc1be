// Package sink renders a laid-out mesh diagram to output formats.
//
// Every renderer takes a [layout.Grid] (and, for JSON, the source
// [diagram.Diagram]) and returns bytes:
//
//   - [RenderJSON]: the levels payload plus the grid geometry
//   - [RenderSVG]: typed cards with arrow connectors, for previews
//   - [RenderText]: bordered cards for the terminal
//
// SVG colors follow the site theme: ingress cards use the info palette,
// base cards the success palette, backbone cards the primary color.
//
// [layout.Grid]: github.com/GuilfordHill/SVMesh/pkg/layout.Grid
// [diagram.Diagram]: github.com/GuilfordHill/SVMesh/pkg/diagram.Diagram
package sink
