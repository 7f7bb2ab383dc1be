package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
)

// Palette is the fill, stroke and text color of one node type.
type Palette struct {
	Fill, Stroke, Text string
}

// Theme maps node types to palettes.
type Theme map[diagram.NodeType]Palette

// DefaultTheme mirrors the site's MUI palette.
var DefaultTheme = Theme{
	diagram.Ingress:  {Fill: "#03a9f4", Stroke: "#0288d1", Text: "#01579b"},
	diagram.Base:     {Fill: "#4caf50", Stroke: "#2e7d32", Text: "#1b5e20"},
	diagram.Backbone: {Fill: "#183F41", Stroke: "#183F41", Text: "#183F41"},
}

const (
	connectorColor = "#607d8b"
	fontFamily     = "Roboto, Helvetica, Arial, sans-serif"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      Theme
	background string
	showType   bool
}

// WithTheme replaces the node palettes. Missing types keep the default.
func WithTheme(t Theme) SVGOption {
	return func(r *svgRenderer) {
		for k, v := range t {
			r.theme[k] = v
		}
	}
}

// WithBackground fills the frame with color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutTypeCaption hides the small node-type caption above each label.
func WithoutTypeCaption() SVGOption {
	return func(r *svgRenderer) { r.showType = false }
}

// RenderSVG draws the grid as an SVG document.
func RenderSVG(g layout.Grid, opts ...SVGOption) []byte {
	r := svgRenderer{theme: Theme{}, showType: true}
	for k, v := range DefaultTheme {
		r.theme[k] = v
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		g.FrameWidth, g.FrameHeight, g.FrameWidth, g.FrameHeight)
	renderDefs(&buf)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	for _, c := range g.Connectors {
		renderConnector(&buf, c)
	}
	for _, row := range g.Rows {
		for _, cell := range row.Nodes() {
			r.renderCard(&buf, cell)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M0,0 L10,5 L0,10 z" fill="%s"/></marker>`+"\n", connectorColor)
	buf.WriteString("  </defs>\n")
}

func renderConnector(buf *bytes.Buffer, c layout.Connector) {
	markers := ` marker-end="url(#arrow)"`
	if c.Kind == layout.Bidirectional {
		markers = ` marker-start="url(#arrow)" marker-end="url(#arrow)"`
	}
	fmt.Fprintf(buf, `  <line class="connector %s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"%s/>`+"\n",
		c.Kind, c.X1, c.Y1, c.X2, c.Y2, connectorColor, markers)
}

func (r svgRenderer) renderCard(buf *bytes.Buffer, cell layout.Cell) {
	n := cell.Node
	p, ok := r.theme[n.Type]
	if !ok {
		p = DefaultTheme[diagram.Base]
	}
	c := cell.Card

	fmt.Fprintf(buf, `  <g class="node %s">`+"\n", n.Type)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" fill-opacity="0.15" stroke="%s" stroke-width="2"/>`+"\n",
		c.X, c.Y, c.W, c.H, p.Fill, p.Stroke)

	textColor := p.Text
	labelY := c.CenterY()
	if r.showType {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="11" fill="%s" opacity="0.8">%s</text>`+"\n",
			c.CenterX(), c.CenterY()-12, fontFamily, textColor, escapeXML(typeCaption(n.Type)))
		labelY += 8
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="14" font-weight="600" fill="%s">%s</text>`+"\n",
		c.CenterX(), labelY, fontFamily, textColor, escapeXML(n.Label))
	buf.WriteString("  </g>\n")
}

func typeCaption(t diagram.NodeType) string {
	switch t {
	case diagram.Ingress:
		return "INGRESS"
	case diagram.Backbone:
		return "BACKBONE"
	default:
		return "BASE"
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
