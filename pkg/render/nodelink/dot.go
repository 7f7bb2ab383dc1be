package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node type and column index under each label.
	Detailed bool
}

var nodeColors = map[diagram.NodeType]string{
	diagram.Ingress:  "#0288d1",
	diagram.Base:     "#2e7d32",
	diagram.Backbone: "#183F41",
}

type placed struct {
	id     string
	node   diagram.Node
	column int
}

// ToDOT converts a diagram to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(d diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph mesh {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\", penwidth=2];\n")
	buf.WriteString("  edge [color=\"#607d8b\", penwidth=1.5];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")

	levels := make([][]placed, len(d.Levels))
	for i, lvl := range d.Levels {
		for j, n := range lvl.Nodes {
			col := 0
			if j < len(lvl.ColumnPositions) {
				col = lvl.ColumnPositions[j]
			}
			levels[i] = append(levels[i], placed{id: fmt.Sprintf("L%dN%d", i, j), node: n, column: col})
		}
		slices.SortStableFunc(levels[i], func(a, b placed) int { return cmp.Compare(a.column, b.column) })
	}

	for i, nodes := range levels {
		fmt.Fprintf(&buf, "\n  subgraph level%d {\n    rank=same;\n", i)
		for _, p := range nodes {
			fmt.Fprintf(&buf, "    %s [%s];\n", p.id, strings.Join(fmtAttrs(p, opts.Detailed), ", "))
		}
		if d.Levels[i].HasConnections {
			for k := 1; k < len(nodes); k++ {
				fmt.Fprintf(&buf, "    %s -> %s;\n", nodes[k-1].id, nodes[k].id)
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for i := 0; i+1 < len(levels); i++ {
		writeLevelEdges(&buf, levels[i], levels[i+1], d.Linked(i))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(p placed, detailed bool) []string {
	label := p.node.Label
	if detailed {
		label = fmt.Sprintf("%s\n%s · col %d", label, p.node.Type, p.column)
	}
	color := nodeColors[p.node.Type]
	if color == "" {
		color = nodeColors[diagram.Base]
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("color=%q", color),
		fmt.Sprintf("fontcolor=%q", color),
		fmt.Sprintf("class=%q", string(p.node.Type)),
	}
}

// writeLevelEdges joins backbones of linked levels, preferring pairs in the
// same column. Unlinked levels get an invisible edge to keep rank order.
func writeLevelEdges(buf *bytes.Buffer, upper, lower []placed, linked bool) {
	if len(upper) == 0 || len(lower) == 0 {
		return
	}
	if !linked {
		fmt.Fprintf(buf, "  %s -> %s [style=invis];\n", upper[0].id, lower[0].id)
		return
	}

	ub := backbones(upper)
	lb := backbones(lower)
	if len(ub) == 0 || len(lb) == 0 {
		fmt.Fprintf(buf, "  %s -> %s [style=invis];\n", upper[0].id, lower[0].id)
		return
	}
	joined := false
	for _, u := range ub {
		for _, l := range lb {
			if u.column == l.column {
				fmt.Fprintf(buf, "  %s -> %s [dir=both];\n", u.id, l.id)
				joined = true
			}
		}
	}
	if !joined {
		fmt.Fprintf(buf, "  %s -> %s [dir=both];\n", ub[0].id, lb[0].id)
	}
}

func backbones(nodes []placed) []placed {
	var out []placed
	for _, p := range nodes {
		if p.node.Type == diagram.Backbone {
			out = append(out, p)
		}
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces graphviz's pt-sized root element with a
// unitless viewBox so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
