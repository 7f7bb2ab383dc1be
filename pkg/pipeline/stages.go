package pipeline

import (
	"context"
	"fmt"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
	"github.com/GuilfordHill/SVMesh/pkg/render"
	"github.com/GuilfordHill/SVMesh/pkg/render/nodelink"
	"github.com/GuilfordHill/SVMesh/pkg/render/sink"
)

// Parse infers the diagram from opts.Text. It fails only on invalid options;
// any text that passes validation yields a diagram, possibly empty.
func Parse(opts Options) (diagram.Diagram, error) {
	if err := opts.ValidateForParse(); err != nil {
		return diagram.Diagram{}, err
	}
	return diagram.ParseWithConfig(opts.Text, opts.EngineConfig()), nil
}

// GenerateLayout places d on a card grid.
func GenerateLayout(d diagram.Diagram, opts Options) (layout.Grid, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Grid{}, err
	}
	return layout.Build(d,
		layout.WithCardSize(opts.CardWidth, opts.CardHeight),
		layout.WithGap(opts.Gap),
	), nil
}

// RenderFromLayout produces every requested format.
func RenderFromLayout(ctx context.Context, d diagram.Diagram, g layout.Grid, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	cardSVG := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(g)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(d, g, sink.WithJSONIndent())
		case FormatSVG:
			data = cardSVG()
		case FormatText:
			data = sink.RenderText(g)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed}))
		case FormatNodelink:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed}))
		case FormatPDF:
			data, err = render.ToPDF(ctx, cardSVG())
		case FormatPNG:
			data, err = render.ToPNG(ctx, cardSVG(), opts.Scale)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
