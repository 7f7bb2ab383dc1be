// Package pkg provides the libraries behind meshdiagram.
//
// # Overview
//
// meshdiagram turns the ASCII box-and-arrow sketches used to document a radio
// mesh into a structured graph: typed nodes, levels, shared columns and the
// links between them. The pkg directory is organized into three areas:
//
//  1. [diagram] - The inference engine (pure, never fails)
//  2. [layout], [render] - Card grid geometry and output sinks
//  3. [pipeline], [cache], [config], [errors], [observability] - Orchestration
//     and the infrastructure around it
//
// # Architecture
//
// The typical data flow:
//
//	ASCII sketch (file or stdin)
//	         ↓
//	    [diagram] package (scan → labels → cluster → assemble)
//	         ↓
//	    [layout] package (card grid + connectors)
//	         ↓
//	    [render/sink], [render/nodelink] packages
//	         ↓
//	    JSON/SVG/DOT/text (PDF/PNG via rsvg-convert)
//
// [pipeline] runs these stages with per-stage caching through [cache] and
// reports timings through [observability].
//
// # Quick Start
//
//	import (
//	    "github.com/GuilfordHill/SVMesh/pkg/diagram"
//	    "github.com/GuilfordHill/SVMesh/pkg/layout"
//	    "github.com/GuilfordHill/SVMesh/pkg/render/sink"
//	)
//
//	d := diagram.Parse(text)
//	if d.Empty() {
//	    // no diagram recognized
//	}
//	g := layout.Build(d)
//	svg := sink.RenderSVG(g)
//
// Or with caching and every format at once:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    text,
//	    Formats: []string{"json", "svg"},
//	})
//
// # Main Packages
//
//   - [diagram]: Glyph scanning, label resolution, column clustering, level assembly
//   - [layout]: Grid rows, cells, card rectangles and connectors
//   - [render/sink]: JSON, SVG and terminal text sinks
//   - [render/nodelink]: Graphviz DOT and DOT → SVG
//   - [render]: SVG → PDF/PNG conversion
//   - [pipeline]: Options, validation and the cache-aware Runner
//   - [cache]: File, Redis and null caches with content-addressed keys
//   - [config]: TOML configuration with environment overrides
//   - [errors]: Coded errors and input validation
//   - [observability]: Pipeline and cache hooks; Prometheus in observability/prom
//   - [buildinfo]: Version information injected at build time
//
// [diagram]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/layout
// [render]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/cache
// [config]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/config
// [errors]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/errors
// [observability]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/GuilfordHill/SVMesh/pkg/buildinfo
package pkg
