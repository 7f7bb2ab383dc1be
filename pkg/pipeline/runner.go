package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/GuilfordHill/SVMesh/pkg/cache"
	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
	"github.com/GuilfordHill/SVMesh/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage cache TTLs when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Parse
	parseStart := time.Now()
	d, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Diagram = d
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Levels = len(d.Levels)
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.Columns = len(d.Columns)
	result.CacheInfo.ParseHit = parseHit
	if data, err := json.Marshal(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}

	logger.Info("parsed diagram",
		"source", opts.Source,
		"levels", result.Stats.Levels,
		"nodes", result.Stats.NodeCount,
		"columns", result.Stats.Columns,
		"cached", parseHit,
		"duration", result.Stats.ParseTime)
	if d.Empty() {
		logger.Warn("no node boxes found", "source", opts.Source)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	g, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Grid = g
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Debug("computed layout",
		"columns", g.Columns,
		"connectors", len(g.Connectors),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo infers the diagram with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (diagram.Diagram, bool, error) {
	if opts.Source == "" {
		opts.Source = DefaultSource
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Source, len(opts.Text))
	start := time.Now()

	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		hooks.OnParseComplete(ctx, opts.Source, observability.ParseStats{}, time.Since(start), err)
		return diagram.Diagram{}, false, err
	}

	cacheKey := r.Keyer.DiagramKey(cache.Hash([]byte(opts.Text)), opts.DiagramKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var cached diagram.Diagram
		if r.lookup(ctx, observability.StageParse, cacheKey, &cached) {
			hooks.OnParseComplete(ctx, opts.Source, parseStats(cached), time.Since(start), nil)
			return cached, true, nil
		}
	}

	d, err := Parse(opts)
	hooks.OnParseComplete(ctx, opts.Source, parseStats(d), time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, false, err
	}

	r.store(ctx, observability.StageParse, cacheKey, d, r.ttl(cache.TTLDiagram))
	return d, false, nil
}

// ParseDiagram is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) ParseDiagram(ctx context.Context, opts Options) (diagram.Diagram, error) {
	d, _, err := r.ParseWithCacheInfo(ctx, opts)
	return d, err
}

// GenerateLayoutWithCacheInfo generates a grid with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (layout.Grid, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(d.Levels))
	start := time.Now()

	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		hooks.OnLayoutComplete(ctx, 0, time.Since(start), err)
		return layout.Grid{}, false, err
	}

	diagramData, err := json.Marshal(d)
	if err != nil {
		return layout.Grid{}, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(diagramData), opts.LayoutKeyOpts())

	var cached layout.Grid
	if r.lookup(ctx, observability.StageLayout, cacheKey, &cached) {
		hooks.OnLayoutComplete(ctx, cached.Columns, time.Since(start), nil)
		return cached, true, nil
	}

	g, err := GenerateLayout(d, opts)
	hooks.OnLayoutComplete(ctx, g.Columns, time.Since(start), err)
	if err != nil {
		return layout.Grid{}, false, err
	}

	r.store(ctx, observability.StageLayout, cacheKey, g, r.ttl(cache.TTLLayout))
	return g, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, g layout.Grid, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// The JSON artifact embeds the diagram, so the key covers both inputs.
	keyData, err := json.Marshal(struct {
		D diagram.Diagram `json:"d"`
		G layout.Grid     `json:"g"`
	}{d, g})
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	keyHash := cache.Hash(keyData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		data, ok := r.lookupRaw(ctx, observability.StageRender, r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	rendered, err := RenderFromLayout(ctx, d, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.storeRaw(ctx, observability.StageRender, r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format)), data, r.ttl(cache.TTLArtifact))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d diagram.Diagram, g layout.Grid, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads and decodes a cached JSON value. Backend errors and
// undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, stage, key string, v any) bool {
	data, ok := r.lookupRaw(ctx, stage, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.Logger.Debug("discarding undecodable cache entry", "stage", stage, "err", err)
		return false
	}
	return true
}

func (r *Runner) lookupRaw(ctx context.Context, stage, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, stage, err)
		r.Logger.Warn("cache read failed", "stage", stage, "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, stage)
		return nil, false
	}
	hooks.OnCacheHit(ctx, stage)
	return data, true
}

func (r *Runner) store(ctx context.Context, stage, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.storeRaw(ctx, stage, key, data, ttl)
}

func (r *Runner) storeRaw(ctx context.Context, stage, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, stage, err)
		r.Logger.Warn("cache write failed", "stage", stage, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, stage, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func parseStats(d diagram.Diagram) observability.ParseStats {
	s := observability.ParseStats{
		Levels:   len(d.Levels),
		Nodes:    d.NodeCount(),
		Columns:  len(d.Columns),
		Vertical: d.VerticalArrows,
	}
	for _, l := range d.Links {
		if l {
			s.Links++
		}
	}
	return s
}
