// Package prom implements observability hooks on Prometheus collectors.
//
// Metrics register on the caller's registry, so tests and the CLI each get an
// isolated set. The CLI writes the registry in textfile-collector format on
// exit (see [WriteTextfile]) since a short-lived process has nothing to scrape.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GuilfordHill/SVMesh/pkg/observability"
)

const namespace = "meshdiagram"

// Metrics holds the collectors and implements both hook interfaces.
type Metrics struct {
	registry *prometheus.Registry

	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	NodesParsed   *prometheus.HistogramVec
	LevelsParsed  prometheus.Histogram
	DiagramLinks  prometheus.Counter
	CacheTotal    *prometheus.CounterVec
	CacheBytes    *prometheus.CounterVec
}

// New creates the collectors on registry. A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{registry: registry}
	f := promauto.With(registry)

	m.StageTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions by outcome",
		},
		[]string{"stage", "status"},
	)

	m.StageDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"stage"},
	)

	m.NodesParsed = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "diagram_nodes",
			Help:      "Nodes found per parsed diagram",
			Buckets:   prometheus.LinearBuckets(0, 4, 8),
		},
		[]string{"source"},
	)

	m.LevelsParsed = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "diagram_levels",
			Help:      "Levels found per parsed diagram",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		},
	)

	m.DiagramLinks = f.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagram_backbone_links_total",
			Help:      "Backbone-to-backbone links inferred",
		},
	)

	m.CacheTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by stage and result",
		},
		[]string{"stage", "result"},
	)

	m.CacheBytes = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache",
		},
		[]string{"stage"},
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) stage(stage string, d time.Duration, err error) {
	m.StageTotal.WithLabelValues(stage, status(err)).Inc()
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) OnParseStart(context.Context, string, int) {}

func (m *Metrics) OnParseComplete(_ context.Context, source string, s observability.ParseStats, d time.Duration, err error) {
	m.stage(observability.StageParse, d, err)
	if err != nil {
		return
	}
	m.NodesParsed.WithLabelValues(source).Observe(float64(s.Nodes))
	m.LevelsParsed.Observe(float64(s.Levels))
	m.DiagramLinks.Add(float64(s.Links))
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.stage(observability.StageLayout, d, err)
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.stage(observability.StageRender, d, err)
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnCacheError(_ context.Context, keyType string, _ error) {
	m.CacheTotal.WithLabelValues(keyType, "error").Inc()
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)
