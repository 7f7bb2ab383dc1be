// Package cache provides caching for the meshdiagram pipeline.
//
// Each pipeline stage (parse, layout, render) stores its output under a key
// derived from the hash of its input plus the options that affect it, so
// re-running on an unchanged diagram skips every stage.
//
// Three backends implement [Cache]:
//   - [FileCache] stores JSON entries under a local directory (CLI default)
//   - [RedisCache] shares entries between machines through Redis
//   - [NullCache] disables caching
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the key components;
// [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte slices by key.
//
// Get reports a miss with hit=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (removed int, err error)
}

// Default TTLs per stage. Parse output only changes when the engine does, so
// it lives longest.
const (
	TTLDiagram  = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// DiagramKeyOpts holds the engine settings that change parse output.
type DiagramKeyOpts struct {
	Tolerance float64           `json:"tolerance"`
	TabWidth  int               `json:"tab_width"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// LayoutKeyOpts holds the grid geometry.
type LayoutKeyOpts struct {
	CardWidth  float64 `json:"card_width"`
	CardHeight float64 `json:"card_height"`
	Gap        float64 `json:"gap"`
}

// ArtifactKeyOpts identifies one rendered output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// DiagramKey keys parse output by the hash of the source text.
	DiagramKey(textHash string, opts DiagramKeyOpts) string
	// LayoutKey keys a grid by the hash of the parsed diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of the grid.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DiagramKey(textHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", textHash, opts)
}

func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
