// Package pipeline runs the meshdiagram parse → layout → render pipeline.
//
// The CLI and any embedding program go through this package so that input
// limits, defaults, caching, and hooks behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: infer levels, columns and links from the ASCII text
//  2. Layout: place the levels on a card grid
//  3. Render: produce output formats (JSON, SVG, DOT, node-link SVG, text, PDF, PNG)
//
// Each stage is cached under a key derived from its input hash and the
// options that affect it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "site.txt",
//	    Text:    text,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/GuilfordHill/SVMesh/pkg/cache"
	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// MaxInputBytes is the largest diagram text the pipeline accepts.
	MaxInputBytes = errors.MaxInputBytes

	// DefaultSource names input that did not come from a file.
	DefaultSource = "stdin"

	// DefaultPNGScale is the PNG resolution multiplier.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatText     = "text"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatSVG:      true,
	FormatDOT:      true,
	FormatNodelink: true,
	FormatText:     true,
	FormatPDF:      true,
	FormatPNG:      true,
}

// FormatExt maps a format to its output file extension.
var FormatExt = map[string]string{
	FormatJSON:     ".json",
	FormatSVG:      ".svg",
	FormatDOT:      ".dot",
	FormatNodelink: ".nodelink.svg",
	FormatText:     ".txt",
	FormatPDF:      ".pdf",
	FormatPNG:      ".png",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
type Options struct {
	// Parse options
	Source    string            `json:"source,omitempty"`
	Text      string            `json:"text"`
	Tolerance float64           `json:"tolerance,omitempty"`
	TabWidth  int               `json:"tab_width,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Refresh   bool              `json:"refresh,omitempty"`

	// Layout options
	CardWidth  float64 `json:"card_width,omitempty"`
	CardHeight float64 `json:"card_height,omitempty"`
	Gap        float64 `json:"gap,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // node-link labels include type and column
	Scale    float64  `json:"scale,omitempty"`    // PNG scale

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this execution in logs.
	RunID string

	// Diagram is the inferred structure.
	Diagram diagram.Diagram

	// DiagramHash is the content hash of the serialized diagram.
	DiagramHash string

	// Grid is the card layout.
	Grid layout.Grid

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Levels     int
	NodeCount  int
	Columns    int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the diagram came from cache
	LayoutHit bool // Whether the grid came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, dot, nodelink, text, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the input text and engine settings.
// Empty text is valid and yields an empty diagram.
func (o *Options) ValidateForParse() error {
	if err := errors.ValidateInputSize(o.Text); err != nil {
		return err
	}
	if err := errors.ValidateTolerance(o.Tolerance); err != nil {
		return err
	}
	if err := errors.ValidateTabWidth(o.TabWidth); err != nil {
		return err
	}
	for k, v := range o.Labels {
		if _, ok := diagram.ParseNodeType(k); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown node type for label: %q", k)
		}
		if err := errors.ValidateLabel(v); err != nil {
			return err
		}
	}
	o.SetParseDefaults()
	return nil
}

// SetParseDefaults sets default values for parsing.
func (o *Options) SetParseDefaults() {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.Tolerance == 0 {
		o.Tolerance = diagram.DefaultTolerance
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.CardWidth == 0 {
		o.CardWidth = layout.DefaultCardWidth
	}
	if o.CardHeight == 0 {
		o.CardHeight = layout.DefaultCardHeight
	}
	if o.Gap == 0 {
		o.Gap = layout.DefaultGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.CardWidth < 0 || o.CardHeight < 0 || o.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "card size and gap cannot be negative")
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale cannot be negative")
	}
	return ValidateFormats(o.Formats)
}

// EngineConfig returns the pkg/diagram configuration for these options.
func (o *Options) EngineConfig() diagram.Config {
	cfg := diagram.DefaultConfig()
	if o.Tolerance > 0 {
		cfg.Tolerance = o.Tolerance
	}
	cfg.TabWidth = o.TabWidth
	for k, v := range o.Labels {
		if t, ok := diagram.ParseNodeType(k); ok {
			if cfg.Labels == nil {
				cfg.Labels = make(map[diagram.NodeType]string)
			}
			cfg.Labels[t] = v
		}
	}
	return cfg
}

// DiagramKeyOpts returns cache key options for parsing.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		Tolerance: o.Tolerance,
		TabWidth:  o.TabWidth,
		Labels:    o.Labels,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		CardWidth:  o.CardWidth,
		CardHeight: o.CardHeight,
		Gap:        o.Gap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Only the options a format actually reads are folded into its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatNodelink:
		if o.Detailed {
			k.Format += "+detailed"
		}
	case FormatPNG:
		k.Format += fmt.Sprintf("@%.2f", o.Scale)
	}
	return k
}
