// Package cli implements the meshdiagram command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/GuilfordHill/SVMesh/pkg/buildinfo"
	"github.com/GuilfordHill/SVMesh/pkg/cache"
	"github.com/GuilfordHill/SVMesh/pkg/config"
	"github.com/GuilfordHill/SVMesh/pkg/observability"
	"github.com/GuilfordHill/SVMesh/pkg/observability/prom"
	"github.com/GuilfordHill/SVMesh/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "meshdiagram"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flag values.
	configPath  string
	noCache     bool
	metricsFile string

	// cfg is loaded once per invocation before any command runs.
	cfg     config.Config
	metrics *prom.Metrics
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "meshdiagram turns ASCII mesh topology sketches into structured diagrams",
		Long: `meshdiagram reads box-and-arrow ASCII sketches of a radio mesh (ingress
devices, rooftop base nodes, tower backbone nodes) and infers levels, aligned
columns and inter-level links. The result can be printed as JSON or rendered
to SVG, Graphviz, PDF, PNG or a terminal preview.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/meshdiagram/config.toml)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")
	pf.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and installs metrics hooks before a command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	if c.metricsFile != "" && c.metrics == nil {
		c.metrics = prom.New(prometheus.NewRegistry())
		observability.SetPipelineHooks(c.metrics)
		observability.SetCacheHooks(c.metrics)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// Close flushes metrics collected during the run. It is called by main after
// the command returns, whether or not it succeeded.
func (c *CLI) Close() error {
	if c.metrics == nil {
		return nil
	}
	defer observability.Reset()
	if err := c.metrics.WriteTextfile(c.metricsFile); err != nil {
		return err
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	ttl, err := c.cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	runner.TTL = ttl
	return runner, nil
}

// newCache opens the configured cache backend for a pipeline run. An
// unreachable Redis server degrades to no caching rather than failing the
// command.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	if c.noCache || c.cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil, nil
	}
	store, keyer, err := c.openCache(ctx)
	if stderrors.Is(err, cache.ErrNetwork) {
		c.Logger.Warn("redis cache unavailable, caching disabled", "addr", c.cfg.Cache.RedisAddr, "err", err)
		return cache.NewNullCache(), nil, nil
	}
	return store, keyer, err
}

// openCache opens the configured backend without any fallback.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil, nil
	case config.BackendRedis:
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   c.cfg.Cache.RedisAddr,
			DB:     c.cfg.Cache.RedisDB,
			Prefix: c.cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix), nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil, nil
		}
		store, err := cache.NewFileCache(dir)
		return store, nil, err
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to cacheDir.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/meshdiagram/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// engineFlags are the inference settings shared by parse, render and inspect.
// Zero values defer to the config file.
type engineFlags struct {
	tolerance float64
	tabWidth  int
	refresh   bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "column clustering tolerance in characters (default from config, 20)")
	cmd.Flags().IntVar(&f.tabWidth, "tab-width", 0, "expand tabs to this width before scanning (0 keeps tabs)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options builds pipeline options from the config file, overridden by flags.
func (c *CLI) options(in input, f engineFlags) pipeline.Options {
	opts := pipeline.Options{
		Source:     in.source,
		Text:       in.text,
		Tolerance:  c.cfg.Engine.Tolerance,
		TabWidth:   c.cfg.Engine.TabWidth,
		Labels:     c.cfg.Engine.Labels,
		Refresh:    f.refresh,
		CardWidth:  c.cfg.Render.CardWidth,
		CardHeight: c.cfg.Render.CardHeight,
		Gap:        c.cfg.Render.Gap,
		Formats:    c.cfg.Render.Formats,
		Logger:     c.Logger,
	}
	if f.tolerance != 0 {
		opts.Tolerance = f.tolerance
	}
	if f.tabWidth != 0 {
		opts.TabWidth = f.tabWidth
	}
	return opts
}
