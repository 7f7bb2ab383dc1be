// Package config loads meshdiagram settings from a TOML file.
//
// Lookup order: an explicit path (the --config flag), then
// $XDG_CONFIG_HOME/meshdiagram/config.toml, then
// ~/.config/meshdiagram/config.toml. A missing file yields [Default].
// MESHDIAGRAM_CACHE and MESHDIAGRAM_REDIS_ADDR override the cache section.
//
// Example file:
//
//	[engine]
//	tolerance = 24
//	tab_width = 8
//
//	[engine.labels]
//	ingress = "Handheld"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache.lan:6379"
//	ttl = "48h"
//
//	[render]
//	formats = ["svg", "json"]
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/errors"
)

const appName = "meshdiagram"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment overrides.
const (
	EnvCache     = "MESHDIAGRAM_CACHE"
	EnvRedisAddr = "MESHDIAGRAM_REDIS_ADDR"
)

// Config is the decoded configuration file.
type Config struct {
	Engine Engine `toml:"engine"`
	Cache  Cache  `toml:"cache"`
	Render Render `toml:"render"`

	// Path is the file the config was read from, empty when defaults were used.
	Path string `toml:"-"`
}

// Engine holds inference settings.
type Engine struct {
	Tolerance float64           `toml:"tolerance"`
	TabWidth  int               `toml:"tab_width"`
	Labels    map[string]string `toml:"labels"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	Prefix    string `toml:"prefix"`
	TTL       string `toml:"ttl"`
}

// Render holds output defaults.
type Render struct {
	Formats    []string `toml:"formats"`
	CardWidth  float64  `toml:"card_width"`
	CardHeight float64  `toml:"card_height"`
	Gap        float64  `toml:"gap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: Engine{Tolerance: diagram.DefaultTolerance},
		Cache:  Cache{Backend: BackendFile, Prefix: appName + ":"},
		Render: Render{Formats: []string{"json"}},
	}
}

// Load reads the config at path, or the XDG default when path is empty.
// An explicit path that does not exist is an error; a missing default is not.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg = applyEnv(cfg)
			return cfg, cfg.Validate()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		cfg = applyEnv(cfg)
		return cfg, cfg.Validate()
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	cfg.Path = path
	cfg = applyEnv(cfg)
	return cfg, cfg.Validate()
}

// Parse decodes TOML on top of the defaults. Unknown keys are rejected so a
// misspelled setting does not silently fall back.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(EnvCache); v != "" {
		cfg.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	return cfg
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := errors.ValidateTolerance(c.Engine.Tolerance); err != nil {
		return err
	}
	if err := errors.ValidateTabWidth(c.Engine.TabWidth); err != nil {
		return err
	}
	for k, v := range c.Engine.Labels {
		if _, ok := diagram.ParseNodeType(k); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown node type in [engine.labels]: %q", k)
		}
		if err := errors.ValidateLabel(v); err != nil {
			return err
		}
	}

	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidBackend, "cache backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Cache.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "redis_db cannot be negative")
	}

	if c.Render.CardWidth < 0 || c.Render.CardHeight < 0 || c.Render.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render sizes cannot be negative")
	}
	return nil
}

// CacheTTL parses cache.ttl. Empty means the per-stage defaults (zero).
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}
