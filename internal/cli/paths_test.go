package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GuilfordHill/SVMesh/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCLICacheDirFromConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	c := New(os.Stderr, LogInfo)

	dir, _ := c.cacheDir()
	if !strings.HasPrefix(dir, "/tmp/xdg") {
		t.Errorf("cacheDir() without config = %q, want XDG location", dir)
	}

	c.cfg.Cache.Dir = "/srv/meshdiagram-cache"
	dir, _ = c.cacheDir()
	if dir != "/srv/meshdiagram-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestCacheLocation(t *testing.T) {
	c := New(os.Stderr, LogInfo)

	c.cfg = config.Default()
	c.cfg.Cache.Backend = config.BackendRedis
	c.cfg.Cache.RedisAddr = "cache.lan:6379"
	c.cfg.Cache.RedisDB = 2
	if got, want := c.cacheLocation(), `redis://cache.lan:6379/2 (prefix "meshdiagram:")`; got != want {
		t.Errorf("cacheLocation() = %q, want %q", got, want)
	}

	c.cfg.Cache.Backend = config.BackendNone
	if got := c.cacheLocation(); got != "none" {
		t.Errorf("cacheLocation() = %q, want none", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		source string
		want   string
	}{
		{"from input file", "", "sites/hill.txt", "sites/hill"},
		{"from stdin", "", "stdin", "diagram"},
		{"explicit base", "out/mesh", "hill.txt", "out/mesh"},
		{"strips svg", "out/mesh.svg", "hill.txt", "out/mesh"},
		{"strips nodelink before svg", "out/mesh.nodelink.svg", "hill.txt", "out/mesh"},
		{"keeps unknown ext", "out/mesh.v2", "hill.txt", "out/mesh.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.source); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.source, got, tt.want)
			}
		})
	}
}
