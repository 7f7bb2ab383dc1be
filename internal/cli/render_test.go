package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/pipeline"
)

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "mesh")
	artifacts := map[string][]byte{
		pipeline.FormatJSON:     []byte(`{"levels":[]}`),
		pipeline.FormatNodelink: []byte("<svg/>"),
	}

	paths, err := writeArtifacts(artifacts, []string{pipeline.FormatNodelink, pipeline.FormatJSON}, base)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	want := []string{base + ".nodelink.svg", base + ".json"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}
}

func TestWriteArtifactsMissingFormat(t *testing.T) {
	base := filepath.Join(t.TempDir(), "mesh")
	_, err := writeArtifacts(map[string][]byte{}, []string{pipeline.FormatSVG}, base)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("writeArtifacts() = %v, want %s", err, errors.ErrCodeInternal)
	}
}

func TestWriteArtifactsInvalidBase(t *testing.T) {
	_, err := writeArtifacts(nil, nil, "bad\x00path")
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("writeArtifacts() = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}
