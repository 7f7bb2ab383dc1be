package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/pipeline"
)

func TestFromStdin(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, true},
		{[]string{"-"}, true},
		{[]string{"mesh.txt"}, false},
	}
	for _, tt := range tests {
		if got := fromStdin(tt.args); got != tt.want {
			t.Errorf("fromStdin(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestReadInputStdin(t *testing.T) {
	in, err := readInput(strings.NewReader(meshText), []string{"-"})
	if err != nil {
		t.Fatalf("readInput() error: %v", err)
	}
	if in.source != pipeline.DefaultSource {
		t.Errorf("source = %q, want %q", in.source, pipeline.DefaultSource)
	}
	if in.text != meshText {
		t.Error("stdin text was altered")
	}
}

func TestReadInputStdinOversize(t *testing.T) {
	big := strings.Repeat("x", pipeline.MaxInputBytes+10)
	in, err := readInput(strings.NewReader(big), nil)
	if err != nil {
		t.Fatalf("readInput() error: %v", err)
	}
	if len(in.text) != pipeline.MaxInputBytes+1 {
		t.Errorf("len(text) = %d, want %d so validation rejects it", len(in.text), pipeline.MaxInputBytes+1)
	}
}

func TestReadInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.txt")
	if err := os.WriteFile(path, []byte(meshText), 0o644); err != nil {
		t.Fatal(err)
	}
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(big, make([]byte, pipeline.MaxInputBytes+1), 0o644); err != nil {
		t.Fatal(err)
	}

	in, err := readInput(nil, []string{path})
	if err != nil {
		t.Fatalf("readInput() error: %v", err)
	}
	if in.source != path || in.text != meshText {
		t.Errorf("readInput() = {%q, %d bytes}, want {%q, %d bytes}", in.source, len(in.text), path, len(meshText))
	}

	tests := []struct {
		name string
		arg  string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.txt"), errors.ErrCodeFileNotFound},
		{"directory", dir, errors.ErrCodeInvalidInput},
		{"too large", big, errors.ErrCodeInputTooLarge},
		{"bad path", "mesh\x00.txt", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readInput(nil, []string{tt.arg})
			if !errors.Is(err, tt.code) {
				t.Errorf("readInput(%q) = %v, want %s", tt.arg, err, tt.code)
			}
		})
	}
}

func TestParseSummary(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, meshText, "parse", "--summary")
	if err != nil {
		t.Fatalf("parse --summary error: %v", err)
	}
	if out != "" {
		t.Errorf("--summary should not write JSON to the command output, got %q", out)
	}
}
