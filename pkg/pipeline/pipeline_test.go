package pipeline

import (
	"strings"
	"testing"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"dot", false},
		{"nodelink", false},
		{"text", false},
		{"pdf", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) returned wrong error code: %v", tt.format, err)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" SVG, json,,dot ")
	want := []string{"svg", "json", "dot"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseFormats() = %v, want %v", got, want)
	}
	if ParseFormats("") != nil {
		t.Error("ParseFormats(\"\") should be nil")
	}
}

func TestFormatExtCoversEveryFormat(t *testing.T) {
	for f := range ValidFormats {
		if FormatExt[f] == "" {
			t.Errorf("no file extension for format %q", f)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Text: "│ base │"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Source != DefaultSource {
		t.Errorf("Source = %q, want %q", opts.Source, DefaultSource)
	}
	if opts.Tolerance != diagram.DefaultTolerance {
		t.Errorf("Tolerance = %v, want %v", opts.Tolerance, diagram.DefaultTolerance)
	}
	if opts.CardWidth != layout.DefaultCardWidth || opts.CardHeight != layout.DefaultCardHeight {
		t.Errorf("card = %vx%v, want defaults", opts.CardWidth, opts.CardHeight)
	}
	if opts.Gap != layout.DefaultGap {
		t.Errorf("Gap = %v, want %v", opts.Gap, layout.DefaultGap)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Scale != DefaultPNGScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty text is fine", Options{}, ""},
		{"too large", Options{Text: strings.Repeat("x", MaxInputBytes+1)}, errors.ErrCodeInputTooLarge},
		{"negative tolerance", Options{Tolerance: -3}, errors.ErrCodeInvalidConfig},
		{"tab width", Options{TabWidth: 100}, errors.ErrCodeInvalidConfig},
		{"label type", Options{Labels: map[string]string{"relay": "x"}}, errors.ErrCodeInvalidInput},
		{"blank label", Options{Labels: map[string]string{"base": ""}}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForParse()
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateForParse() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForParse() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Text: "│ base │", Formats: []string{"svg"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := opts

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Tolerance != first.Tolerance || opts.CardWidth != first.CardWidth || len(opts.Formats) != len(first.Formats) {
		t.Error("ValidateAndSetDefaults should be idempotent")
	}
}

func TestValidateForLayout(t *testing.T) {
	opts := Options{CardWidth: -1}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("negative card width should fail")
	}
}

func TestEngineConfig(t *testing.T) {
	opts := Options{Tolerance: 12, TabWidth: 4, Labels: map[string]string{"Backbone": "Ridge"}}
	cfg := opts.EngineConfig()
	if cfg.Tolerance != 12 || cfg.TabWidth != 4 {
		t.Errorf("EngineConfig = %+v", cfg)
	}
	if cfg.Labels[diagram.Backbone] != "Ridge" {
		t.Errorf("backbone label = %q, want Ridge", cfg.Labels[diagram.Backbone])
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	plain := Options{Scale: 2}
	detailed := Options{Scale: 2, Detailed: true}

	if plain.ArtifactKeyOpts(FormatDOT) == detailed.ArtifactKeyOpts(FormatDOT) {
		t.Error("Detailed should change the dot key")
	}
	if plain.ArtifactKeyOpts(FormatSVG) != detailed.ArtifactKeyOpts(FormatSVG) {
		t.Error("Detailed should not change the svg key")
	}
	hi := Options{Scale: 3}
	if plain.ArtifactKeyOpts(FormatPNG) == hi.ArtifactKeyOpts(FormatPNG) {
		t.Error("Scale should change the png key")
	}
}
