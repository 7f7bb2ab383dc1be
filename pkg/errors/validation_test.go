package errors

import (
	"strings"
	"testing"
)

func TestValidateInputSize(t *testing.T) {
	if err := ValidateInputSize("│ base │"); err != nil {
		t.Errorf("ValidateInputSize(small) error = %v", err)
	}
	err := ValidateInputSize(strings.Repeat("x", MaxInputBytes+1))
	if !Is(err, ErrCodeInputTooLarge) {
		t.Errorf("ValidateInputSize(large) = %v, want %s", err, ErrCodeInputTooLarge)
	}
}

func TestValidateTolerance(t *testing.T) {
	tests := []struct {
		tol     float64
		wantErr bool
	}{
		{0, false},
		{20, false},
		{MaxTolerance, false},
		{-1, true},
		{MaxTolerance + 1, true},
	}
	for _, tt := range tests {
		err := ValidateTolerance(tt.tol)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTolerance(%v) error = %v, wantErr %v", tt.tol, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("ValidateTolerance(%v) returned wrong error code: %v", tt.tol, err)
		}
	}
}

func TestValidateTabWidth(t *testing.T) {
	for _, w := range []int{0, 4, 8, MaxTabWidth} {
		if err := ValidateTabWidth(w); err != nil {
			t.Errorf("ValidateTabWidth(%d) error = %v", w, err)
		}
	}
	for _, w := range []int{-1, MaxTabWidth + 1} {
		if err := ValidateTabWidth(w); err == nil {
			t.Errorf("ValidateTabWidth(%d) error = nil, want error", w)
		}
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Mountain site", false},
		{"unicode", "Tårn", false},
		{"blank", "   ", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"control char", "a\x01b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "topology.svg", false},
		{"valid nested", "out/diagrams/topology.json", false},
		{"valid absolute", "/tmp/topology.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeInputTooLarge,
		ErrCodeNoDiagram,
		ErrCodeInvalidBackend,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
