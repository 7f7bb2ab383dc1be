package errors

import (
	"strings"
	"unicode"
)

// MaxInputBytes is the largest diagram text accepted by the pipeline.
// Authored diagrams are a few kilobytes; anything near this is not a diagram.
const MaxInputBytes = 1 << 20

// MaxTolerance bounds the clustering tolerance accepted from configuration.
const MaxTolerance = 1000.0

// MaxTabWidth bounds the tab expansion width accepted from configuration.
const MaxTabWidth = 16

// ValidateInputSize rejects diagram text larger than MaxInputBytes.
func ValidateInputSize(text string) error {
	if len(text) > MaxInputBytes {
		return New(ErrCodeInputTooLarge, "diagram text is %d bytes (max %d)", len(text), MaxInputBytes)
	}
	return nil
}

// ValidateTolerance checks a clustering tolerance. Zero selects the default.
func ValidateTolerance(tol float64) error {
	if tol < 0 {
		return New(ErrCodeInvalidConfig, "tolerance cannot be negative: %v", tol)
	}
	if tol > MaxTolerance {
		return New(ErrCodeInvalidConfig, "tolerance too large: %v (max %v)", tol, MaxTolerance)
	}
	return nil
}

// ValidateTabWidth checks a tab expansion width. Zero disables expansion.
func ValidateTabWidth(w int) error {
	if w < 0 || w > MaxTabWidth {
		return New(ErrCodeInvalidConfig, "tab width must be between 0 and %d, got %d", MaxTabWidth, w)
	}
	return nil
}

// ValidateLabel checks a configured default label.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidConfig, "label cannot be blank")
	}
	if len(label) > 128 {
		return New(ErrCodeInvalidConfig, "label too long (max 128 characters)")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "label contains control characters")
		}
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
