package errors

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// MaxLabelWidth is the widest label, in terminal cells, accepted as a value.
const MaxLabelWidth = 64

// ValidateLabel validates a single input value before it becomes a node label.
//
// Labels are drawn verbatim into a text grid, so the rules are:
//   - No empty labels
//   - No control characters (newlines and tabs would break the grid)
//   - At most MaxLabelWidth display cells
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidValue, "value cannot be empty")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidValue, "value %q contains control characters", label)
		}
	}

	if w := runewidth.StringWidth(label); w > MaxLabelWidth {
		return New(ErrCodeInvalidValue, "value too wide (%d cells, max %d)", w, MaxLabelWidth)
	}

	return nil
}

// ValidateLabels validates every value and reports the first failure
// together with its position.
func ValidateLabels(labels []string) error {
	for i, l := range labels {
		if err := ValidateLabel(l); err != nil {
			return Wrap(ErrCodeInvalidValue, err, "value #%d", i+1)
		}
	}
	return nil
}

// ValidatePath validates an input or output file path given on the command
// line or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsFunc(path, unicode.IsControl) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	return nil
}
