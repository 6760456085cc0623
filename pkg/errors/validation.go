package errors

import (
	"math"
	"strings"
	"unicode"
)

// MinPointCount is the smallest site count that yields a planar subdivision
// with at least one interior vertex.
const MinPointCount = 3

// ValidateDimensions checks that a map rectangle has a usable, finite area.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "map dimensions must be finite, got %vx%v", width, height)
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "map dimensions must be positive, got %vx%v", width, height)
	}
	return nil
}

// ValidatePointCount checks that enough sites were requested to build a graph.
func ValidatePointCount(n int) error {
	if n < MinPointCount {
		return New(ErrCodeInvalidInput, "point count must be at least %d, got %d", MinPointCount, n)
	}
	return nil
}

// ValidateIterations checks the relaxation pass count. One iteration means
// a single diagram with no re-centering.
func ValidateIterations(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "iterations must be at least 1, got %d", n)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
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
