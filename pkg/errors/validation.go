package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxIDLength bounds the length of an item ID.
const MaxIDLength = 256

// ValidateItemID checks that an item ID is usable as a stable handle.
// IDs must be non-empty, at most [MaxIDLength] bytes, and free of control
// characters and surrounding whitespace.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "item ID cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "item ID too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "item ID %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidID, "item ID %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateSize checks that a width or height is finite and not negative.
func ValidateSize(id string, width, height float64) error {
	for _, v := range []float64{width, height} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidDocument, "item %q has invalid size %vx%v", id, width, height)
		}
	}
	return nil
}

// ValidateDocumentPath checks that a document path has a supported extension.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return nil
	default:
		return New(ErrCodeUnsupported, "unsupported document type %q (want .json or .toml)", filepath.Ext(path))
	}
}
