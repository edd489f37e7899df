package errors

import (
	"math"
	"unicode"
)

// maxPrefixLength bounds band name prefixes.
const maxPrefixLength = 64

// ValidateDirection checks that a slicing direction can be normalized:
// all components finite and at least one non-zero.
func ValidateDirection(d [3]float64) error {
	for _, c := range d {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return New(ErrCodeInvalidDirection, "direction components must be finite: %v", d)
		}
	}
	if d[0] == 0 && d[1] == 0 && d[2] == 0 {
		return New(ErrCodeInvalidDirection, "direction must not be the zero vector")
	}
	return nil
}

// ValidatePrefix validates a band name prefix.
//
// Rules:
//   - Maximum length of 64 characters
//   - No control characters
//   - No whitespace (names are used as DOT identifiers and OBJ group names)
//
// An empty prefix is allowed; band names are then plain indices.
func ValidatePrefix(prefix string) error {
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidInput, "prefix too long (max %d characters)", maxPrefixLength)
	}
	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "prefix contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "prefix must not contain whitespace")
		}
	}
	return nil
}
