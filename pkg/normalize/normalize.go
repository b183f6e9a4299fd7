// Package normalize provides text canonicalization for form-field comparison
package normalize

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for comparison: lowercase, strip everything
// outside [a-z0-9] and whitespace, collapse whitespace runs to a single
// space, and trim. Total and idempotent; empty input yields "".
//
// Matching is ASCII-oriented: accented or non-Latin characters do not survive
// normalization, so they simply never contribute to a similarity score.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)

	var result strings.Builder
	result.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			result.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && result.Len() > 0 {
				result.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	return strings.TrimRight(result.String(), " ")
}
