// Package utils provides shared utilities for text and logging.
package utils

import (
	"strings"
	"unicode"
)

// Truncate returns s truncated to maxLen characters. If maxLen is 0 or
// negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// TitleCase upper-cases the first letter of each space- or slash-separated
// word, leaving the rest of the word untouched ("rest api" -> "Rest Api",
// "ci/cd" -> "Ci/Cd"). Used to normalize skill names for display.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevBoundary := true
	for _, r := range s {
		if prevBoundary {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevBoundary = r == ' ' || r == '/' || r == '-'
	}
	return b.String()
}
