// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeWhitespace replaces runs of whitespace with a single space and trims the ends.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateRunes cuts str to at most maxRunes runes.
func TruncateRunes(str string, maxRunes int) string {
	if maxRunes < 0 {
		maxRunes = 0
	}

	if utf8.RuneCountInString(str) <= maxRunes {
		return str
	}

	return string([]rune(str)[:maxRunes])
}

// TruncateString truncates str to maxLength runes and marks the cut with "...".
func TruncateString(str string, maxLength int) string {
	if utf8.RuneCountInString(str) <= maxLength {
		return str
	}

	return TruncateRunes(str, maxLength) + "..."
}
