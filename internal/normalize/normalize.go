// Package normalize cleans visitor-supplied text before it is stored.
package normalize

import (
	"strings"
	"unicode"
)

// Email returns a normalized form of an email address suitable for
// storage and comparisons. Normalization trims surrounding whitespace
// and lower-cases the address.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Name trims a display name and collapses inner runs of whitespace.
func Name(n string) string {
	return strings.Join(strings.Fields(n), " ")
}

// Text trims free text and drops control characters other than
// newlines and tabs. Line structure is preserved.
func Text(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
