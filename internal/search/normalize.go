// Package search implements the documentation text search: a linear,
// case-insensitive substring scan over an in-memory document collection
// with snippet extraction and HTML highlighting.
package search

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest trimmed query that is searched at all.
const MinQueryLength = 2

// Normalize trims and lower-cases a raw query.
// It reports false when the query is too short to search.
func Normalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) < MinQueryLength {
		return "", false
	}
	return strings.ToLower(trimmed), true
}
