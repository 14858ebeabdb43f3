package search

import (
	"strings"
)

// Highlight markup wrapped around every occurrence of the term.
const (
	HighlightOpen  = `<span class="search-highlight">`
	HighlightClose = `</span>`
)

// Highlight wraps every case-insensitive, non-overlapping occurrence of term
// in text with highlight markup. The term is matched literally, folding case
// the same way MatchDocuments does.
func Highlight(text, term string) string {
	if text == "" || term == "" {
		return text
	}
	runes := []rune(text)
	needle := []rune(strings.ToLower(term))

	var b strings.Builder
	for i := 0; i < len(runes); {
		idx := indexFold(runes[i:], needle)
		if idx < 0 {
			b.WriteString(string(runes[i:]))
			break
		}
		b.WriteString(string(runes[i : i+idx]))
		b.WriteString(HighlightOpen)
		b.WriteString(string(runes[i+idx : i+idx+len(needle)]))
		b.WriteString(HighlightClose)
		i += idx + len(needle)
	}
	return b.String()
}
