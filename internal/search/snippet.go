package search

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// SnippetMaxLength bounds the fallback excerpt of a title-only match.
	SnippetMaxLength = 150
	// snippetLead is the context kept before the first occurrence.
	snippetLead = 60
	// snippetTrail is the context kept after the end of the first occurrence.
	snippetTrail = 90
	// Ellipsis marks a clipped snippet edge.
	Ellipsis = "..."
)

var (
	headingMarker = regexp.MustCompile(`#{1,6}\s`)
	boldMarker    = regexp.MustCompile(`\*\*`)
	italicMarker  = regexp.MustCompile(`\*`)
	linkSyntax    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	newlineRun    = regexp.MustCompile(`\n+`)
)

// Snippet extracts a short plain-text excerpt of body around the first
// occurrence of term. Offsets are counted in characters of the raw body,
// before markdown is stripped.
func Snippet(body, term string) string {
	runes := []rune(body)
	idx := indexFold(runes, []rune(term))

	if idx < 0 {
		end := min(len(runes), SnippetMaxLength)
		return strings.TrimSpace(string(runes[:end])) + Ellipsis
	}

	start := max(0, idx-snippetLead)
	end := min(len(runes), idx+len([]rune(term))+snippetTrail)

	snippet := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		snippet = Ellipsis + snippet
	}
	if end < len(runes) {
		snippet += Ellipsis
	}

	return StripMarkdown(snippet)
}

// StripMarkdown removes heading markers, emphasis, link and inline code
// syntax and folds newlines into spaces.
func StripMarkdown(s string) string {
	s = headingMarker.ReplaceAllString(s, "")
	s = boldMarker.ReplaceAllString(s, "")
	s = italicMarker.ReplaceAllString(s, "")
	s = linkSyntax.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = newlineRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// indexFold returns the character index of the first occurrence of the
// lower-case needle in haystack compared case-insensitively, or -1.
// unicode.ToLower maps rune to rune, so indexes stay aligned with haystack.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		found := true
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != r {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
