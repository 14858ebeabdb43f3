package search

import (
	"strings"

	"github.com/tealinux/teasite/pkg/models"
)

// Match is a document that contains the search term.
type Match struct {
	Doc          models.Document
	TitleMatched bool
}

// MatchDocuments returns every document whose title or body contains term,
// in collection order. term must already be normalized.
func MatchDocuments(term string, docs []models.Document) []Match {
	var matches []Match
	for _, doc := range docs {
		titleMatched := strings.Contains(strings.ToLower(doc.Title), term)
		if titleMatched || strings.Contains(strings.ToLower(doc.Body), term) {
			matches = append(matches, Match{Doc: doc, TitleMatched: titleMatched})
		}
	}
	return matches
}
