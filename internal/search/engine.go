package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tealinux/teasite/pkg/models"
)

// DefaultURLPrefix is prepended to a document ID to build its result URL.
const DefaultURLPrefix = "/docs/"

// Source provides the read-only document collection searched per request.
type Source interface {
	Documents(ctx context.Context) ([]models.Document, error)
}

// Config holds search engine configuration.
type Config struct {
	URLPrefix string // defaults to DefaultURLPrefix
	Limit     int    // defaults to MaxResults
}

// Engine runs searches against a document source.
type Engine struct {
	source    Source
	urlPrefix string
	limit     int
}

// New creates a search engine over source.
func New(source Source, config Config) *Engine {
	if config.URLPrefix == "" {
		config.URLPrefix = DefaultURLPrefix
	}
	if config.Limit <= 0 {
		config.Limit = MaxResults
	}
	return &Engine{
		source:    source,
		urlPrefix: config.URLPrefix,
		limit:     config.Limit,
	}
}

// Search runs query against the current document collection.
// A query shorter than MinQueryLength yields an empty result without
// reading the source. A source failure is returned with no results.
func (e *Engine) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	term, ok := Normalize(query)
	if !ok {
		return []models.SearchResult{}, nil
	}

	docs, err := e.source.Documents(ctx)
	if err != nil {
		return []models.SearchResult{}, fmt.Errorf("failed to load documents: %w", err)
	}

	results := Documents(docs, term, e.urlPrefix, e.limit)
	slog.Debug("search complete", "term", term, "documents", len(docs), "results", len(results))
	return results, nil
}

// Documents searches docs for an already normalized term. Title matches come
// first and at most limit results are returned.
func Documents(docs []models.Document, term, urlPrefix string, limit int) []models.SearchResult {
	// Output is identical to extracting every match before ranking.
	matches := Cap(Rank(MatchDocuments(term, docs)), limit)

	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SearchResult{
			Title:   Highlight(m.Doc.Title, term),
			URL:     urlPrefix + m.Doc.ID,
			Snippet: Highlight(Snippet(m.Doc.Body, term), term),
		})
	}
	return results
}
