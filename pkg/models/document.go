package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document is one parsed markdown documentation page.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
	Path        string `json:"path,omitempty"` // source path relative to the content root
}

// SearchResult is a single documentation search hit.
// Title and Snippet may contain highlight markup.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// IndexEntry is the shape of the prerendered search index.
type IndexEntry struct {
	Title    string `json:"title"`
	ID       string `json:"id"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// NavSection groups documents of one category for the docs sidebar.
type NavSection struct {
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	Items []NavItem `json:"items"`
}

// NavItem is a single sidebar link.
type NavItem struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}

// GenerateDocumentID creates a deterministic ID from a source location.
// The ID is a SHA-256 hash (first 16 chars) of the input.
func GenerateDocumentID(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:])[:16]
}
