// Package markdown tells markdown sources apart from HTML pages, both for
// files in a content tree and for pages fetched by the importer.
package markdown

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	listPattern      = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+\S`)
	linkPattern      = regexp.MustCompile(`\[[^\]\n]+\]\([^)\n]+\)`)
	fencePattern     = regexp.MustCompile("(?m)^(```|~~~)")
	frontMatterStart = regexp.MustCompile(`^(---|\+\+\+)\s*\n`)
	htmlStartPattern = regexp.MustCompile(`(?i)^<(!doctype|html|head|body)\b`)
)

var markdownExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
}

// IsMarkdownContentType checks if the Content-Type header indicates markdown.
func IsMarkdownContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(ct, "text/markdown") ||
		strings.HasPrefix(ct, "text/x-markdown")
}

// IsMarkdownPath reports whether a file name carries a markdown extension.
func IsMarkdownPath(p string) bool {
	return markdownExtensions[strings.ToLower(path.Ext(p))]
}

// IsMarkdownURL checks if the URL path ends in a markdown extension.
// Query strings and fragments are ignored.
func IsMarkdownURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return IsMarkdownPath(rawURL)
	}
	return IsMarkdownPath(u.Path)
}

// IsMarkdownContent uses heuristics to detect if content is markdown.
func IsMarkdownContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || htmlStartPattern.MatchString(trimmed) {
		return false
	}

	return frontMatterStart.MatchString(trimmed+"\n") ||
		headingPattern.MatchString(trimmed) ||
		fencePattern.MatchString(trimmed) ||
		listPattern.MatchString(trimmed) ||
		linkPattern.MatchString(trimmed)
}

// MarkdownURLVariants returns candidate URLs serving the markdown source of
// a docs page. GitHub blob URLs map to their raw form; URLs already pointing
// at markdown yield none.
func MarkdownURLVariants(rawURL string) []string {
	if strings.Contains(rawURL, "github.com") && strings.Contains(rawURL, "/blob/") {
		raw := strings.Replace(rawURL, "github.com", "raw.githubusercontent.com", 1)
		return []string{strings.Replace(raw, "/blob/", "/", 1)}
	}

	if IsMarkdownURL(rawURL) {
		return []string{}
	}

	clean := strings.TrimSuffix(rawURL, "/")
	return []string{clean + ".md", clean + "/index.md"}
}

// Detect combines all detection methods. Checks in order: Content-Type,
// URL, then content heuristics.
func Detect(rawURL, contentType, content string) bool {
	if IsMarkdownContentType(contentType) {
		return true
	}
	if IsMarkdownURL(rawURL) {
		return true
	}
	return IsMarkdownContent(content)
}
