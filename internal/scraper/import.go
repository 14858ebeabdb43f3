package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/markdown"
	"github.com/tealinux/teasite/internal/processor"
	"github.com/tealinux/teasite/pkg/models"
)

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Written int
	Skipped int
	Files   []string // written files relative to the content dir
	Errors  []string
}

// Importer converts fetched pages into content documents.
type Importer struct {
	processor *processor.Processor
}

// NewImporter creates an importer.
func NewImporter() *Importer {
	return &Importer{processor: processor.New()}
}

// Document converts one page. The document ID follows the page path below
// base; category applies to pages whose front matter names none.
func (im *Importer) Document(page Page, base *url.URL, category string) (models.Document, error) {
	body := page.Content
	var htmlTitle, description string

	if !markdown.Detect(page.URL, page.ContentType, page.Content) {
		converted, err := im.processor.Process(page.Content)
		if err != nil {
			return models.Document{}, fmt.Errorf("failed to convert %s: %w", page.URL, err)
		}
		body = converted.Markdown
		htmlTitle = converted.Title
		description = converted.Description
	}

	rel, err := relativePath(base, page.URL)
	if err != nil {
		return models.Document{}, err
	}

	doc, err := content.Parse(rel, body)
	if err != nil {
		return models.Document{}, err
	}

	if htmlTitle != "" && content.MarkdownTitle(doc.Body) == "" {
		doc.Title = trimSiteSuffix(htmlTitle)
	}
	if doc.Description == "" {
		doc.Description = description
	}
	if doc.Category == content.DefaultCategory && category != "" {
		doc.Category = category
	}
	return doc, nil
}

// Import writes pages as <id>.md files with front matter below dir. Pages
// keep their crawl position as order unless they carry one. Pages mapping
// to an ID already written are skipped.
func (im *Importer) Import(ctx context.Context, pages []Page, base *url.URL, dir, category string) (*ImportResult, error) {
	result := &ImportResult{}
	seen := make(map[string]bool, len(pages))

	for i, page := range pages {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		doc, err := im.Document(page, base, category)
		if err != nil {
			slog.Warn("skipping page", "url", page.URL, "error", err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if seen[doc.ID] {
			result.Skipped++
			continue
		}
		seen[doc.ID] = true

		if doc.Order == content.DefaultOrder {
			doc.Order = i + 1
		}

		name := doc.ID + ".md"
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return result, fmt.Errorf("failed to create directory: %w", err)
		}
		text, err := content.Format(doc)
		if err != nil {
			return result, err
		}
		if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", name, err)
		}

		slog.Debug("imported page", "url", page.URL, "file", name)
		result.Files = append(result.Files, name)
		result.Written++
	}

	slog.Info("import complete", "written", result.Written, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}

// relativePath maps a page URL to a content path below base.
//
//	base https://docs.tealinux.org/docs, page .../docs/installation/boot.html -> installation/boot.md
func relativePath(base *url.URL, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	p := u.Path
	if basePath := strings.TrimSuffix(base.Path, "/"); basePath != "" && strings.HasPrefix(p, basePath) {
		p = p[len(basePath):]
	}
	p = strings.Trim(p, "/")
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm", ".md", ".mdx", ".markdown":
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	p = strings.TrimSuffix(p, "/index")
	if p == "" {
		p = "index"
	}
	return p + ".md", nil
}

// trimSiteSuffix drops a " | Site Name" tail from an HTML title.
func trimSiteSuffix(title string) string {
	if i := strings.LastIndex(title, " | "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	return title
}
