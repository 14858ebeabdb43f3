// Package content loads markdown documentation into an immutable, id-ordered
// collection and keeps the current collection available to request handlers.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/tealinux/teasite/internal/markdown"
	"github.com/tealinux/teasite/internal/processor"
	"github.com/tealinux/teasite/pkg/models"
)

// Loader reads the full set of documentation pages from a source.
type Loader interface {
	Load(ctx context.Context) ([]models.Document, error)
}

// FSLoader loads markdown and HTML pages from a file system tree.
type FSLoader struct {
	fsys      fs.FS
	processor *processor.Processor
}

// NewFSLoader creates a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys, processor: processor.New()}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string) (*FSLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return NewFSLoader(os.DirFS(dir)), nil
}

// Load walks the tree and parses every page. Hidden files and directories
// are skipped. Any unreadable or malformed page fails the whole load.
func (l *FSLoader) Load(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isPage(p) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		doc, err := l.parsePage(p, string(data))
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded content tree", "documents", len(docs))
	return docs, nil
}

// parsePage converts HTML pages to markdown before parsing.
func (l *FSLoader) parsePage(p, data string) (models.Document, error) {
	if markdown.IsMarkdownPath(p) || markdown.IsMarkdownContent(data) {
		return Parse(p, data)
	}

	page, err := l.processor.Process(data)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to convert %s: %w", p, err)
	}

	doc, err := Parse(p, page.Markdown)
	if err != nil {
		return models.Document{}, err
	}
	if page.Title != "" {
		doc.Title = page.Title
	}
	if doc.Description == "" {
		doc.Description = page.Description
	}
	return doc, nil
}

func isPage(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".mdx", ".markdown", ".html", ".htm":
		return true
	default:
		return false
	}
}
