// Package publish writes documentation snapshots to object storage and
// mirrors them into the search index.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/events"
	"github.com/tealinux/teasite/internal/storage"
	"github.com/tealinux/teasite/pkg/models"
)

// SnapshotRoot is the key prefix all snapshots live under.
const SnapshotRoot = "snapshots"

// ObjectWriter stores snapshot objects.
type ObjectWriter interface {
	EnsureBucket(ctx context.Context) error
	PutMarkdown(ctx context.Context, prefix, name, content string) error
	PutMetadata(ctx context.Context, prefix string, meta storage.Metadata) error
	SetLatest(ctx context.Context, prefix string) error
	Bucket() string
}

// Result holds the outcome of a publish run.
type Result struct {
	Prefix   string
	Uploaded int
	Duration time.Duration
	Errors   []string
}

// Publisher uploads document collections as snapshots.
type Publisher struct {
	objects ObjectWriter
	now     func() time.Time
}

// NewPublisher creates a publisher writing to objects.
func NewPublisher(objects ObjectWriter) *Publisher {
	return &Publisher{objects: objects, now: time.Now}
}

// Publish writes every document as markdown with front matter under a new
// timestamped prefix, then writes metadata.json and moves LATEST to it.
// Per-document failures are collected in the result; LATEST only moves when
// every document was uploaded.
func (p *Publisher) Publish(ctx context.Context, source string, docs []models.Document) (*Result, error) {
	start := p.now()
	result := &Result{Prefix: SnapshotPrefix(start)}

	if err := p.objects.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	slog.Info("publishing snapshot", "prefix", result.Prefix, "documents", len(docs))

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		text, err := content.Format(doc)
		if err == nil {
			err = p.objects.PutMarkdown(ctx, result.Prefix, ObjectName(doc), text)
		}
		if err != nil {
			slog.Error("failed to upload document", "id", doc.ID, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", doc.ID, err))
			continue
		}
		ids = append(ids, doc.ID)
		result.Uploaded++
	}

	meta := storage.Metadata{
		Timestamp:     start.UTC().Format(time.RFC3339),
		Source:        source,
		DocumentCount: len(ids),
		Documents:     ids,
	}
	if err := p.objects.PutMetadata(ctx, result.Prefix, meta); err != nil {
		return nil, err
	}

	if len(result.Errors) == 0 {
		if err := p.objects.SetLatest(ctx, result.Prefix); err != nil {
			return nil, err
		}
	}

	result.Duration = p.now().Sub(start)
	slog.Info("snapshot published",
		"prefix", result.Prefix,
		"uploaded", result.Uploaded,
		"errors", len(result.Errors))

	return result, nil
}

// Event describes a finished publish for the mirror worker.
func (p *Publisher) Event(r *Result) events.SnapshotPublished {
	return events.SnapshotPublished{
		Bucket:    p.objects.Bucket(),
		Prefix:    r.Prefix,
		Documents: r.Uploaded,
		Timestamp: p.now(),
	}
}

// SnapshotPrefix returns the prefix of a snapshot taken at t.
func SnapshotPrefix(t time.Time) string {
	return path.Join(SnapshotRoot, t.UTC().Format("2006-01-02T15-04-05"))
}

// ObjectName is the object key of a document relative to the snapshot's
// pages directory. Loading it back yields the same document ID.
func ObjectName(doc models.Document) string {
	return doc.ID + ".md"
}
