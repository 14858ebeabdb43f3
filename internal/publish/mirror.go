package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/events"
	"github.com/tealinux/teasite/pkg/models"
)

// Indexer writes documents into the search mirror.
type Indexer interface {
	CreateIndex(ctx context.Context) error
	IndexDocument(ctx context.Context, doc models.Document) error
	Refresh(ctx context.Context) error
	Prune(ctx context.Context, keep []string) (int, error)
}

// Mirror copies snapshots from object storage into the search mirror.
type Mirror struct {
	objects content.ObjectReader
	index   Indexer
}

// NewMirror creates a mirror reading snapshots from objects.
func NewMirror(objects content.ObjectReader, index Indexer) *Mirror {
	return &Mirror{objects: objects, index: index}
}

// MirrorSnapshot loads the snapshot under prefix and indexes every document.
func (m *Mirror) MirrorSnapshot(ctx context.Context, prefix string) (*events.MirrorComplete, error) {
	docs, err := content.NewS3Loader(m.objects, prefix).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", prefix, err)
	}

	result, err := m.Index(ctx, docs)
	if err != nil {
		return nil, err
	}
	result.Prefix = prefix
	return result, nil
}

// Index writes docs into the mirror. Per-document failures are collected.
// Documents no longer in docs are pruned, but only after a clean run over a
// non-empty set.
func (m *Mirror) Index(ctx context.Context, docs []models.Document) (*events.MirrorComplete, error) {
	start := time.Now()
	result := &events.MirrorComplete{}

	if err := m.index.CreateIndex(ctx); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, "context cancelled")
			break
		}
		slog.Debug("indexing document", "id", doc.ID)
		if err := m.index.IndexDocument(ctx, doc); err != nil {
			slog.Error("failed to index document", "id", doc.ID, "error", err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Indexed++
	}

	if len(result.Errors) == 0 && len(docs) > 0 {
		keep := make([]string, len(docs))
		for i, doc := range docs {
			keep[i] = doc.ID
		}
		pruned, err := m.index.Prune(ctx, keep)
		if err != nil {
			slog.Warn("failed to prune stale documents", "error", err)
		}
		result.Pruned = pruned
	}

	if err := m.index.Refresh(ctx); err != nil {
		slog.Warn("failed to refresh index", "error", err)
	}

	result.Duration = time.Since(start)
	slog.Info("mirror complete",
		"indexed", result.Indexed,
		"pruned", result.Pruned,
		"duration", result.Duration,
		"errors", len(result.Errors))

	return result, nil
}

// Consume mirrors each published snapshot until snapshots is closed. The
// returned channel is closed once the last snapshot has been handled.
func (m *Mirror) Consume(ctx context.Context, snapshots <-chan events.SnapshotPublished) <-chan events.MirrorComplete {
	out := make(chan events.MirrorComplete)

	go func() {
		defer close(out)
		for event := range snapshots {
			result, err := m.MirrorSnapshot(ctx, event.Prefix)
			if err != nil {
				result = &events.MirrorComplete{Prefix: event.Prefix, Errors: []string{err.Error()}}
			}
			select {
			case out <- *result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
