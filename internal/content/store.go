package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tealinux/teasite/pkg/models"
)

// Store holds the current document collection. The collection is loaded on
// first use and replaced as a whole by Reload.
type Store struct {
	loader Loader

	mu       sync.RWMutex
	current  *Collection
	loadedAt time.Time

	reloadMu sync.Mutex
}

// NewStore creates a store backed by loader.
func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Reload reads the source again and swaps in the new collection.
// On failure the previous collection stays in place.
func (s *Store) Reload(ctx context.Context) (*Collection, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	docs, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	coll, err := NewCollection(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to build collection: %w", err)
	}

	s.mu.Lock()
	s.current = coll
	s.loadedAt = time.Now()
	s.mu.Unlock()

	slog.Info("content loaded", "documents", coll.Len(), "duration", time.Since(start))
	return coll, nil
}

// Collection returns the current collection, loading it if needed.
func (s *Store) Collection(ctx context.Context) (*Collection, error) {
	s.mu.RLock()
	coll := s.current
	s.mu.RUnlock()
	if coll != nil {
		return coll, nil
	}

	s.reloadMu.Lock()
	s.mu.RLock()
	coll = s.current
	s.mu.RUnlock()
	s.reloadMu.Unlock()
	if coll != nil {
		return coll, nil
	}

	return s.Reload(ctx)
}

// Documents returns the current documents in ID order.
func (s *Store) Documents(ctx context.Context) ([]models.Document, error) {
	coll, err := s.Collection(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Documents(), nil
}

// Get returns a single document by ID.
func (s *Store) Get(ctx context.Context, id string) (models.Document, error) {
	coll, err := s.Collection(ctx)
	if err != nil {
		return models.Document{}, err
	}
	return coll.Get(id)
}

// Navigation returns the sidebar sections of the current collection.
func (s *Store) Navigation(ctx context.Context) ([]models.NavSection, error) {
	coll, err := s.Collection(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Navigation(), nil
}

// LoadedAt reports when the current collection was loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
