package content

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tealinux/teasite/pkg/models"
)

type countingLoader struct {
	mu    sync.Mutex
	docs  []models.Document
	err   error
	calls int
}

func (l *countingLoader) Load(context.Context) ([]models.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.docs, l.err
}

func TestCollection_OrderedAndUnique(t *testing.T) {
	coll, err := NewCollection([]models.Document{{ID: "b"}, {ID: "a"}, {ID: "c"}})
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}

	docs := coll.Documents()
	if docs[0].ID != "a" || docs[1].ID != "b" || docs[2].ID != "c" {
		t.Errorf("documents not id-ordered: %v", docs)
	}

	if _, err := NewCollection([]models.Document{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Error("duplicate IDs should be rejected")
	}
}

func TestCollection_DocumentsIsACopy(t *testing.T) {
	coll, _ := NewCollection([]models.Document{{ID: "a", Title: "A"}})
	docs := coll.Documents()
	docs[0].Title = "changed"

	got, _ := coll.Get("a")
	if got.Title != "A" {
		t.Error("mutating returned documents changed the collection")
	}
}

func TestCollection_GetNotFound(t *testing.T) {
	coll, _ := NewCollection(nil)
	if _, err := coll.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestCollection_Navigation(t *testing.T) {
	coll, _ := NewCollection([]models.Document{
		{ID: "dual-boot", Title: "Dual Boot", Category: "Installation Process", Order: 84},
		{ID: "installation/requirements", Title: "Requirements", Category: "Installation", Order: 1},
		{ID: "about-page", Title: "About Page", Category: "Installation Process", Order: 80},
		{ID: "installation/boot", Title: "Boot TeaLinuxOS", Category: "Installation", Order: 3},
		{ID: "welcome/whats-new", Title: "What's New", Category: "Welcome", Order: 0},
	})

	nav := coll.Navigation()

	if len(nav) != 3 {
		t.Fatalf("got %d sections, want 3", len(nav))
	}
	wantSections := []string{"welcome", "installation", "installation-process"}
	for i, slug := range wantSections {
		if nav[i].Slug != slug {
			t.Errorf("section %d = %q, want %q", i, nav[i].Slug, slug)
		}
	}
	if nav[2].Items[0].Slug != "about-page" || nav[2].Items[1].Slug != "dual-boot" {
		t.Errorf("items not ordered: %+v", nav[2].Items)
	}
}

func TestStore_LazyLoadAndReload(t *testing.T) {
	loader := &countingLoader{docs: []models.Document{{ID: "a"}}}
	store := NewStore(loader)
	ctx := context.Background()

	for range 3 {
		if _, err := store.Documents(ctx); err != nil {
			t.Fatalf("Documents() error = %v", err)
		}
	}
	if loader.calls != 1 {
		t.Errorf("loader called %d times, want 1", loader.calls)
	}

	loader.docs = []models.Document{{ID: "a"}, {ID: "b"}}
	if _, err := store.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	docs, _ := store.Documents(ctx)
	if len(docs) != 2 {
		t.Errorf("after reload got %d documents, want 2", len(docs))
	}
	if store.LoadedAt().IsZero() {
		t.Error("LoadedAt() should be set")
	}
}

func TestStore_FailedReloadKeepsPrevious(t *testing.T) {
	loader := &countingLoader{docs: []models.Document{{ID: "a"}}}
	store := NewStore(loader)
	ctx := context.Background()

	if _, err := store.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	loader.err = errors.New("disk gone")
	if _, err := store.Reload(ctx); err == nil {
		t.Fatal("Reload() should fail")
	}

	doc, err := store.Get(ctx, "a")
	if err != nil || doc.ID != "a" {
		t.Errorf("previous collection lost: %v, %v", doc, err)
	}
}

func TestStore_InitialLoadFailure(t *testing.T) {
	store := NewStore(&countingLoader{err: errors.New("malformed")})
	if _, err := store.Documents(context.Background()); err == nil {
		t.Error("Documents() should surface the load error")
	}
}
