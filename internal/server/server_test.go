package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/metrics"
	"github.com/tealinux/teasite/pkg/models"
)

var site = fstest.MapFS{
	"2.Installation/1.Requirements.md": {Data: []byte("---\ntitle: Requirements\ncategory: Installation\n---\nYou need 4 GB RAM before you install.")},
	"2.Installation/3.Boot.md":         {Data: []byte("---\ntitle: Boot TeaLinuxOS\ncategory: Installation\n---\n## Boot menu\n\nPress **F12** to pick the installer.")},
	"1.Welcome/2.Whats New.md":         {Data: []byte("---\ntitle: What's New\ncategory: Welcome\n---\nNew installation wizard.")},
}

// flakyLoader serves site until failing is set.
type flakyLoader struct {
	failing atomic.Bool
}

func (l *flakyLoader) Load(ctx context.Context) ([]models.Document, error) {
	if l.failing.Load() {
		return nil, errors.New("content volume unavailable")
	}
	return content.NewFSLoader(site).Load(ctx)
}

func newTestServer(t *testing.T, config Config) (*Server, *flakyLoader) {
	t.Helper()
	loader := &flakyLoader{}
	return New(config, content.NewStore(loader), metrics.New()), loader
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeResults(t *testing.T, rec *httptest.ResponseRecorder) []models.SearchResult {
	t.Helper()
	var results []models.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("response is not a JSON array: %v\n%s", err, rec.Body.String())
	}
	return results
}

func TestSearch(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	rec := do(t, s, http.MethodGet, "/api/search?q=install")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	results := decodeResults(t, rec)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, r := range results {
		if !strings.HasPrefix(r.URL, "/docs/") {
			t.Errorf("URL = %q", r.URL)
		}
		if !strings.Contains(r.Snippet, `<span class="search-highlight">`) {
			t.Errorf("snippet not highlighted: %q", r.Snippet)
		}
	}
}

func TestSearch_TitleMatchesFirst(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	results := decodeResults(t, do(t, s, http.MethodGet, "/api/search?q=boot"))
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Title != `<span class="search-highlight">Boot</span> TeaLinuxOS` {
		t.Errorf("Title = %q", results[0].Title)
	}
	if results[0].URL != "/docs/installation/boot" {
		t.Errorf("URL = %q", results[0].URL)
	}
}

func TestSearch_ShortQuery(t *testing.T) {
	s, loader := newTestServer(t, Config{})
	loader.failing.Store(true)

	for _, target := range []string{"/api/search", "/api/search?q=", "/api/search?q=%20a%20"} {
		rec := do(t, s, http.MethodGet, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("%s: body = %s, want []", target, got)
		}
	}
}

func TestSearch_NoMatch(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	rec := do(t, s, http.MethodGet, "/api/search?q=kubernetes")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("got %d %s, want 200 []", rec.Code, rec.Body.String())
	}
}

func TestSearch_ContentFailure(t *testing.T) {
	s, loader := newTestServer(t, Config{})
	loader.failing.Store(true)

	rec := do(t, s, http.MethodGet, "/api/search?q=install")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestSearchIndex(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	rec := do(t, s, http.MethodGet, "/api/search-index.json")
	var entries []models.IndexEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 3 || entries[0].ID != "installation/boot" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestNavigation(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	var nav []models.NavSection
	if err := json.Unmarshal(do(t, s, http.MethodGet, "/api/docs/nav").Body.Bytes(), &nav); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nav) != 2 || nav[0].Slug != "installation" || nav[1].Slug != "welcome" {
		t.Errorf("nav = %+v", nav)
	}
}

func TestDocumentPage(t *testing.T) {
	s, _ := newTestServer(t, Config{SiteName: "TeaLinuxOS Docs"})

	rec := do(t, s, http.MethodGet, "/docs/installation/boot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<title>Boot TeaLinuxOS | TeaLinuxOS Docs</title>", `<h2 id="boot-menu">`, "<strong>F12</strong>"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	rec = do(t, s, http.MethodGet, "/docs/installation/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("missing doc body = %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	rec := do(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"documents":3`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}

	fresh, failing := newTestServer(t, Config{})
	failing.failing.Store(true)
	if rec := do(t, fresh, http.MethodGet, "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("health without content = %d, want 503", rec.Code)
	}
}

func TestReload(t *testing.T) {
	disabled, _ := newTestServer(t, Config{})
	if rec := do(t, disabled, http.MethodPost, "/api/reload"); rec.Code == http.StatusOK {
		t.Error("reload should not be routed when disabled")
	}

	s, loader := newTestServer(t, Config{AllowReload: true})
	rec := do(t, s, http.MethodPost, "/api/reload")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"documents":3`) {
		t.Fatalf("reload = %d %s", rec.Code, rec.Body.String())
	}

	loader.failing.Store(true)
	if rec := do(t, s, http.MethodPost, "/api/reload"); rec.Code != http.StatusInternalServerError {
		t.Errorf("failed reload = %d, want 500", rec.Code)
	}

	// previous collection keeps serving
	if results := decodeResults(t, do(t, s, http.MethodGet, "/api/search?q=boot")); len(results) != 1 {
		t.Errorf("search after failed reload returned %d results", len(results))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	if err := s.Preload(context.Background()); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}
	do(t, s, http.MethodGet, "/api/search?q=install")
	do(t, s, http.MethodGet, "/api/search?q=i")

	body := do(t, s, http.MethodGet, "/metrics").Body.String()
	for _, want := range []string{
		`teasite_search_requests_total{outcome="ok"} 1`,
		`teasite_search_requests_total{outcome="empty_query"} 1`,
		"teasite_content_documents 3",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, Config{CORSOrigins: []string{"https://tealinux.org"}})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=boot", nil)
	req.Header.Set("Origin", "https://tealinux.org")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://tealinux.org" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func ExampleServer_Handler() {
	s := New(Config{}, content.NewStore(content.NewFSLoader(site)), nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=wizard", nil))
	fmt.Print(rec.Body.String())
	// Output:
	// [{"title":"What's New","url":"/docs/welcome/whats-new","snippet":"New installation \u003cspan class=\"search-highlight\"\u003ewizard\u003c/span\u003e."}]
}
