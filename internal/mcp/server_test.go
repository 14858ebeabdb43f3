package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/search"
	"github.com/tealinux/teasite/pkg/models"
)

type stubLoader struct {
	docs []models.Document
	err  error
}

func (l *stubLoader) Load(context.Context) ([]models.Document, error) {
	return l.docs, l.err
}

func newTestServer(t *testing.T, loader *stubLoader) *Server {
	t.Helper()
	store := content.NewStore(loader)
	return NewServer(Config{Name: "teasite-docs", Version: "1.0.0"}, search.New(store, search.Config{}), store)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("result has %d content items, want 1", len(result.Content))
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return tc.Text
}

var testDocs = []models.Document{
	{ID: "getting-started", Title: "Getting Started", Body: "Welcome to TeaLinuxOS.", Category: "General", Order: 1},
	{ID: "guides/install", Title: "Install", Body: "Boot the ISO and follow the installer.", Category: "Guides", Order: 1},
}

func TestServer_Creation(t *testing.T) {
	s := newTestServer(t, &stubLoader{docs: testDocs})
	if s.mcpServer == nil {
		t.Error("mcpServer should not be nil")
	}
}

func TestServer_SearchTool(t *testing.T) {
	s := newTestServer(t, &stubLoader{docs: testDocs})

	result := call(t, s.searchHandler, map[string]any{"query": "install"})
	if result.IsError {
		t.Fatalf("search_docs returned error: %s", text(t, result))
	}

	var results []models.SearchResult
	if err := json.Unmarshal([]byte(text(t, result)), &results); err != nil {
		t.Fatalf("failed to decode results: %v", err)
	}
	if len(results) != 1 || results[0].URL != "/docs/guides/install" {
		t.Errorf("search_docs results = %+v", results)
	}
}

func TestServer_SearchTool_ShortQuery(t *testing.T) {
	s := newTestServer(t, &stubLoader{docs: testDocs})

	result := call(t, s.searchHandler, map[string]any{"query": "a"})
	if result.IsError {
		t.Fatalf("search_docs returned error: %s", text(t, result))
	}
	if got := text(t, result); got != "[]" {
		t.Errorf("search_docs = %s, want []", got)
	}
}

func TestServer_SearchTool_Errors(t *testing.T) {
	s := newTestServer(t, &stubLoader{err: errors.New("bucket unreachable")})

	if result := call(t, s.searchHandler, map[string]any{}); !result.IsError {
		t.Error("search_docs without query should be an error result")
	}
	result := call(t, s.searchHandler, map[string]any{"query": "install"})
	if !result.IsError || !strings.Contains(text(t, result), "bucket unreachable") {
		t.Errorf("search_docs with failing source = %+v", result)
	}
}

func TestServer_GetDocTool(t *testing.T) {
	s := newTestServer(t, &stubLoader{docs: testDocs})

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
		wantID  string
	}{
		{"found", map[string]any{"id": "guides/install"}, "", "guides/install"},
		{"not found", map[string]any{"id": "missing"}, "document not found: missing", ""},
		{"missing id", map[string]any{}, "id parameter is required", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, s.getDocHandler, tt.args)
			if tt.wantErr != "" {
				if !result.IsError || text(t, result) != tt.wantErr {
					t.Errorf("get_doc = %q, want error %q", text(t, result), tt.wantErr)
				}
				return
			}

			var doc models.Document
			if err := json.Unmarshal([]byte(text(t, result)), &doc); err != nil {
				t.Fatalf("failed to decode document: %v", err)
			}
			if doc.ID != tt.wantID || doc.Body == "" {
				t.Errorf("get_doc = %+v", doc)
			}
		})
	}
}

func TestServer_ListTool(t *testing.T) {
	s := newTestServer(t, &stubLoader{docs: testDocs})

	result := call(t, s.listHandler, nil)
	var nav []models.NavSection
	if err := json.Unmarshal([]byte(text(t, result)), &nav); err != nil {
		t.Fatalf("failed to decode navigation: %v", err)
	}
	if len(nav) != 2 {
		t.Fatalf("list_docs returned %d sections, want 2", len(nav))
	}
}
