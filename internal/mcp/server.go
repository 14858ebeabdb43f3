package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/pkg/models"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
}

// Searcher runs documentation searches.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// Library looks up documents and the sidebar structure.
type Library interface {
	Get(ctx context.Context, id string) (models.Document, error)
	Navigation(ctx context.Context) ([]models.NavSection, error)
}

// Server wraps the MCP server with documentation tools.
type Server struct {
	mcpServer *server.MCPServer
	searcher  Searcher
	library   Library
}

// NewServer creates a new MCP server with search tools.
func NewServer(config Config, searcher Searcher, library Library) *Server {
	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		searcher:  searcher,
		library:   library,
	}

	searchTool := mcp.NewTool("search_docs",
		mcp.WithDescription("Search the TeaLinuxOS documentation. Returns up to 10 results with title, URL and a highlighted snippet; title matches come first."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text, at least 2 characters"),
		),
	)
	mcpServer.AddTool(searchTool, s.searchHandler)

	getDocTool := mcp.NewTool("get_doc",
		mcp.WithDescription("Get a documentation page by ID, including its full markdown body"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID, e.g. getting-started or guides/install"),
		),
	)
	mcpServer.AddTool(getDocTool, s.getDocHandler)

	listTool := mcp.NewTool("list_docs",
		mcp.WithDescription("List documentation pages grouped by category, in sidebar order"),
	)
	mcpServer.AddTool(listTool, s.listHandler)

	return s
}

// searchHandler handles the search_docs tool call.
func (s *Server) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return jsonResult(results)
}

// getDocHandler handles the get_doc tool call.
func (s *Server) getDocHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	doc, err := s.library.Get(ctx, id)
	if errors.Is(err, content.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("document not found: %s", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get document failed: %v", err)), nil
	}

	return jsonResult(doc)
}

func (s *Server) listHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nav, err := s.library.Navigation(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list documents failed: %v", err)), nil
	}
	return jsonResult(nav)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
