package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the MCP server for documentation retrieval.

The server communicates via stdio and provides three tools:
  - search_docs: Search the documentation by query
  - get_doc: Get a documentation page by ID
  - list_docs: List pages grouped by category

Example:
  teasite mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg := GetConfig()
	store, engine, err := newContent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open content: %w", err)
	}

	server := mcp.NewServer(mcp.Config{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}, engine, store)

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")

	return server.ServeStdio()
}
