package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/internal/metrics"
	"github.com/tealinux/teasite/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation HTTP server",
	Long: `Start the documentation HTTP server.

Routes:
  GET  /api/search?q=...        search results as JSON
  GET  /api/search-index.json   prerendered search index
  GET  /api/docs/nav            sidebar navigation
  GET  /docs/<id>               rendered documentation page
  POST /api/reload              reload content (when server.allow_reload is set)
  GET  /health, /metrics

Examples:
  # Serve ./content on :8080
  teasite serve

  # Serve the latest snapshot from S3
  TEASITE_CONTENT_SOURCE=s3 teasite serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg := GetConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	store, _, err := newContent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open content: %w", err)
	}

	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		SiteName:     cfg.Server.SiteName,
		DocsPrefix:   cfg.Server.DocsPrefix,
		CORSOrigins:  cfg.Server.CORSOrigins,
		AllowReload:  cfg.Server.AllowReload,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, store, metrics.New())

	// A failed preload is not fatal: the first request retries the load.
	if err := srv.Preload(ctx); err != nil {
		slog.Warn("initial content load failed", "error", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on %s\n", cfg.Server.SiteName, cfg.Server.Addr)
	return srv.Run(ctx)
}
