package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/internal/publish"
	"github.com/tealinux/teasite/internal/storage"
)

var mirrorPrefix string

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Index a published snapshot into Elasticsearch",
	Long: `Index a snapshot that was previously published to S3 into
Elasticsearch. Use this to re-run indexing or to mirror a snapshot
published with --s3 only.

Examples:
  # Mirror the snapshot LATEST points to
  teasite mirror

  # Mirror a specific snapshot
  teasite mirror --prefix snapshots/2026-10-01T09-30-00`,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)

	mirrorCmd.Flags().StringVar(&mirrorPrefix, "prefix", storage.LatestAlias, "Snapshot prefix to mirror")
}

func runMirror(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg := GetConfig()
	slog.Debug("mirror command starting", "prefix", mirrorPrefix)

	objects, err := newStorage(cfg)
	if err != nil {
		return err
	}
	index, err := newElasticsearch(cfg)
	if err != nil {
		return err
	}

	prefix, err := objects.ResolvePrefix(ctx, mirrorPrefix)
	if err != nil {
		return err
	}

	meta, err := objects.GetMetadata(ctx, prefix)
	if err != nil {
		slog.Warn("snapshot has no readable metadata", "prefix", prefix, "error", err)
	} else {
		fmt.Printf("Snapshot %s: %d documents from %s at %s\n", prefix, meta.DocumentCount, meta.Source, meta.Timestamp)
	}

	result, err := publish.NewMirror(objects, index).MirrorSnapshot(ctx, prefix)
	if err != nil {
		return fmt.Errorf("mirror failed: %w", err)
	}
	printMirror(*result)
	return nil
}
