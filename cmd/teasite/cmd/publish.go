package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/elasticsearch"
	"github.com/tealinux/teasite/internal/events"
	"github.com/tealinux/teasite/internal/publish"
	"github.com/tealinux/teasite/internal/storage"
	"github.com/tealinux/teasite/pkg/models"
)

var (
	publishS3  bool
	publishES  bool
	publishDir string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the content directory as a snapshot",
	Long: `Publish the local content directory.

--s3 uploads every page as markdown with front matter under a new
snapshots/<timestamp>/ prefix and moves LATEST to it once every page is
uploaded. --es indexes the pages into Elasticsearch. With both flags the
uploaded snapshot is mirrored into Elasticsearch by a background worker.

Examples:
  # Upload a snapshot (default)
  teasite publish

  # Upload and mirror into Elasticsearch
  teasite publish --s3 --es

  # Index only
  teasite publish --es`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().BoolVar(&publishS3, "s3", false, "Upload a snapshot to S3")
	publishCmd.Flags().BoolVar(&publishES, "es", false, "Index into Elasticsearch")
	publishCmd.Flags().StringVar(&publishDir, "dir", "", "Content directory (overrides content.dir)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg := GetConfig()
	if publishDir != "" {
		cfg.Content.Dir = publishDir
	}
	if !publishS3 && !publishES {
		publishS3 = true
	}

	loader, err := content.NewDirLoader(cfg.Content.Dir)
	if err != nil {
		return err
	}
	docs, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	// Reject duplicate IDs before anything is written.
	if _, err := content.NewCollection(docs); err != nil {
		return err
	}
	fmt.Printf("Loaded %d documents from %s\n", len(docs), cfg.Content.Dir)

	var objects *storage.Client
	if publishS3 {
		if objects, err = newStorage(cfg); err != nil {
			return err
		}
	}
	var index *elasticsearch.Client
	if publishES {
		if index, err = newElasticsearch(cfg); err != nil {
			return err
		}
	}

	switch {
	case publishS3 && publishES:
		return runPublishWithMirror(ctx, cfg.Content.Dir, objects, index, docs)
	case publishS3:
		_, err := publishSnapshot(ctx, cfg.Content.Dir, objects, docs)
		return err
	default:
		result, err := publish.NewMirror(nil, index).Index(ctx, docs)
		if err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}
		printMirror(*result)
		return nil
	}
}

func publishSnapshot(ctx context.Context, source string, objects *storage.Client, docs []models.Document) (*publish.Result, error) {
	publisher := publish.NewPublisher(objects)
	result, err := publisher.Publish(ctx, source, docs)
	if err != nil {
		return nil, fmt.Errorf("publish failed: %w", err)
	}

	fmt.Printf("Uploaded %d documents to s3://%s/%s in %v\n",
		result.Uploaded, objects.Bucket(), result.Prefix, result.Duration)
	for _, e := range result.Errors {
		fmt.Printf("  Warning: %s\n", e)
	}
	if len(result.Errors) > 0 {
		fmt.Println("LATEST was not moved because some uploads failed")
	}
	return result, nil
}

// runPublishWithMirror uploads the snapshot and hands it to the mirror
// worker over a channel.
func runPublishWithMirror(ctx context.Context, source string, objects *storage.Client, index *elasticsearch.Client, docs []models.Document) error {
	mirror := publish.NewMirror(objects, index)

	snapshots := make(chan events.SnapshotPublished, 1)
	done := mirror.Consume(ctx, snapshots)

	result, err := publishSnapshot(ctx, source, objects, docs)
	if err == nil {
		slog.Debug("handing snapshot to mirror", "prefix", result.Prefix)
		snapshots <- publish.NewPublisher(objects).Event(result)
	}
	close(snapshots)

	for mirrored := range done {
		printMirror(mirrored)
	}
	return err
}

func printMirror(r events.MirrorComplete) {
	if r.Prefix != "" {
		fmt.Printf("Mirrored %s: ", r.Prefix)
	}
	fmt.Printf("%d documents indexed, %d stale removed in %v\n", r.Indexed, r.Pruned, r.Duration)
	for _, e := range r.Errors {
		fmt.Printf("  Warning: %s\n", e)
	}
}
