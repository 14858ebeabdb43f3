package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/internal/scraper"
)

var (
	importURL      string
	importCategory string
	importDir      string
	importDepth    int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import pages from a documentation website",
	Long: `Crawl a documentation website and write each page as a markdown file
with front matter into the content directory. Pages that already serve
markdown are used as-is; HTML pages are converted.

Examples:
  # Import a docs site into ./content
  teasite import --url https://docs.example.org/ --category Guides

  # Import a single page without following links
  teasite import --url https://docs.example.org/faq --depth 1`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importURL, "url", "", "Start URL to crawl (required)")
	importCmd.Flags().StringVar(&importCategory, "category", "", "Category for pages without one")
	importCmd.Flags().StringVar(&importDir, "dir", "", "Content directory (overrides content.dir)")
	importCmd.Flags().IntVar(&importDepth, "depth", 0, "Maximum crawl depth (overrides importer.max_depth)")
	importCmd.MarkFlagRequired("url")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg := GetConfig()
	if importDir != "" {
		cfg.Content.Dir = importDir
	}
	if importDepth > 0 {
		cfg.Importer.MaxDepth = importDepth
	}

	base, err := url.Parse(importURL)
	if err != nil || base.Host == "" {
		return fmt.Errorf("invalid URL %q", importURL)
	}

	s := scraper.New(scraper.Config{
		Delay:            cfg.Importer.Delay,
		MaxDepth:         cfg.Importer.MaxDepth,
		FollowLinks:      cfg.Importer.FollowLinks && cfg.Importer.MaxDepth != 1,
		Timeout:          cfg.Importer.Timeout,
		UserAgent:        cfg.Importer.UserAgent,
		TryMarkdownFirst: cfg.Importer.TryMarkdownFirst,
	})

	fmt.Printf("Crawling: %s\n", importURL)
	pages, err := s.Scrape(ctx, importURL)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	fmt.Printf("  Pages fetched: %d\n", len(pages))

	result, err := scraper.NewImporter().Import(ctx, pages, base, cfg.Content.Dir, importCategory)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("\nImported %d pages into %s (%d duplicates skipped)\n", result.Written, cfg.Content.Dir, result.Skipped)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
	for _, e := range result.Errors {
		fmt.Printf("  Warning: %s\n", e)
	}
	return nil
}
