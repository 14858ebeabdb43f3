package cmd

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
)

var searchFormat string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the documentation",
	Long: `Search the documentation pages. Title matches are listed first and at
most 10 results are shown.

Examples:
  # Basic search
  teasite search "install"

  # JSON output for scripting (same shape as /api/search)
  teasite search "wifi" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format: text or json")
}

var highlightTag = regexp.MustCompile(`</?span[^>]*>`)

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	if searchFormat != "text" && searchFormat != "json" {
		return fmt.Errorf("unknown format %q, want text or json", searchFormat)
	}

	_, engine, err := newContent(ctx, GetConfig())
	if err != nil {
		return fmt.Errorf("failed to open content: %w", err)
	}

	results, err := engine.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if searchFormat == "json" {
		output, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(out, "─── Result %d ───\n", i+1)
		fmt.Fprintf(out, "Title:   %s\n", highlightTag.ReplaceAllString(r.Title, ""))
		fmt.Fprintf(out, "URL:     %s\n", r.URL)
		fmt.Fprintf(out, "Snippet: %s\n\n", highlightTag.ReplaceAllString(r.Snippet, ""))
	}
	return nil
}
