package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tealinux/teasite/internal/render"
)

var (
	docRaw    bool
	navFormat string
)

var docCmd = &cobra.Command{
	Use:   "doc [id]",
	Short: "Print a documentation page",
	Long: `Print a documentation page by ID. On a terminal the markdown is
rendered; use --raw for the plain markdown body.

Examples:
  teasite doc getting-started
  teasite doc guides/install --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runDoc,
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "List documentation pages grouped by category",
	RunE:  runNav,
}

func init() {
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(navCmd)

	docCmd.Flags().BoolVar(&docRaw, "raw", false, "Print raw markdown")
	navCmd.Flags().StringVar(&navFormat, "format", "text", "Output format: text or json")
}

func runDoc(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	store, _, err := newContent(ctx, GetConfig())
	if err != nil {
		return fmt.Errorf("failed to open content: %w", err)
	}

	doc, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fd := int(os.Stdout.Fd())
	if !docRaw && term.IsTerminal(fd) {
		width := render.DefaultWidth
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
		rendered, err := render.Terminal("# "+doc.Title+"\n\n"+doc.Body, width)
		if err == nil {
			fmt.Fprint(out, rendered)
			return nil
		}
	}

	fmt.Fprintln(out, doc.Body)
	return nil
}

func runNav(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	store, _, err := newContent(ctx, GetConfig())
	if err != nil {
		return fmt.Errorf("failed to open content: %w", err)
	}

	nav, err := store.Navigation(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if navFormat == "json" {
		output, err := json.MarshalIndent(nav, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	for _, section := range nav {
		fmt.Fprintf(out, "%s\n", section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(out, "  %-32s %s\n", item.Slug, item.Title)
		}
	}
	return nil
}
