package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/pkg/models"
)

var (
	downloadsFormat string
	historyDays     int
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Track and inspect ISO downloads",
	Long: `Track and inspect ISO downloads.

'track' works anonymously; 'stats' and 'history' require an admin login.

Examples:
  teasite downloads track cosmic
  teasite downloads stats
  teasite downloads history --days 7`,
}

var downloadsTrackCmd = &cobra.Command{
	Use:   "track [edition]",
	Short: "Record a download of COSMIC or PLASMA",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		edition, ok := models.ParseEdition(args[0])
		if !ok {
			return fmt.Errorf("invalid edition %q, must be COSMIC or PLASMA", args[0])
		}

		client, manager, err := newBackend(ctx, GetConfig())
		if err != nil {
			return err
		}
		tracked, err := manager.Client(client).TrackDownload(ctx, edition)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", tracked.Message, tracked.ID)
		return nil
	},
}

var downloadsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		client, err := authedClient(ctx, GetConfig())
		if err != nil {
			return err
		}
		stats, err := client.DownloadStats(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if downloadsFormat == "json" {
			output, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(output))
			return nil
		}

		fmt.Fprintf(out, "Total:       %d\n", stats.TotalDownloads)
		fmt.Fprintf(out, "Today:       %d\n", stats.DownloadsToday)
		fmt.Fprintf(out, "This week:   %d\n", stats.DownloadsThisWeek)
		fmt.Fprintf(out, "This month:  %d\n", stats.DownloadsThisMonth)

		editions := make([]string, 0, len(stats.DownloadsByEdition))
		for e := range stats.DownloadsByEdition {
			editions = append(editions, e)
		}
		sort.Strings(editions)
		for _, e := range editions {
			fmt.Fprintf(out, "  %-10s %d\n", e, stats.DownloadsByEdition[e])
		}
		return nil
	},
}

var downloadsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily download counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		client, err := authedClient(ctx, GetConfig())
		if err != nil {
			return err
		}
		history, err := client.DownloadHistory(ctx, historyDays)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if downloadsFormat == "json" {
			output, err := json.MarshalIndent(history, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(output))
			return nil
		}
		for _, d := range history {
			fmt.Fprintf(out, "%s  %d\n", d.Date, d.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.AddCommand(downloadsTrackCmd, downloadsStatsCmd, downloadsHistoryCmd)

	downloadsCmd.PersistentFlags().StringVar(&downloadsFormat, "format", "text", "Output format: text or json")
	downloadsHistoryCmd.Flags().IntVar(&historyDays, "days", 30, "Days of history (1-365)")
}
