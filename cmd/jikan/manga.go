package main

import (
	"context"

	"github.com/spf13/cobra"
)

var mangaFlags struct {
	concurrency int
}

var mangaCmd = &cobra.Command{
	Use:   "manga <id> [id...]",
	Short: "Look up manga by MyAnimeList id",
	Long: `Look up one or more manga by MyAnimeList id.

Examples:
  jikan manga 2
  jikan manga 1 2 13 --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runManga),
}

func init() {
	rootCmd.AddCommand(mangaCmd)
	mangaCmd.Flags().IntVar(&mangaFlags.concurrency, "concurrency", defaultConcurrency, "lookups queued on the limiter at once")
}

func runManga(ctx context.Context, a *app, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	items, fetchErr := fetchBatch(ctx, ids, mangaFlags.concurrency, a.errOut, "Fetching manga", a.client.GetManga)
	if len(items) > 0 {
		var value any = items
		if len(ids) == 1 {
			value = items[0]
		}
		if err := a.render(value, mangaTable(items)); err != nil {
			return err
		}
	}
	return fetchErr
}
