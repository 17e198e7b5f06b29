package main

import (
	"context"

	"github.com/spf13/cobra"
)

var animeFlags struct {
	concurrency int
}

var animeCmd = &cobra.Command{
	Use:   "anime <id> [id...]",
	Short: "Look up anime by MyAnimeList id",
	Long: `Look up one or more anime by MyAnimeList id.

Several ids are fetched concurrently; the rate limiter spaces the requests
out. Ids that fail are reported on stderr and the rest are still printed.

Examples:
  jikan anime 1
  jikan anime 1 5 6 7 8 --output csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runAnime),
}

func init() {
	rootCmd.AddCommand(animeCmd)
	animeCmd.Flags().IntVar(&animeFlags.concurrency, "concurrency", defaultConcurrency, "lookups queued on the limiter at once")
}

func runAnime(ctx context.Context, a *app, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	items, fetchErr := fetchBatch(ctx, ids, animeFlags.concurrency, a.errOut, "Fetching anime", a.client.GetAnime)
	if len(items) > 0 {
		var value any = items
		if len(ids) == 1 {
			value = items[0]
		}
		if err := a.render(value, animeTable(items)); err != nil {
			return err
		}
	}
	return fetchErr
}
