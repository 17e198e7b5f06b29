package main

import (
	"context"

	"github.com/spf13/cobra"
)

var topFlags struct {
	page int
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the top-ranked anime",
	Args:  cobra.NoArgs,
	RunE:  withApp(runTop),
}

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().IntVar(&topFlags.page, "page", 1, "result page (1-based)")
}

func runTop(ctx context.Context, a *app, _ []string) error {
	page, err := a.client.GetTopAnime(ctx, topFlags.page)
	if err != nil {
		return err
	}
	if err := a.render(page, animeTable(page.Data)); err != nil {
		return err
	}
	printPagination(a, page.Pagination)
	return nil
}
