package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/jikan"
	"mercator-hq/jikan/pkg/jikan/models"
)

var searchFlags struct {
	page    int
	limit   int
	typ     string
	status  string
	orderBy string
	sort    string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search anime or manga",
	Long: `Search the anime or manga catalogue.

Filters are checked locally before anything is sent, so a bad filter never
spends a rate limit permit.

Examples:
  jikan search anime "cowboy bebop"
  jikan search manga berserk --type manga --order-by score --sort desc
  jikan search anime --status airing --limit 25 --page 2`,
}

var searchAnimeCmd = &cobra.Command{
	Use:   "anime [query]",
	Short: "Search anime",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runSearchAnime),
}

var searchMangaCmd = &cobra.Command{
	Use:   "manga [query]",
	Short: "Search manga",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runSearchManga),
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchAnimeCmd, searchMangaCmd)

	flags := searchCmd.PersistentFlags()
	flags.IntVar(&searchFlags.page, "page", 0, "result page (1-based)")
	flags.IntVar(&searchFlags.limit, "limit", 0, fmt.Sprintf("results per page (1-%d)", jikan.MaxPageLimit))
	flags.StringVar(&searchFlags.typ, "type", "", "media type filter")
	flags.StringVar(&searchFlags.status, "status", "", "airing or publishing status filter")
	flags.StringVar(&searchFlags.orderBy, "order-by", "", "sort field")
	flags.StringVar(&searchFlags.sort, "sort", "", "sort direction (asc, desc)")
}

func searchQuery(args []string) jikan.SearchQuery {
	q := jikan.SearchQuery{
		Page:    searchFlags.page,
		Limit:   searchFlags.limit,
		Type:    searchFlags.typ,
		Status:  searchFlags.status,
		OrderBy: searchFlags.orderBy,
		Sort:    searchFlags.sort,
	}
	if len(args) > 0 {
		q.Query = args[0]
	}
	return q
}

func runSearchAnime(ctx context.Context, a *app, args []string) error {
	page, err := a.client.SearchAnime(ctx, searchQuery(args))
	if err != nil {
		return err
	}
	if err := a.render(page, animeTable(page.Data)); err != nil {
		return err
	}
	printPagination(a, page.Pagination)
	return nil
}

func runSearchManga(ctx context.Context, a *app, args []string) error {
	page, err := a.client.SearchManga(ctx, searchQuery(args))
	if err != nil {
		return err
	}
	if err := a.render(page, mangaTable(page.Data)); err != nil {
		return err
	}
	printPagination(a, page.Pagination)
	return nil
}

// printPagination writes a page footer to stderr in text mode.
func printPagination(a *app, p models.Pagination) {
	if a.format != cli.FormatText {
		return
	}
	writePagination(a.errOut, p)
}

func writePagination(w io.Writer, p models.Pagination) {
	var b strings.Builder
	fmt.Fprintf(&b, "page %d of %d", p.CurrentPage, p.LastVisiblePage)
	if p.Items.Total > 0 {
		fmt.Fprintf(&b, " (%d results)", p.Items.Total)
	}
	if p.HasNextPage {
		b.WriteString(", more with --page")
	}
	fmt.Fprintln(w, b.String())
}
