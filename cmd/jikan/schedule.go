package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/config"
)

var scheduleFlags struct {
	page int
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [day]",
	Short: "List anime airing on a weekday",
	Long: fmt.Sprintf(`List anime in this season's broadcast schedule.

Day is one of: %s. Without a day every scheduled anime is listed.`, strings.Join(config.ScheduleDays, ", ")),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: config.ScheduleDays,
	RunE:      withApp(runSchedule),
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().IntVar(&scheduleFlags.page, "page", 1, "result page (1-based)")
}

func runSchedule(ctx context.Context, a *app, args []string) error {
	var day string
	if len(args) > 0 {
		day = args[0]
	}

	page, err := a.client.GetSchedules(ctx, day, scheduleFlags.page)
	if err != nil {
		return err
	}
	if err := a.render(page, animeTable(page.Data)); err != nil {
		return err
	}
	printPagination(a, page.Pagination)
	return nil
}
