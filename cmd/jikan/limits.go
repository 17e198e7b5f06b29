package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/limits/ratelimit"
)

var limitsFlags struct {
	byRate bool
}

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show the client-side rate windows",
	Long: `Show the rate windows every request must pass, in nesting order.

A permit returns to its window only after the request completes and the
window's cooldown elapses, so the listed rates are upper bounds.

Examples:
  jikan limits
  jikan limits --by-rate --output json
  JIKAN_RATE_LIMITS="2/1s,30/1m" jikan limits`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format, err := cli.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		return showLimits(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, cfg.RateLimits, limitsFlags.byRate)
	},
}

func init() {
	rootCmd.AddCommand(limitsCmd)
	limitsCmd.Flags().BoolVar(&limitsFlags.byRate, "by-rate", false, "order windows from slowest to fastest")
}

func showLimits(out, errOut io.Writer, format cli.OutputFormat, cfg config.RateLimitConfig, byRate bool) error {
	windows, err := cfg.RateWindows()
	if err != nil {
		return cli.NewConfigError("rate_limits.windows", err.Error())
	}

	if len(windows) == 0 {
		fmt.Fprintln(errOut, "client-side throttling is disabled")
		return nil
	}

	if byRate {
		ratelimit.SortWindows(windows)
	}

	if err := cli.NewFormatter(format).FormatTo(out, newWindowTable(windows)); err != nil {
		return err
	}

	if format == cli.FormatText {
		slowest := windows[0]
		for _, w := range windows[1:] {
			if w.Compare(slowest) < 0 {
				slowest = w
			}
		}
		fmt.Fprintf(errOut, "sustained rate at most %.2f/s (bound by %s)\n", slowest.MaxRate(), slowest)
	}
	return nil
}
