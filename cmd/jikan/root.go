package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cli"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	outputFormat string
	noCache      bool
)

var rootCmd = &cobra.Command{
	Use:   "jikan",
	Short: "jikan - rate-limited client for the Jikan anime and manga API",
	Long: `jikan queries the unofficial MyAnimeList API at api.jikan.moe.

Requests are admitted by a chain of client-side rate windows (by default
1 per 300ms, 3 per second and 4 per 4 seconds) before they are sent, and
successful responses are cached. Configuration is read from a YAML file
and JIKAN_* environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the
// returned error.
func Execute() {
	ctx, stop := cli.SignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json, yaml, csv)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
}
