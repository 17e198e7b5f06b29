package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults and environment overrides,
and report every validation error. Without a file the --config flag is used.

Examples:
  jikan validate jikan.yaml
  jikan validate --config /etc/jikan/config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if len(args) > 0 {
			path = args[0]
		}
		return validateConfig(cmd.OutOrStdout(), path)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(out io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	windows := "disabled"
	if !cfg.RateLimits.Disabled {
		windows = strings.Join(cfg.RateLimits.Windows, ", ")
	}

	fmt.Fprintln(out, "✓ Configuration valid")
	fmt.Fprintf(out, "  base url:    %s\n", cfg.Client.BaseURL)
	fmt.Fprintf(out, "  rate limits: %s\n", windows)
	fmt.Fprintf(out, "  cache:       %s (ttl %s)\n", cfg.Cache.Backend, cfg.Cache.TTL)
	fmt.Fprintf(out, "  poll jobs:   %d\n", len(cfg.Poller.Jobs))
	return nil
}
