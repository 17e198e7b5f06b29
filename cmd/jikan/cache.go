package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cache"
	"mercator-hq/jikan/pkg/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
	Long: `Manage the response cache configured under cache.backend.

Only the sqlite and redis backends outlive a single process; the memory
backend is always empty when a new command starts.`,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCacheOp(cmd, "purge")
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cache entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCacheOp(cmd, "clear")
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePurgeCmd, cacheClearCmd)
}

func runCacheOp(cmd *cobra.Command, op string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n, name, err := cacheOp(cmd.Context(), &cfg.Cache, op)
	if err != nil {
		return err
	}

	switch op {
	case "purge":
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Purged %d expired entries from %s cache\n", n, name)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d entries from %s cache\n", n, name)
	}
	return nil
}

// cacheOp opens the configured backend, runs op on it and closes it.
func cacheOp(ctx context.Context, cfg *config.CacheConfig, op string) (int, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := cache.New(ctx, cfg, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to open cache: %w", err)
	}
	defer backend.Close()

	var n int
	switch op {
	case "purge":
		n, err = backend.Purge(ctx)
	case "clear":
		n, err = backend.Clear(ctx)
	default:
		return 0, "", fmt.Errorf("unknown cache operation %q", op)
	}
	if err != nil {
		return 0, "", fmt.Errorf("cache %s failed: %w", op, err)
	}
	return n, backend.Name(), nil
}
