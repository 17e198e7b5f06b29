package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/jikan/guard"
)

// defaultConcurrency is how many batch lookups wait on the limiter at once.
// The rate windows decide how many actually run.
const defaultConcurrency = 4

// parseIDs converts positional arguments to MyAnimeList ids.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, &guard.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a number", arg)}
		}
		if err := guard.Positive("id", id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchBatch looks up every id, keeping going after individual failures.
// Results keep the order of ids and skip the ones that failed. The returned
// error is the first failure, wrapped with the failure count.
func fetchBatch[T any](ctx context.Context, ids []int, concurrency int, progressOut io.Writer, label string,
	fetch func(ctx context.Context, id int) (*T, error)) ([]T, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var progress *cli.SimpleProgress
	if len(ids) > 1 {
		progress = cli.NewProgressReporter(progressOut, label)
		progress.Start(int64(len(ids)))
	}

	results := make([]*T, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			v, err := fetch(ctx, id)
			results[i], errs[i] = v, err
			if progress != nil {
				if err != nil {
					progress.Error(fmt.Errorf("%d: %w", id, err))
				} else {
					progress.Increment()
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	if progress != nil {
		progress.Finish()
	}

	out := make([]T, 0, len(ids))
	var first error
	failed := 0
	for i := range ids {
		if errs[i] != nil {
			failed++
			if first == nil {
				first = errs[i]
			}
			continue
		}
		out = append(out, *results[i])
	}

	if first != nil {
		if len(ids) == 1 {
			return out, first
		}
		return out, fmt.Errorf("%d of %d lookups failed: %w", failed, len(ids), first)
	}
	return out, nil
}
