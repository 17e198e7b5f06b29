/*
Package cli provides helpers shared by the jikan command.

Output Formatting:

Results are written as text, JSON, YAML or CSV. Values that implement
Tabular are rendered as aligned columns in text mode and as rows in CSV:

	format, err := cli.ParseFormat(flagValue)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(os.Stdout, result)

Progress Reporting:

Batch fetches report progress on stderr so stdout stays machine-readable:

	progress := cli.NewProgressReporter(os.Stderr, "Fetching anime")
	progress.Start(int64(len(ids)))
	// call progress.Increment or progress.Error from each worker
	progress.Finish()

Errors and Exit Codes:

ExitCode maps client errors to distinct exit codes, so scripts can tell a
missing resource (3) from an upstream 429 (4) or a server failure (5).

Signal Handling:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
