/*
Package cli provides command-line helpers for the atoz command.

Output Formatting:

Results print as text, JSON or CSV. Values implementing Table render as
aligned columns in text mode and as rows in CSV mode:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

Imports report progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr, "items")
	progress.Start(int64(len(items)))
	for i, item := range items {
		// store item
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
