package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mercator-hq/atoz/pkg/cli"
	"mercator-hq/atoz/pkg/listing"
)

var importFlags struct {
	dryRun bool
	quiet  bool
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load items into the content store",
	Long: `Load items from a YAML or JSON file into the primary content store.

The file holds an "items" list:

  items:
    - id: b1
      category: book
      title: Banana Republic
    - category: book
      title: 42 Answers
      status: draft

Items without an id are assigned one. Existing items with the same id are
replaced. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importFlags.dryRun, "dry-run", false, "validate items without storing them")
	importCmd.Flags().BoolVarP(&importFlags.quiet, "quiet", "q", false, "suppress progress output")
}

// importFile is the document read by import. JSON is accepted since it
// parses as YAML.
type importFile struct {
	Items []*listing.Item `yaml:"items"`
}

// readItems decodes an import document. Unknown keys are rejected.
func readItems(r io.Reader) ([]*listing.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc importFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	return doc.Items, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return cli.NewCommandError("import", err)
		}
		defer f.Close()
		in = f
	}

	items, err := readItems(in)
	if err != nil {
		return cli.NewCommandError("import", err)
	}

	for i, item := range items {
		if err := listing.ValidateItem(item); err != nil {
			return cli.NewCommandError("import", fmt.Errorf("item %d: %w", i, err))
		}
	}

	out := cmd.OutOrStdout()
	if importFlags.dryRun {
		fmt.Fprintf(out, "✓ %d items valid\n", len(items))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a, err := newApp(cfg, logger, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	progress := cli.NewProgressReporter(io.Discard, "items")
	if !importFlags.quiet {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr(), "items")
	}

	ctx := cmd.Context()
	progress.Start(int64(len(items)))
	for i, item := range items {
		if err := a.service.Put(ctx, item); err != nil {
			progress.Error(err)
			return cli.NewCommandError("import", fmt.Errorf("item %d: %w", i, err))
		}
		progress.Update(int64(i + 1))
	}
	progress.Finish()

	fmt.Fprintf(out, "✓ Imported %d items\n", len(items))
	return nil
}
