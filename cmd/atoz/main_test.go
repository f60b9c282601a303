package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/config"
)

const testItems = `
items:
  - id: b1
    category: book
    title: banana
  - id: b2
    category: book
    title: Apple
  - id: b3
    category: book
    title: 42 Answers
  - id: b4
    category: book
    title: Blueberry
    status: draft
  - id: f1
    category: film
    title: Alien
`

// testConfig installs a configuration backed by a temporary SQLite file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.NewDefaultConfig()
	config.ApplyDefaults(cfg)
	cfg.Store.SQLite.Path = filepath.Join(t.TempDir(), "data", "atoz.db")
	cfg.Capabilities.Categories = map[string][]string{
		"book": {alpha.Feature},
		"film": {"comments"},
	}
	cfg.Telemetry.Logging.Level = "error"

	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })
	return cfg
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default so commands can run more
// than once per process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

func importTestItems(t *testing.T) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "items.yaml", testItems)
	if _, err := execute(t, "import", "--quiet", path); err != nil {
		t.Fatalf("import error = %v", err)
	}
}
