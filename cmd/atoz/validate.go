package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/atoz/pkg/capability"
	"mercator-hq/atoz/pkg/cli"
	"mercator-hq/atoz/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [CAPABILITY_FILE]",
	Short: "Validate configuration and capability files",
	Long: `Validate the configuration (file plus ATOZ_* environment overrides)
and the capability file it references, or the one given as argument.

Examples:
  atoz validate --config atoz.yaml
  atoz validate capabilities.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	fmt.Fprintln(out, "✓ Configuration valid")

	path := cfg.Capabilities.FilePath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintf(out, "✓ %d inline categories\n", len(cfg.Capabilities.Categories))
		return nil
	}

	categories, err := capability.LoadFile(path)
	if err != nil {
		return cli.NewConfigError("capabilities.file_path", err.Error())
	}

	sortable := 0
	for _, features := range categories {
		for _, f := range features {
			if f == cfg.Alpha.Feature {
				sortable++
				break
			}
		}
	}
	fmt.Fprintf(out, "✓ Capability file %s valid (%d categories, %d alpha sortable)\n", path, len(categories), sortable)
	return nil
}
