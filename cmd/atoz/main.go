// atoz serves content listings with an A-Z browsing mode.
//
// Listings for categories that declare the alpha_sort capability are
// ordered by title and may be narrowed to a single initial letter, or to
// the "0-9" bucket of titles that start with anything else.
//
// Usage:
//
//	# Start the HTTP API
//	atoz serve --config atoz.yaml
//
//	# List books starting with B
//	atoz list --category book --letter b
//
//	# Print the letter navigation for a category
//	atoz links book --current q
//
//	# Load items from a YAML or JSON file
//	atoz import items.yaml
//
//	# Check a configuration and capability file
//	atoz validate --config atoz.yaml
package main

import (
	"fmt"
	"os"

	"mercator-hq/atoz/pkg/cli"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
