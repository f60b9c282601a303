package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/cli"
)

var linksFlags struct {
	current string
	base    string
}

var linksCmd = &cobra.Command{
	Use:   "links CATEGORY",
	Short: "Print the A-Z navigation for a category",
	Long: `Print the 28 navigation links (All, #, A-Z) for a category that
supports alphabetic listing. Exactly one link is marked current.

Examples:
  atoz links book
  atoz links book --current q --base /books`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)

	linksCmd.Flags().StringVar(&linksFlags.current, "current", "", "current filter value")
	linksCmd.Flags().StringVar(&linksFlags.base, "base", "", "listing URL the links point at (default /v1/items?category=CATEGORY)")
}

func runLinks(cmd *cobra.Command, args []string) error {
	category := args[0]

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

	base := &url.URL{Path: "/v1/items", RawQuery: url.Values{"category": {category}}.Encode()}
	if linksFlags.base != "" {
		if base, err = url.Parse(linksFlags.base); err != nil {
			return cli.NewCommandError("links", fmt.Errorf("invalid --base: %w", err))
		}
	}

	links := a.service.Links(category, base, alpha.Normalize(linksFlags.current))
	if links == nil {
		return cli.NewCommandError("links",
			fmt.Errorf("category %q does not support alphabetic listing", category))
	}
	return printResult(cmd, linkTable(links))
}

type linkTable []alpha.Link

func (t linkTable) Header() []string {
	return []string{"LABEL", "VALUE", "CURRENT", "HREF"}
}

func (t linkTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, link := range t {
		current := ""
		if link.Current {
			current = "*"
		}
		rows = append(rows, []string{link.Label, link.Value, current, link.Href})
	}
	return rows
}
