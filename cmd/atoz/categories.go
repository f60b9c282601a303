package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List registered categories and their capabilities",
	Long: `List the categories loaded from configuration and the capability file,
with their declared features.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

type categoryRow struct {
	Name          string   `json:"name"`
	Features      []string `json:"features"`
	AlphaSortable bool     `json:"alpha_sortable"`
}

type categoryTable []categoryRow

func (t categoryTable) Header() []string {
	return []string{"CATEGORY", "ALPHA_SORTABLE", "FEATURES"}
}

func (t categoryTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, c := range t {
		rows = append(rows, []string{c.Name, strconv.FormatBool(c.AlphaSortable), strings.Join(c.Features, ",")})
	}
	return rows
}

func runCategories(cmd *cobra.Command, args []string) error {
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

	names := a.registry.Categories()
	table := make(categoryTable, 0, len(names))
	for _, name := range names {
		table = append(table, categoryRow{
			Name:          name,
			Features:      a.registry.Features(name),
			AlphaSortable: a.registry.Supports(name, cfg.Alpha.Feature),
		})
	}
	return printResult(cmd, table)
}
