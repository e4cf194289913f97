// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivist/pkg/taxonomy"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories [keyword]",
	Short: "List or search the arXiv category catalog",
	Long: `Categories prints the built-in taxonomy table. With a keyword it
lists only entries whose code or description matches case-insensitively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	var entries []taxonomy.Entry
	if len(args) == 1 {
		entries = taxonomy.Search(args[0])
		if len(entries) == 0 {
			return fmt.Errorf("no categories match %q", args[0])
		}
	} else {
		entries = taxonomy.All()
	}

	for _, e := range entries {
		fmt.Printf("%-10s %s\n", e.Code, e.Description)
	}
	return nil
}
