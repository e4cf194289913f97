// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivist/pkg/taxonomy"
	"github.com/pdiddy/arxivist/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Fetch a single paper by arXiv identifier",
	Long: `Get fetches one paper's metadata by identifier, new-style
("2301.07041", optionally versioned) or legacy ("hep-th/9901001").`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().Bool("json", false, "output the record as JSON")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	client := newClient()

	paper, err := client.GetByID(context.Background(), args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(paper)
	}
	printPaper(paper)
	return nil
}

func printPaper(p *types.Paper) {
	fmt.Printf("Title:     %s\n", p.Title)
	fmt.Printf("ID:        %s (v%d)\n", p.ShortID(), p.Version())

	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	fmt.Printf("Authors:   %s\n", strings.Join(names, ", "))

	cat := p.PrimaryCategory
	if desc, ok := taxonomy.Describe(cat); ok {
		cat += " (" + desc + ")"
	}
	fmt.Printf("Category:  %s\n", cat)

	if !p.Published.IsZero() {
		fmt.Printf("Published: %s\n", p.Published.Format("2006-01-02"))
	}
	if p.DOI != "" {
		fmt.Printf("DOI:       %s\n", p.DOI)
	}
	if p.JournalRef != "" {
		fmt.Printf("Journal:   %s\n", p.JournalRef)
	}
	if url := p.PDFURL(); url != "" {
		fmt.Printf("PDF:       %s\n", url)
	}
	if p.Summary != "" {
		fmt.Printf("\n%s\n", p.Summary)
	}
}
