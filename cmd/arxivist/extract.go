// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivist/pkg/pdftext"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Extract text, tables, or metadata from a saved PDF",
	Long: `Extract reads a downloaded PDF and prints its plain text. With
--first-page only the first page (title block and abstract) is printed;
--tables prints the per-page row structure as JSON; --meta prints the
document information dictionary.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("first-page", false, "extract only the first page")
	extractCmd.Flags().Bool("tables", false, "extract tabular row structure as JSON")
	extractCmd.Flags().Bool("meta", false, "extract the document metadata")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	if tables, _ := cmd.Flags().GetBool("tables"); tables {
		out, err := pdftext.Tables(path)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if meta, _ := cmd.Flags().GetBool("meta"); meta {
		m, err := pdftext.Metadata(path)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-16s %s\n", k+":", m[k])
		}
		return nil
	}

	var text string
	var err error
	if firstPage, _ := cmd.Flags().GetBool("first-page"); firstPage {
		text, err = pdftext.FirstPageText(path)
	} else {
		text, err = pdftext.Text(path)
	}
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
