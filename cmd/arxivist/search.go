// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivist/pkg/arxiv"
	"github.com/pdiddy/arxivist/pkg/query"
	"github.com/pdiddy/arxivist/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search arXiv with fielded query terms",
	Long: `Search builds an arXiv query from fielded flags (title, author,
abstract, category) joined with AND, optionally restricted to a submission
date range, and prints one page of results.

Relative date expressions are accepted for --from and --to: "today",
"yesterday", "last week", and "N days ago".`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "raw search_query string sent as-is")
	searchCmd.Flags().String("title", "", "match words in the title")
	searchCmd.Flags().String("author", "", "match an author name")
	searchCmd.Flags().String("abstract", "", "match words in the abstract")
	searchCmd.Flags().String("category", "", "restrict to a taxonomy code (e.g. cs.LG)")
	searchCmd.Flags().String("from", "", "submission date range start")
	searchCmd.Flags().String("to", "", "submission date range end")
	searchCmd.Flags().String("sort", "", "sort field: relevance, lastUpdatedDate, submittedDate")
	searchCmd.Flags().String("order", "descending", "sort order: ascending or descending")
	searchCmd.Flags().Int("start", 0, "result offset for pagination")
	searchCmd.Flags().Int("max-results", 10, "page size (max 2000)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	client := newClient()
	start, _ := cmd.Flags().GetInt("start")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	asJSON, _ := cmd.Flags().GetBool("json")

	page := arxiv.Page{Start: start, MaxResults: maxResults}

	var rs *types.ResultSet
	var err error
	if raw, _ := cmd.Flags().GetString("query"); raw != "" {
		rs, err = client.SearchRaw(context.Background(), raw, page)
	} else {
		b, buildErr := builderFromFlags(cmd)
		if buildErr != nil {
			return buildErr
		}
		rs, err = client.Search(context.Background(), b, page)
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}
	printResults(rs, os.Stdout)
	return nil
}

// builderFromFlags assembles a query builder from the fielded flags,
// joining successive clauses with AND.
func builderFromFlags(cmd *cobra.Command) (*query.Builder, error) {
	b := query.New()
	add := func(f func(string) *query.Builder, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.And()
		}
		f(value)
	}

	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	abstract, _ := cmd.Flags().GetString("abstract")
	category, _ := cmd.Flags().GetString("category")
	add(b.Title, title)
	add(b.Author, author)
	add(b.Abstract, abstract)
	add(b.Category, category)

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	switch {
	case from != "" && to != "":
		b.DateRange(from, to)
	case from != "":
		b.DateRange(from, "today")
	case to != "":
		return nil, fmt.Errorf("--to requires --from")
	}

	if sortField, _ := cmd.Flags().GetString("sort"); sortField != "" {
		order, _ := cmd.Flags().GetString("order")
		b.SortBy(sortField, order)
	}
	return b, nil
}

// printResults writes a human-readable result listing to w.
func printResults(rs *types.ResultSet, w io.Writer) {
	if len(rs.Entries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	for i, p := range rs.Entries {
		year := ""
		if !p.Published.IsZero() {
			year = fmt.Sprintf(" (%d)", p.Published.Year())
		}
		fmt.Fprintf(w, "%2d. %s%s\n", rs.StartIndex+i+1, p.Title, year)
		fmt.Fprintf(w, "    %s  [%s]  %s\n", p.ShortID(), p.PrimaryCategory, formatAuthors(p.Authors))
	}
	fmt.Fprintf(w, "\n%d of %d results (offset %d)\n",
		len(rs.Entries), rs.TotalResults, rs.StartIndex)
}

func formatAuthors(authors []types.Author) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0].Name
	default:
		return authors[0].Name + " et al."
	}
}
