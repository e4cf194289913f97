// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxivist/pkg/hub"
	"github.com/pdiddy/arxivist/pkg/types"
)

// ledgerFile is the download ledger's filename inside the hub directory.
const ledgerFile = ".ledger.db"

var downloadCmd = &cobra.Command{
	Use:   "download [ids...]",
	Short: "Download paper PDFs into the hub directory",
	Long: `Download fetches each paper's metadata, then saves its PDF under the
hub directory in a category-derived subdirectory (e.g. CS_LG/), with a
slugged filename and a YAML metadata sidecar. The hub directory must
already exist. Existing papers are skipped unless --overwrite is set.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("hub", "", "hub directory for saved PDFs (default from config)")
	downloadCmd.Flags().Bool("overwrite", false, "re-download papers that already exist")
	downloadCmd.Flags().Duration("timeout", 60*time.Second, "HTTP request timeout per download")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more arXiv identifiers")
	}

	root, _ := cmd.Flags().GetString("hub")
	if root == "" {
		root = viper.GetString("hub")
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := newClient()
	ctx := context.Background()

	// Resolve metadata first; the client's rate limiter paces these calls.
	var papers []*types.Paper
	for _, id := range args {
		paper, err := client.GetByID(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not resolve %s: %v\n", id, err)
			continue
		}
		papers = append(papers, paper)
	}
	if len(papers) == 0 {
		return fmt.Errorf("no identifiers could be resolved")
	}

	opts := []hub.Option{
		hub.WithHTTPClient(&http.Client{Timeout: timeout}),
		hub.WithUserAgent(viper.GetString("user_agent")),
		hub.WithOverwrite(overwrite),
	}

	// The ledger lives inside the hub, so only attach it when the hub
	// root exists; Download reports the missing hub itself.
	if info, err := os.Stat(root); err == nil && info.IsDir() {
		ledger, err := hub.OpenLedger(filepath.Join(root, ledgerFile))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: download ledger unavailable: %v\n", err)
		} else {
			defer ledger.Close()
			opts = append(opts, hub.WithLedger(ledger))
		}
	}

	h := hub.New(root, opts...)
	result := h.DownloadBatch(ctx, papers, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed to download", result.Failed)
	}
	return nil
}
