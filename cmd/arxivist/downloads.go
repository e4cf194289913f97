// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxivist/pkg/hub"
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List papers recorded in the hub's download ledger",
	RunE:  runDownloads,
}

func init() {
	downloadsCmd.Flags().String("hub", "", "hub directory (default from config)")

	rootCmd.AddCommand(downloadsCmd)
}

func runDownloads(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("hub")
	if root == "" {
		root = viper.GetString("hub")
	}

	ledgerPath := filepath.Join(root, ledgerFile)
	if _, err := os.Stat(ledgerPath); err != nil {
		fmt.Println("No downloads recorded.")
		return nil
	}

	ledger, err := hub.OpenLedger(ledgerPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	records, err := ledger.List(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No downloads recorded.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %-12s  %-10s  %s\n",
			rec.DownloadedAt.Format("2006-01-02 15:04"), rec.ID, rec.Category, rec.Title)
	}
	fmt.Printf("\n%d paper(s) in %s\n", len(records), root)
	return nil
}
