// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxivist CLI, a thin surface
// over the SDK packages: search, get, download, downloads, extract, and
// categories.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxivist/pkg/arxiv"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxivist CLI.
var rootCmd = &cobra.Command{
	Use:   "arxivist",
	Short: "Search arXiv, download papers, and extract text from PDFs",
	Long: `arxivist is a command-line surface over the arxivist SDK. It builds
fielded arXiv queries, pages through results, downloads PDFs into a hub
directory organized by category, and extracts text from saved papers.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxivist.yaml or ~/.config/arxivist/config.yaml)")
}

func initConfig() {
	// A .env next to the binary is convenient during development; a
	// missing file is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxivist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxivist"))
		}
	}

	viper.SetEnvPrefix("ARXIVIST")
	viper.AutomaticEnv()

	viper.SetDefault("base_url", "")
	viper.SetDefault("user_agent", "arxivist/0.1")
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("rate_interval", 3*time.Second)
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("hub", "papers")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newClient builds an API client from the effective configuration.
func newClient() *arxiv.Client {
	opts := []arxiv.Option{
		arxiv.WithUserAgent(viper.GetString("user_agent")),
		arxiv.WithRateInterval(viper.GetDuration("rate_interval")),
		arxiv.WithMaxRetries(viper.GetInt("max_retries")),
		arxiv.WithHTTPClient(&http.Client{Timeout: viper.GetDuration("timeout")}),
	}
	if u := viper.GetString("base_url"); u != "" {
		opts = append(opts, arxiv.WithBaseURL(u))
	}
	return arxiv.NewClient(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
