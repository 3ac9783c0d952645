// Package main is the entry point for the sahayak CLI: a terminal
// interface to the welfare-scheme eligibility agent.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sahayak-ai/sahayak/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sahayak CLI.
var rootCmd = &cobra.Command{
	Use:   "sahayak",
	Short: "Conversational welfare-scheme eligibility assistant",
	Long: `sahayak helps residents discover which government welfare schemes they
qualify for. It holds a short conversation, extracts facts about the user,
scores them against the scheme catalog and asks targeted follow-up
questions for whatever is still missing.

Use "chat" for an interactive session or "check" to evaluate a saved
profile directly against the catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "scheme catalog YAML (default: CATALOG_PATH or config/schemes.yaml)")
}

func catalogPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		return p
	}
	return config.CatalogPath()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
