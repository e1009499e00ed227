// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/internal/workspace"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent split, build, and convert runs",
	Long: `History lists recorded runs from <root>/.docsmith/history.db, newest
first. Use --doc to restrict the listing to one document and --yaml for
machine-readable output.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New(workspaceConfig())
	if err != nil {
		return err
	}
	ledger, err := history.Open(ws.StateDir())
	if err != nil {
		return err
	}
	defer ledger.Close()

	doc, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := ledger.Recent(context.Background(), doc, limit)
	if err != nil {
		return err
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return history.ExportYAML(os.Stdout, runs)
	}
	history.Print(os.Stdout, runs)
	return nil
}

func init() {
	historyCmd.Flags().String("doc", "", "only show runs for this document")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show (0 for all)")
	historyCmd.Flags().Bool("yaml", false, "output runs as YAML")

	rootCmd.AddCommand(historyCmd)
}
