// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/internal/split"
)

var splitCmd = &cobra.Command{
	Use:   "split <input>",
	Short: "Split a Markdown document into module files",
	Long: `Split decomposes a Markdown document into module files, one per section
of the named configuration, and rewrites the configuration's module map.

When the configuration does not exist it is inferred from the document's
headings and saved. When it exists but any of its start patterns no longer
names a heading in the document, it is regenerated. Manual edits to the module
map are overwritten.

With --analyze the document is inspected without writing anything: every
heading is listed and each configured start pattern is checked.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	name, err := requireFlag(cmd, "config")
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	sp := split.New(st, logger)

	if analyze, _ := cmd.Flags().GetBool("analyze"); analyze {
		_, err := sp.Analyze(name, args[0], os.Stdout)
		return err
	}

	result, err := sp.Split(name, args[0], os.Stdout)
	if err != nil {
		return explainNotFound(err, st)
	}

	shared, err := split.SharedModules(st.Workspace())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(shared) > 0 {
		fmt.Println("\nShared modules:")
		for _, s := range shared {
			fmt.Printf("  - %s\n", s)
		}
	}

	recordRun(context.Background(), st.Workspace(), history.Run{
		Kind:      history.KindSplit,
		Document:  name,
		Succeeded: result.Count(split.StatusWritten),
		Failed:    result.Count(split.StatusNotFound) + result.Count(split.StatusFailed),
		Output:    result.MapPath,
	})

	if result.HasFailures() {
		return fmt.Errorf("%d module(s) could not be written", result.Count(split.StatusFailed))
	}
	return nil
}

func init() {
	splitCmd.Flags().String("config", "", "name of the document configuration (required)")
	splitCmd.Flags().Bool("analyze", false, "list headings and check patterns without writing modules")

	rootCmd.AddCommand(splitCmd)
}
