// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/build"
	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/internal/store"
)

// --- build subcommand ---

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble a document from its modules",
	Long: `Build concatenates the modules of one document into dist/<filename>.
Module order comes from the module map when it defines one, otherwise from
the configuration outline. Missing modules are reported and skipped.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	name, err := requireFlag(cmd, "doc")
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	result, err := newBuilder(st).Build(name, os.Stdout)
	if err != nil {
		return explainNotFound(err, st)
	}
	if !result.Complete() {
		fmt.Fprintf(os.Stderr, "warning: %d module(s) missing from %s\n", len(result.Missing), name)
	}
	return nil
}

// --- build-all subcommand ---

var buildAllCmd = &cobra.Command{
	Use:   "build-all",
	Short: "Assemble every configured document",
	Long: `Build-all builds each configuration in the configuration directory.
A configuration that cannot be loaded is reported and skipped; the command
exits non-zero when any configuration failed.`,
	RunE: runBuildAll,
}

func runBuildAll(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	batch, err := newBuilder(st).BuildAll(os.Stdout)
	if err != nil {
		return err
	}
	if batch.HasFailures() {
		return fmt.Errorf("%d document(s) failed to build", batch.Failed)
	}
	return nil
}

// newBuilder returns a Builder that records every written document in the
// workspace history.
func newBuilder(st *store.Store) *build.Builder {
	b := build.New(st, logger)
	b.AfterBuild = func(r *build.Result) {
		recordRun(context.Background(), st.Workspace(), history.Run{
			Kind:      history.KindBuild,
			Document:  r.Name,
			Succeeded: len(r.Found),
			Failed:    len(r.Missing),
			Output:    r.OutputPath,
		})
	}
	return b
}

func init() {
	buildCmd.Flags().String("doc", "", "name of the document configuration (required)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(buildAllCmd)
}
