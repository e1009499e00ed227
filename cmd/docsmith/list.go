// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/build"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List document configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		entries, err := build.New(st, logger).Catalog()
		if err != nil {
			return err
		}
		build.PrintCatalog(os.Stdout, entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
