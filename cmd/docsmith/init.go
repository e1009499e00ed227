// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the workspace directory layout",
	Long: `Init creates the configuration, modules, dist, dist/docx, dist/pdfs, and
changelogs directories under the workspace root, plus a starter
changelogs/CHANGELOG.md. Existing files are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := workspace.New(workspaceConfig())
		if err != nil {
			return err
		}
		return ws.Init(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
