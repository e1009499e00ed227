// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/build"
)

var createMapCmd = &cobra.Command{
	Use:   "create-map",
	Short: "Regenerate a module map from its configuration outline",
	Long: `Create-map writes modules/<doc>_map.yaml with the configuration's outline
order, replacing any existing map. Reorder module_order in the map to change
the build order without touching the configuration.`,
	RunE: runCreateMap,
}

func runCreateMap(cmd *cobra.Command, args []string) error {
	name, err := requireFlag(cmd, "doc")
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	m, err := build.New(st, logger).CreateMap(name)
	if err != nil {
		return explainNotFound(err, st)
	}
	fmt.Printf("created: %s (%d modules)\n", st.Workspace().Rel(st.Workspace().MapPath(name)), len(m.ModuleOrder))
	return nil
}

func init() {
	createMapCmd.Flags().String("doc", "", "name of the document configuration (required)")

	rootCmd.AddCommand(createMapCmd)
}
