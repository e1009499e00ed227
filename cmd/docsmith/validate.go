// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/build"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every module of a document exists",
	Long: `Validate checks that each module in a document's resolved order exists
in the modules directory. Without --doc every configuration is validated.
The command exits non-zero when any module is missing.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	b := build.New(st, logger)

	name, _ := cmd.Flags().GetString("doc")
	if name == "" {
		ok, err := b.ValidateAll(os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("one or more documents are incomplete")
		}
		return nil
	}

	report, err := b.Validate(name, os.Stdout)
	if err != nil {
		return explainNotFound(err, st)
	}
	if !report.Complete() {
		return fmt.Errorf("%s is missing %d module(s)", name, len(report.Missing))
	}
	return nil
}

func init() {
	validateCmd.Flags().String("doc", "", "name of the document configuration (default: all)")

	rootCmd.AddCommand(validateCmd)
}
