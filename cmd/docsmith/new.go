// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/scaffold"
	"github.com/pdiddy/docsmith/pkg/types"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new document configuration",
	Long: `New writes configs/<name>.yaml from one of three sources:

  --template basic|technical   a predefined outline
  --from <file.json|yaml>      an existing configuration file
  --title ... --section id=heading [--section ...]
                               an outline given on the command line

Section end patterns chain to the next section's start pattern. The prefix
defaults to the initials of the title's capitalised words. With --modules a
placeholder module file is created for every section that has none yet.

The configuration name defaults to the slugged title, the template name, or
the imported file's base name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := newConfiguration(cmd)
	if err != nil {
		return err
	}

	raw := defaultConfigName(cmd)
	if len(args) == 1 {
		raw = args[0]
	}
	name := scaffold.Slug(raw)
	if name == "" {
		return fmt.Errorf("configuration name %q is empty after normalisation", raw)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if force, _ := cmd.Flags().GetBool("force"); st.Exists(name) && !force {
		return fmt.Errorf("configuration %s already exists (use --force to overwrite)", name)
	}
	if err := st.Save(name, cfg); err != nil {
		return err
	}
	fmt.Printf("created: %s (%d sections, prefix %s)\n",
		st.Workspace().Rel(st.Workspace().ConfigPath(name)), len(cfg.Outline), cfg.Prefix)

	if modules, _ := cmd.Flags().GetBool("modules"); modules {
		if _, err := scaffold.WriteModules(st.Workspace(), cfg, os.Stdout); err != nil {
			return err
		}
	}

	fmt.Printf("\nTo build this document: docsmith build --doc %s\n", name)
	return nil
}

func defaultConfigName(cmd *cobra.Command) string {
	if template, _ := cmd.Flags().GetString("template"); template != "" {
		return template
	}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		return strings.TrimSuffix(filepath.Base(from), filepath.Ext(from))
	}
	title, _ := cmd.Flags().GetString("title")
	return title
}

// newConfiguration builds the configuration from whichever source flag was
// given. Exactly one source is allowed.
func newConfiguration(cmd *cobra.Command) (*types.Configuration, error) {
	template, _ := cmd.Flags().GetString("template")
	from, _ := cmd.Flags().GetString("from")
	title, _ := cmd.Flags().GetString("title")

	sources := 0
	for _, s := range []string{template, from, title} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("give exactly one of --template (%s), --from, or --title",
			strings.Join(scaffold.Templates(), ", "))
	}

	switch {
	case template != "":
		return scaffold.FromTemplate(template)
	case from != "":
		return scaffold.LoadExternal(from)
	}

	sections, _ := cmd.Flags().GetStringArray("section")
	answers := scaffold.Answers{Title: title}
	answers.Filename, _ = cmd.Flags().GetString("filename")
	answers.Prefix, _ = cmd.Flags().GetString("prefix")
	for _, raw := range sections {
		s, err := scaffold.ParseSection(raw)
		if err != nil {
			return nil, err
		}
		answers.Sections = append(answers.Sections, s)
	}
	return scaffold.FromAnswers(answers)
}

func init() {
	newCmd.Flags().String("template", "", "predefined template: basic or technical")
	newCmd.Flags().String("from", "", "JSON or YAML configuration file to import")
	newCmd.Flags().String("title", "", "document title")
	newCmd.Flags().String("filename", "", "assembled output filename (default: title with underscores + .md)")
	newCmd.Flags().String("prefix", "", "module prefix (default: derived from title)")
	newCmd.Flags().StringArray("section", nil, "section as id=heading (repeatable, in order)")
	newCmd.Flags().Bool("modules", false, "create placeholder module files")
	newCmd.Flags().Bool("force", false, "overwrite an existing configuration")

	rootCmd.AddCommand(newCmd)
}
