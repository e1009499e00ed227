// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docsmith CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics; it discards unless --verbose is set.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// rootCmd is the base command for the docsmith CLI.
var rootCmd = &cobra.Command{
	Use:   "docsmith",
	Short: "Split large Markdown documents into modules and rebuild them",
	Long: `docsmith splits a large Markdown document into small module files along
section boundaries declared in a per-document configuration, and reassembles
the modules into a complete document. The order of modules comes from a
module map when one exists, otherwise from the configuration outline.

Configurations live in configs/, modules and module maps in modules/, and
assembled documents in dist/. Assembled documents can be converted to DOCX
and PDF with pandoc.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("settings", "", "settings file (default: ./docsmith.yaml or ~/.config/docsmith/docsmith.yaml)")
	pf.String("root", ".", "workspace root directory")
	pf.String("config-dir", "", "directory holding document configurations (default: <root>/configs)")
	pf.String("modules-dir", "", "directory holding modules and module maps (default: <root>/modules)")
	pf.String("dist-dir", "", "directory for assembled and converted documents (default: <root>/dist)")
	pf.BoolP("verbose", "v", false, "log diagnostic detail to stderr")

	for key, flag := range map[string]string{
		"root":        "root",
		"config_dir":  "config-dir",
		"modules_dir": "modules-dir",
		"dist_dir":    "dist-dir",
		"verbose":     "verbose",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	settingsFile, _ := rootCmd.PersistentFlags().GetString("settings")
	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		viper.SetConfigName("docsmith")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docsmith"))
		}
	}

	viper.SetEnvPrefix("DOCSMITH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using settings file:", viper.ConfigFileUsed())
	}
}

// workspaceConfig assembles the workspace layout from flags, settings, and
// environment.
func workspaceConfig() types.WorkspaceConfig {
	return types.WorkspaceConfig{
		Root:       viper.GetString("root"),
		ConfigDir:  viper.GetString("config_dir"),
		ModulesDir: viper.GetString("modules_dir"),
		DistDir:    viper.GetString("dist_dir"),
	}
}

// openStore resolves the workspace and returns its configuration store.
func openStore() (*store.Store, error) {
	ws, err := workspace.New(workspaceConfig())
	if err != nil {
		return nil, err
	}
	logger.Debug("workspace resolved",
		"root", ws.Root(), "configs", ws.ConfigDir(), "modules", ws.ModulesDir(), "dist", ws.DistDir())
	return store.New(ws), nil
}

// requireFlag returns the value of a required string flag.
func requireFlag(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return v, nil
}

// explainNotFound prints the available configurations when err reports a
// missing configuration, and returns err unchanged.
func explainNotFound(err error, st *store.Store) error {
	if !errors.Is(err, store.ErrConfigNotFound) {
		return err
	}
	names, lerr := st.List()
	if lerr != nil || len(names) == 0 {
		fmt.Fprintln(os.Stderr, "No configurations available.")
		return err
	}
	fmt.Fprintln(os.Stderr, "Available configurations:")
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  - %s\n", n)
	}
	return err
}

// recordRun appends r to the workspace history. Failures are warnings.
func recordRun(ctx context.Context, ws *workspace.Workspace, r history.Run) {
	ledger, err := history.Open(ws.StateDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer ledger.Close()
	if r.Output != "" {
		r.Output = ws.Rel(r.Output)
	}
	if _, err := ledger.Record(ctx, r); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	logger.Debug("run recorded", "kind", r.Kind, "document", r.Document)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
