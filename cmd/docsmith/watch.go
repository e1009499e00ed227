// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild a document whenever its inputs change",
	Long: `Watch builds the document once, then rebuilds it each time its
configuration, module map, or one of its modules is written. Changes
arriving in quick succession trigger a single rebuild.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	name, err := requireFlag(cmd, "doc")
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	b := newBuilder(st)
	if _, err := b.Build(name, os.Stdout); err != nil {
		return explainNotFound(err, st)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(st, name, func(context.Context) error {
		_, err := b.Build(name, os.Stdout)
		return err
	}, logger)
	if d, _ := cmd.Flags().GetDuration("debounce"); d > 0 {
		w.Debounce = d
	}
	return w.Run(ctx, os.Stdout)
}

func init() {
	watchCmd.Flags().String("doc", "", "name of the document configuration (required)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before rebuilding")

	rootCmd.AddCommand(watchCmd)
}
