// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch rebuilds a document whenever one of its inputs changes:
// its configuration, its module map, or any module in its resolved order.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/docsmith/internal/build"
	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc rebuilds the watched document.
type RebuildFunc func(ctx context.Context) error

// Watcher watches one document's inputs.
type Watcher struct {
	store   *store.Store
	name    string
	rebuild RebuildFunc
	log     *slog.Logger

	Debounce time.Duration
}

// New returns a Watcher for the named document. A nil logger discards
// diagnostics.
func New(st *store.Store, name string, rebuild RebuildFunc, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{store: st, name: name, rebuild: rebuild, log: log, Debounce: DefaultDebounce}
}

// Relevant reports whether a change to path affects the document. Module
// membership is resolved on every call so that edits to the configuration
// or map take effect immediately.
func (w *Watcher) Relevant(path string) bool {
	ws := w.store.Workspace()
	path = filepath.Clean(path)
	if path == ws.ConfigPath(w.name) || path == ws.MapPath(w.name) {
		return true
	}
	if filepath.Dir(path) != ws.ModulesDir() || filepath.Ext(path) != workspace.ModuleExt {
		return false
	}

	cfg, err := w.store.Load(w.name)
	if err != nil {
		return false
	}
	m, err := w.store.LoadMap(w.name)
	if err != nil {
		m = nil
	}
	for _, id := range build.ResolveOrder(cfg, m) {
		if path == ws.ModulePath(cfg.Prefix, id) {
			return true
		}
	}
	return false
}

// Run watches the configuration and modules directories until ctx is
// cancelled. Rebuild errors are reported to out and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, out io.Writer) error {
	ws := w.store.Workspace()
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range []string{ws.ConfigDir(), ws.ModulesDir()} {
		if err := workspace.EnsureDir(dir); err != nil {
			return err
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	fmt.Fprintf(out, "Watching %s (ctrl-c to stop)\n", w.name)
	return w.loop(ctx, fw.Events, fw.Errors, out)
}

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, out io.Writer) error {
	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Op&changeOps == 0 || !w.Relevant(ev.Name) {
				continue
			}
			w.log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.Debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)

		case <-timer.C:
			if err := w.rebuild(ctx); err != nil {
				fmt.Fprintf(out, "rebuild failed: %v\n", err)
			}
		}
	}
}
