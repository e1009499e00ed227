// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build reassembles module files into complete documents. Module
// order comes from the configuration's module map when one exists and
// defines an order, otherwise from the configuration outline.
package build

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

const (
	// Generator identifies the tool in the assembled document's header.
	Generator = "docsmith"

	separator       = "\n---\n\n"
	timestampLayout = "2006-01-02 15:04:05"
)

// ResolveOrder returns the module ids to assemble. A module map that
// defines module_order is authoritative, even when the order is empty;
// otherwise the outline order is used.
func ResolveOrder(cfg *types.Configuration, m *types.ModuleMap) []string {
	if m != nil && m.ModuleOrder != nil {
		return m.ModuleOrder
	}
	return cfg.SectionIDs()
}

// Result describes one build.
type Result struct {
	Name       string
	OutputPath string
	Order      []string
	Found      []string
	Missing    []string
}

// Total returns the number of modules in the resolved order.
func (r *Result) Total() int { return len(r.Order) }

// Complete reports whether every resolved module was found.
func (r *Result) Complete() bool { return len(r.Missing) == 0 }

// Builder assembles documents inside a workspace.
type Builder struct {
	store *store.Store
	log   *slog.Logger

	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time

	// AfterBuild, when set, is called with every document that was written.
	AfterBuild func(*Result)
}

// New returns a Builder over st. A nil logger discards diagnostics.
func New(st *store.Store, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{store: st, log: log, Now: time.Now}
}

// resolve loads the configuration and module map for name and computes the
// resolved order.
func (b *Builder) resolve(name string) (*types.Configuration, []string, error) {
	cfg, err := b.store.Load(name)
	if err != nil {
		return nil, nil, err
	}
	m, err := b.store.LoadMap(name)
	if err != nil {
		return nil, nil, err
	}
	if m != nil {
		b.log.Debug("using module map", "name", name, "modules", len(m.ModuleOrder))
	}
	return cfg, ResolveOrder(cfg, m), nil
}

// Build assembles the named document into dist/. Missing modules are
// skipped and reported; they never abort the build.
func (b *Builder) Build(name string, w io.Writer) (*Result, error) {
	cfg, order, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	ws := b.store.Workspace()

	result := &Result{
		Name:       name,
		OutputPath: ws.DistPath(cfg.Filename),
		Order:      order,
	}

	fmt.Fprintf(w, "\nBuilding %s\n", name)
	fmt.Fprintf(w, "Output: %s\n", cfg.Filename)
	fmt.Fprintln(w, strings.Repeat("-", 50))

	var body strings.Builder
	for _, id := range order {
		filename := workspace.ModuleFilename(cfg.Prefix, id)
		data, err := readModule(ws.ModulePath(cfg.Prefix, id))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				b.log.Debug("reading module", "file", filename, "err", err)
			}
			result.Missing = append(result.Missing, id)
			fmt.Fprintf(w, "missing: %s\n", filename)
			continue
		}
		if len(result.Found) > 0 {
			body.WriteString(separator)
		}
		body.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			body.WriteString("\n")
		}
		result.Found = append(result.Found, id)
		fmt.Fprintf(w, "added:   %s\n", filename)
	}

	var doc strings.Builder
	fmt.Fprintf(&doc, "# %s\n\n", cfg.Title)
	fmt.Fprintf(&doc, "<!-- This document was automatically generated from modular components by %s -->\n", Generator)
	fmt.Fprintf(&doc, "<!-- Generated on: %s -->\n\n", b.Now().Format(timestampLayout))
	doc.WriteString(body.String())

	if err := workspace.EnsureDir(ws.DistDir()); err != nil {
		return result, err
	}
	if err := os.WriteFile(result.OutputPath, []byte(doc.String()), 0o644); err != nil {
		return result, fmt.Errorf("writing %s: %w", cfg.Filename, err)
	}

	fmt.Fprintf(w, "\nBuilt %s with %d/%d modules\n", cfg.Filename, len(result.Found), result.Total())
	if b.AfterBuild != nil {
		b.AfterBuild(result)
	}
	return result, nil
}

// BatchResult holds the outcome of building every configuration.
type BatchResult struct {
	Built      int
	Incomplete int
	Failed     int
}

// Total returns the number of configurations processed.
func (r BatchResult) Total() int {
	return r.Built + r.Incomplete + r.Failed
}

// HasFailures reports whether any configuration failed to build.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// BuildAll builds every configuration in the workspace. A configuration
// that cannot be loaded or written is reported and skipped. The returned
// error is non-nil only when the configuration directory cannot be read.
func (b *Builder) BuildAll(w io.Writer) (BatchResult, error) {
	names, err := b.store.List()
	if err != nil {
		return BatchResult{}, err
	}

	var batch BatchResult
	fmt.Fprintf(w, "Found %d document configuration(s)\n", len(names))
	for _, name := range names {
		result, err := b.Build(name, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "\nfailed:  %s (%v)\n", name, err)
			batch.Failed++
		case !result.Complete():
			batch.Incomplete++
		default:
			batch.Built++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d built, %d incomplete, %d failed (total: %d)\n",
		batch.Built, batch.Incomplete, batch.Failed, batch.Total())
	return batch, nil
}

// readModule returns the content of the module file at path. Anything that
// is not a readable regular file counts as missing, for build and validate
// alike.
func readModule(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return io.ReadAll(f)
}
