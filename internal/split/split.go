// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split decomposes a source document into module files according to
// a configuration, inferring the configuration from the document's headings
// when none exists or when the existing one has gone stale.
package split

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docsmith/internal/section"
	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

// sharedPrefix names modules that belong to no single document.
const sharedPrefix = "Shared-"

// ModuleStatus is the outcome of writing one module.
type ModuleStatus string

const (
	StatusWritten  ModuleStatus = "written"
	StatusNotFound ModuleStatus = "not_found"
	StatusFailed   ModuleStatus = "failed"
)

// ModuleResult records the outcome for one section.
type ModuleResult struct {
	ID       string
	Filename string
	Status   ModuleStatus
	Words    int
	Err      error
}

// ConfigSource describes where the configuration used for a split came from.
type ConfigSource string

const (
	SourceExisting    ConfigSource = "existing"
	SourceInferred    ConfigSource = "inferred"
	SourceRegenerated ConfigSource = "regenerated"
)

// Result summarises a split run.
type Result struct {
	Config  *types.Configuration
	Source  ConfigSource
	Modules []ModuleResult
	Map     *types.ModuleMap
	MapPath string
}

// Count returns the number of modules with status st.
func (r *Result) Count(st ModuleStatus) int {
	n := 0
	for _, m := range r.Modules {
		if m.Status == st {
			n++
		}
	}
	return n
}

// HasFailures reports whether any module could not be written.
func (r *Result) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Splitter writes module files and module maps into a workspace.
type Splitter struct {
	store *store.Store
	log   *slog.Logger
}

// New returns a Splitter over st. A nil logger discards diagnostics.
func New(st *store.Store, log *slog.Logger) *Splitter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Splitter{store: st, log: log}
}

// ReadLines reads a document and splits it into lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return section.SplitLines(string(data)), nil
}

// ResolveConfig returns the configuration for name, validated against the
// source lines. A missing configuration is inferred from the document; an
// existing configuration whose heading patterns no longer match the
// document is regenerated. Inferred configurations are persisted.
func (s *Splitter) ResolveConfig(name, sourcePath string, lines []string, w io.Writer) (*types.Configuration, ConfigSource, error) {
	cfg, err := s.store.Load(name)
	switch {
	case err == nil:
		stale, ids := section.IsStale(cfg, lines)
		if !stale {
			return cfg, SourceExisting, nil
		}
		fmt.Fprintf(w, "Configuration %s is out of date with %s (sections: %s)\n",
			name, filepath.Base(sourcePath), strings.Join(ids, ", "))
		fmt.Fprintln(w, "Regenerating configuration from document headings...")
		cfg = section.Infer(name, sourcePath, lines)
		if err := s.store.Save(name, cfg); err != nil {
			return nil, "", err
		}
		return cfg, SourceRegenerated, nil

	case errors.Is(err, store.ErrConfigNotFound):
		fmt.Fprintf(w, "Configuration not found: %s\n", s.store.Workspace().Rel(s.store.Workspace().ConfigPath(name)))
		fmt.Fprintln(w, "Creating configuration from document headings...")
		cfg = section.Infer(name, sourcePath, lines)
		if err := s.store.Save(name, cfg); err != nil {
			return nil, "", err
		}
		fmt.Fprintf(w, "created: %s (%d sections)\n",
			s.store.Workspace().Rel(s.store.Workspace().ConfigPath(name)), len(cfg.Outline))
		return cfg, SourceInferred, nil

	default:
		return nil, "", err
	}
}

// Split decomposes the document at inputPath into module files using the
// named configuration, then rewrites the configuration's module map from
// scratch. A section whose start pattern is absent still produces a module
// holding a not-found marker; the run continues through the whole outline.
func (s *Splitter) Split(name, inputPath string, w io.Writer) (*Result, error) {
	lines, err := ReadLines(inputPath)
	if err != nil {
		return nil, err
	}

	cfg, source, err := s.ResolveConfig(name, inputPath, lines, w)
	if err != nil {
		return nil, err
	}
	ws := s.store.Workspace()
	if err := workspace.EnsureDir(ws.ModulesDir()); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\nSplitting %s using %s configuration\n", filepath.Base(inputPath), name)
	fmt.Fprintf(w, "Prefix: %s\n", cfg.Prefix)
	fmt.Fprintln(w, strings.Repeat("-", 50))

	result := &Result{
		Config: cfg,
		Source: source,
		Map:    types.NewModuleMap(name, cfg.Prefix),
	}

	for i, sec := range cfg.Outline {
		mr := s.writeModule(cfg.Prefix, sec, lines)
		result.Modules = append(result.Modules, mr)
		result.Map.Add(i, sec)

		switch mr.Status {
		case StatusWritten:
			fmt.Fprintf(w, "created:   %s (%d words)\n", mr.Filename, mr.Words)
		case StatusNotFound:
			fmt.Fprintf(w, "not found: %s (pattern %q)\n", mr.Filename, sec.StartPattern)
		case StatusFailed:
			fmt.Fprintf(w, "failed:    %s (%v)\n", mr.Filename, mr.Err)
		}
	}

	if err := s.store.SaveMap(name, result.Map); err != nil {
		return result, err
	}
	result.MapPath = ws.MapPath(name)

	written := result.Count(StatusWritten)
	notFound := result.Count(StatusNotFound)
	failed := result.Count(StatusFailed)
	fmt.Fprintf(w, "\nSplit summary: %d written, %d not found, %d failed (total: %d)\n",
		written, notFound, failed, len(result.Modules))
	fmt.Fprintf(w, "Module map: %s\n", ws.Rel(result.MapPath))

	fmt.Fprintln(w, "\nModule order:")
	for i, id := range result.Map.ModuleOrder {
		fmt.Fprintf(w, "  %d. %s - %s\n", i+1, id, result.Map.Modules[id].Heading)
	}
	return result, nil
}

func (s *Splitter) writeModule(prefix string, sec types.SectionDescriptor, lines []string) ModuleResult {
	path := s.store.Workspace().ModulePath(prefix, sec.ID)
	mr := ModuleResult{ID: sec.ID, Filename: filepath.Base(path)}

	body := section.Extract(lines, sec.StartPattern, sec.End())
	content := strings.TrimRight(strings.Join(body, "\n"), "\n") + "\n"

	s.log.Debug("writing module", "id", sec.ID, "path", path, "lines", len(body))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		mr.Status = StatusFailed
		mr.Err = fmt.Errorf("writing module: %w", err)
		return mr
	}

	mr.Words = len(strings.Fields(content))
	if section.IsNotFound(body) {
		mr.Status = StatusNotFound
	} else {
		mr.Status = StatusWritten
	}
	return mr
}

// SharedModules lists module files that belong to no single document,
// sorted by name.
func SharedModules(ws *workspace.Workspace) ([]string, error) {
	entries, err := os.ReadDir(ws.ModulesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading modules directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), sharedPrefix) && filepath.Ext(e.Name()) == workspace.ModuleExt {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
