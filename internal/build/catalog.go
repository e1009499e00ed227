// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/docsmith/pkg/types"
)

// CreateMap writes a module map for the named configuration whose order is
// the outline order. Any existing map is replaced.
func (b *Builder) CreateMap(name string) (*types.ModuleMap, error) {
	cfg, err := b.store.Load(name)
	if err != nil {
		return nil, err
	}
	m := types.NewModuleMap(name, cfg.Prefix)
	for i, sec := range cfg.Outline {
		m.Add(i, sec)
	}
	if err := b.store.SaveMap(name, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Entry summarises one configuration for listing.
type Entry struct {
	Name     string
	Prefix   string
	Filename string
	Modules  int
	HasMap   bool
	Err      error
}

// Catalog describes every configuration in the workspace. Configurations
// that fail to load are included with Err set.
func (b *Builder) Catalog() ([]Entry, error) {
	names, err := b.store.List()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e := Entry{Name: name, HasMap: b.store.HasMap(name)}
		cfg, err := b.store.Load(name)
		if err != nil {
			e.Err = err
		} else {
			e.Prefix = cfg.Prefix
			e.Filename = cfg.Filename
			e.Modules = len(cfg.Outline)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// PrintCatalog writes a human-readable listing of entries to w.
func PrintCatalog(w io.Writer, entries []Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No configurations found.")
		return
	}
	fmt.Fprintln(w, "Available document configurations:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, e := range entries {
		fmt.Fprintf(w, "\n%s:\n", e.Name)
		if e.Err != nil {
			fmt.Fprintf(w, "  Error:   %v\n", e.Err)
			continue
		}
		fmt.Fprintf(w, "  Prefix:  %s\n", e.Prefix)
		fmt.Fprintf(w, "  Output:  %s\n", e.Filename)
		fmt.Fprintf(w, "  Modules: %d\n", e.Modules)
		if e.HasMap {
			fmt.Fprintln(w, "  Map:     yes")
		} else {
			fmt.Fprintln(w, "  Map:     no")
		}
	}
}
