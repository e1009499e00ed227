// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/docsmith/internal/workspace"
)

// Report lists which modules of a configuration's resolved order exist.
type Report struct {
	Name    string
	Present []string
	Missing []string
}

// Complete reports whether every resolved module exists.
func (r *Report) Complete() bool { return len(r.Missing) == 0 }

// Validate checks that every module in the named configuration's resolved
// order exists on disk as a readable file, using the same check as Build.
func (b *Builder) Validate(name string, w io.Writer) (*Report, error) {
	cfg, order, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	ws := b.store.Workspace()

	fmt.Fprintf(w, "\nValidating modules for %s\n", name)
	fmt.Fprintln(w, strings.Repeat("-", 50))

	report := &Report{Name: name}
	for _, id := range order {
		filename := workspace.ModuleFilename(cfg.Prefix, id)
		if _, err := readModule(ws.ModulePath(cfg.Prefix, id)); err == nil {
			report.Present = append(report.Present, id)
			fmt.Fprintf(w, "present: %s\n", filename)
		} else {
			report.Missing = append(report.Missing, id)
			fmt.Fprintf(w, "missing: %s\n", filename)
		}
	}

	if report.Complete() {
		fmt.Fprintf(w, "\nAll %d modules present for %s\n", len(order), name)
	} else {
		fmt.Fprintf(w, "\n%d of %d modules missing for %s\n", len(report.Missing), len(order), name)
	}
	return report, nil
}

// ValidateAll validates every configuration in the workspace. It returns
// true only if every configuration loads and is complete. The returned
// error is non-nil only when the configuration directory cannot be read.
func (b *Builder) ValidateAll(w io.Writer) (bool, error) {
	names, err := b.store.List()
	if err != nil {
		return false, err
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No configurations found.")
		return false, nil
	}

	complete := 0
	for _, name := range names {
		report, err := b.Validate(name, w)
		if err != nil {
			fmt.Fprintf(w, "\nfailed:  %s (%v)\n", name, err)
			continue
		}
		if report.Complete() {
			complete++
		}
	}

	fmt.Fprintf(w, "\nValidation summary: %d/%d documents complete\n", complete, len(names))
	return complete == len(names), nil
}
