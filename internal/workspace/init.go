// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const changelogFile = "CHANGELOG.md"

const changelogTemplate = `# Changelog

All notable changes to these documents are recorded in this file.

## [Unreleased]

### Added
- Modular document structure
- Configuration-driven split and build
`

// Init creates the workspace directories and a starter changelog. Existing
// directories and files are left untouched.
func (w *Workspace) Init(out io.Writer) error {
	for _, dir := range w.Dirs() {
		if err := EnsureDir(dir); err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s/\n", w.Rel(dir))
	}

	changelog := filepath.Join(w.root, changelogDir, changelogFile)
	if !Exists(changelog) {
		if err := os.WriteFile(changelog, []byte(changelogTemplate), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", changelogFile, err)
		}
		fmt.Fprintf(out, "  %s\n", w.Rel(changelog))
	}

	fmt.Fprintln(out, "Workspace initialized.")
	return nil
}
