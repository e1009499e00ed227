// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace resolves the on-disk layout of a docsmith workspace.
// A Workspace is constructed once per invocation and passed to every stage
// that reads or writes configurations, module maps, modules, or outputs.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docsmith/pkg/types"
)

const (
	defaultConfigDir  = "configs"
	defaultModulesDir = "modules"
	defaultDistDir    = "dist"

	docxDir      = "docx"
	pdfDir       = "pdfs"
	changelogDir = "changelogs"
	stateDir     = ".docsmith"

	// ModuleExt is the extension of module files and assembled documents.
	ModuleExt = ".md"

	configExt = ".yaml"
	mapSuffix = "_map.yaml"
)

// Workspace holds resolved absolute directories for one workspace root.
type Workspace struct {
	root       string
	configDir  string
	modulesDir string
	distDir    string
}

// New resolves cfg against its root. Empty fields take their defaults.
func New(cfg types.WorkspaceConfig) (*Workspace, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root %s: %w", root, err)
	}
	return &Workspace{
		root:       abs,
		configDir:  resolve(abs, cfg.ConfigDir, defaultConfigDir),
		modulesDir: resolve(abs, cfg.ModulesDir, defaultModulesDir),
		distDir:    resolve(abs, cfg.DistDir, defaultDistDir),
	}, nil
}

func resolve(root, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

func (w *Workspace) Root() string       { return w.root }
func (w *Workspace) ConfigDir() string  { return w.configDir }
func (w *Workspace) ModulesDir() string { return w.modulesDir }
func (w *Workspace) DistDir() string    { return w.distDir }
func (w *Workspace) DocxDir() string    { return filepath.Join(w.distDir, docxDir) }
func (w *Workspace) PDFDir() string     { return filepath.Join(w.distDir, pdfDir) }
func (w *Workspace) StateDir() string   { return filepath.Join(w.root, stateDir) }

// ConfigPath returns the path of the named configuration document.
func (w *Workspace) ConfigPath(name string) string {
	return filepath.Join(w.configDir, name+configExt)
}

// MapPath returns the path of the named configuration's module map.
func (w *Workspace) MapPath(name string) string {
	return filepath.Join(w.modulesDir, name+mapSuffix)
}

// ModuleFilename returns the module filename for a section: {prefix}-{id}.md.
func ModuleFilename(prefix, id string) string {
	return prefix + "-" + id + ModuleExt
}

// ModulePath returns the path of a module file.
func (w *Workspace) ModulePath(prefix, id string) string {
	return filepath.Join(w.modulesDir, ModuleFilename(prefix, id))
}

// DistPath returns the path of an assembled document.
func (w *Workspace) DistPath(filename string) string {
	return filepath.Join(w.distDir, filename)
}

// Rel returns path relative to the workspace root, or path itself when it
// lies outside the root.
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Dirs lists every directory a fully initialised workspace contains.
func (w *Workspace) Dirs() []string {
	return []string{
		w.configDir,
		w.modulesDir,
		w.distDir,
		w.DocxDir(),
		w.PDFDir(),
		filepath.Join(w.root, changelogDir),
	}
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
