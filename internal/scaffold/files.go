// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scaffold

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

// LoadExternal reads a configuration from a JSON or YAML file outside the
// workspace and validates it like any stored configuration.
func LoadExternal(path string) (*types.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &store.ValidationError{Path: path, Err: err}
		}
		if data, err = yaml.Marshal(doc); err != nil {
			return nil, fmt.Errorf("re-encoding %s: %w", path, err)
		}
	}
	return store.ParseConfiguration(path, data)
}

// PlaceholderContent returns the starter content of a module file.
func PlaceholderContent(s types.SectionDescriptor) string {
	return fmt.Sprintf("# %s\n\n<!-- Content for %s section -->\n", s.Heading, s.ID)
}

// WriteModules creates a placeholder module file for every section of cfg.
// Existing files are left untouched. It returns the number of files created.
func WriteModules(ws *workspace.Workspace, cfg *types.Configuration, w io.Writer) (int, error) {
	if err := workspace.EnsureDir(ws.ModulesDir()); err != nil {
		return 0, err
	}
	created := 0
	for _, s := range cfg.Outline {
		path := ws.ModulePath(cfg.Prefix, s.ID)
		filename := filepath.Base(path)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				fmt.Fprintf(w, "exists:  %s\n", filename)
				continue
			}
			return created, fmt.Errorf("creating %s: %w", filename, err)
		}
		_, err = f.WriteString(PlaceholderContent(s))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return created, fmt.Errorf("writing %s: %w", filename, err)
		}
		created++
		fmt.Fprintf(w, "created: %s\n", filename)
	}
	return created, nil
}
