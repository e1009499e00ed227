// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists document configurations and module maps as YAML
// documents inside a workspace. Documents are validated against a JSON
// schema on load.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

var (
	// ErrConfigNotFound is returned when no configuration exists for a name.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrNoConfigDir is returned when the workspace has no configuration
	// directory at all.
	ErrNoConfigDir = errors.New("configuration directory not found")
)

// Store reads and writes configurations and module maps for one workspace.
type Store struct {
	ws *workspace.Workspace
}

// New returns a Store rooted at ws.
func New(ws *workspace.Workspace) *Store {
	return &Store{ws: ws}
}

// Workspace returns the workspace the store operates on.
func (s *Store) Workspace() *workspace.Workspace {
	return s.ws
}

// Exists reports whether a configuration document exists for name.
func (s *Store) Exists(name string) bool {
	return workspace.Exists(s.ws.ConfigPath(name))
}

// Load reads and validates the named configuration. A missing document
// yields an error wrapping ErrConfigNotFound.
func (s *Store) Load(name string) (*types.Configuration, error) {
	path := s.ws.ConfigPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("reading configuration %s: %w", name, err)
	}
	return ParseConfiguration(path, data)
}

// ParseConfiguration decodes and validates a configuration document. path
// is used only for error messages.
func ParseConfiguration(path string, data []byte) (*types.Configuration, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}
	if err := validate(configValidator, path, doc); err != nil {
		return nil, err
	}

	var cfg types.Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}

	seen := make(map[string]bool, len(cfg.Outline))
	for _, sec := range cfg.Outline {
		if seen[sec.ID] {
			return nil, &ValidationError{Path: path, Err: fmt.Errorf("duplicate section id %q", sec.ID)}
		}
		seen[sec.ID] = true
	}
	return &cfg, nil
}

// Save writes cfg as the named configuration, replacing any existing one.
func (s *Store) Save(name string, cfg *types.Configuration) error {
	if err := workspace.EnsureDir(s.ws.ConfigDir()); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration %s: %w", name, err)
	}
	if err := os.WriteFile(s.ws.ConfigPath(name), data, 0o644); err != nil {
		return fmt.Errorf("writing configuration %s: %w", name, err)
	}
	return nil
}

// List returns the names of all configurations, sorted. It returns
// ErrNoConfigDir when the configuration directory does not exist.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.ws.ConfigDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoConfigDir, s.ws.ConfigDir())
		}
		return nil, fmt.Errorf("reading configuration directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// HasMap reports whether a module map exists for name.
func (s *Store) HasMap(name string) bool {
	return workspace.Exists(s.ws.MapPath(name))
}

// LoadMap reads the named module map. It returns (nil, nil) when no map
// exists.
func (s *Store) LoadMap(name string) (*types.ModuleMap, error) {
	path := s.ws.MapPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading module map %s: %w", name, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}
	if err := validate(mapValidator, path, doc); err != nil {
		return nil, err
	}

	var m types.ModuleMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}
	return &m, nil
}

// SaveMap writes m as the named module map, replacing any existing map.
func (s *Store) SaveMap(name string, m *types.ModuleMap) error {
	if err := workspace.EnsureDir(s.ws.ModulesDir()); err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding module map %s: %w", name, err)
	}
	if err := os.WriteFile(s.ws.MapPath(name), data, 0o644); err != nil {
		return fmt.Errorf("writing module map %s: %w", name, err)
	}
	return nil
}
