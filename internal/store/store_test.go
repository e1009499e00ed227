// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	ws, err := workspace.New(types.WorkspaceConfig{Root: t.TempDir()})
	require.NoError(t, err)
	return New(ws)
}

func writeConfig(t *testing.T, s *Store, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(s.Workspace().ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(s.Workspace().ConfigPath(name), []byte(content), 0o644))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	cfg := &types.Configuration{
		Filename: "Guide.md",
		Prefix:   "GUIDE",
		Title:    "Guide",
		Outline: []types.SectionDescriptor{
			{ID: "intro", Heading: "Intro", StartPattern: "## Intro", EndPattern: types.Pattern("## Body"), Description: "Opening"},
			{ID: "body", Heading: "Body", StartPattern: "## Body"},
		},
	}
	require.NoError(t, s.Save("guide", cfg))
	assert.True(t, s.Exists("guide"))

	got, err := s.Load("guide")
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Nil(t, got.Outline[1].EndPattern)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantInvalid bool
		wantIDs     []string
	}{
		{
			name: "valid with null end pattern",
			yaml: `filename: Doc.md
prefix: DOC
title: Doc
document_outline:
  - id: overview
    heading: Overview
    start_pattern: "## Overview"
    end_pattern: "## Details"
  - id: details
    heading: Details
    start_pattern: "## Details"
    end_pattern: null
`,
			wantIDs: []string{"overview", "details"},
		},
		{
			name: "end pattern omitted",
			yaml: `filename: Doc.md
prefix: DOC
title: Doc
document_outline:
  - id: only
    start_pattern: "# Only"
`,
			wantIDs: []string{"only"},
		},
		{
			name:        "missing prefix",
			yaml:        "filename: Doc.md\ntitle: Doc\ndocument_outline: []\n",
			wantInvalid: true,
		},
		{
			name: "section without start pattern",
			yaml: `filename: Doc.md
prefix: DOC
title: Doc
document_outline:
  - id: a
`,
			wantInvalid: true,
		},
		{
			name: "id with path separator",
			yaml: `filename: Doc.md
prefix: DOC
title: Doc
document_outline:
  - id: ../escape
    start_pattern: "## A"
`,
			wantInvalid: true,
		},
		{
			name: "duplicate ids",
			yaml: `filename: Doc.md
prefix: DOC
title: Doc
document_outline:
  - id: a
    start_pattern: "## A"
  - id: a
    start_pattern: "## B"
`,
			wantInvalid: true,
		},
		{
			name:        "not yaml",
			yaml:        "{{{bad",
			wantInvalid: true,
		},
		{
			name:        "outline is not a list",
			yaml:        "filename: Doc.md\nprefix: DOC\ntitle: Doc\ndocument_outline: nope\n",
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			writeConfig(t, s, "doc", tt.yaml)

			cfg, err := s.Load("doc")
			if tt.wantInvalid {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, cfg.SectionIDs())
		})
	}
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.False(t, s.Exists("nope"))
}

func TestList(t *testing.T) {
	s := testStore(t)

	_, err := s.List()
	assert.ErrorIs(t, err, ErrNoConfigDir)

	writeConfig(t, s, "zeta", "x: 1\n")
	writeConfig(t, s, "alpha", "x: 1\n")
	require.NoError(t, os.WriteFile(filepath.Join(s.Workspace().ConfigDir(), "README.md"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(s.Workspace().ConfigDir(), "sub.yaml"), 0o755))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestModuleMap(t *testing.T) {
	s := testStore(t)

	m, err := s.LoadMap("doc")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.False(t, s.HasMap("doc"))

	want := types.NewModuleMap("doc", "DOC")
	want.Add(0, types.SectionDescriptor{ID: "a", Heading: "A", StartPattern: "## A", EndPattern: types.Pattern("## B")})
	want.Add(1, types.SectionDescriptor{ID: "b", Heading: "B", StartPattern: "## B"})
	require.NoError(t, s.SaveMap("doc", want))
	assert.True(t, s.HasMap("doc"))

	got, err := s.LoadMap("doc")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, got.Modules["b"].Index)
}

func TestLoadMap_OrderAbsent(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.MkdirAll(s.Workspace().ModulesDir(), 0o755))
	require.NoError(t, os.WriteFile(s.Workspace().MapPath("doc"), []byte("document_name: doc\nprefix: DOC\n"), 0o644))

	m, err := s.LoadMap("doc")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Nil(t, m.ModuleOrder)
}

func TestLoadMap_Invalid(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.MkdirAll(s.Workspace().ModulesDir(), 0o755))
	require.NoError(t, os.WriteFile(s.Workspace().MapPath("doc"), []byte("module_order: 7\n"), 0o644))

	_, err := s.LoadMap("doc")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
