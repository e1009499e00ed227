// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

func TestGeneratePrefix(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"User Guide", "UG"},
		{"API Reference Manual", "ARM"},
		{"Product Requirements Document For Launch Readiness", "PRDF"},
		{"roadmap", "ROAD"},
		{"Roadmap", "ROAD"},
		{"v2", "V"},
		{"", "DOC"},
		{"123", "DOC"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, GeneratePrefix(tt.title))
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Executive Summary!", "executive-summary"},
		{"  road--map  ", "road-map"},
		{"snake_case", "snake_case"},
		{"a/b\\c", "abc"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestFromAnswers(t *testing.T) {
	cfg, err := FromAnswers(Answers{
		Title: "Release Plan",
		Sections: []SectionAnswer{
			{ID: "Goals", Heading: "Goals"},
			{ID: "time line", Heading: "Timeline", StartPattern: "### Timeline"},
			{ID: "risks"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Release_Plan.md", cfg.Filename)
	assert.Equal(t, "RP", cfg.Prefix)
	assert.Equal(t, []string{"goals", "time-line", "risks"}, cfg.SectionIDs())

	require.NotNil(t, cfg.Outline[0].EndPattern)
	assert.Equal(t, "### Timeline", *cfg.Outline[0].EndPattern)
	require.NotNil(t, cfg.Outline[1].EndPattern)
	assert.Equal(t, "## risks", *cfg.Outline[1].EndPattern)
	assert.Nil(t, cfg.Outline[2].EndPattern)
	assert.Equal(t, "risks", cfg.Outline[2].Heading)
}

func TestFromAnswers_Errors(t *testing.T) {
	tests := []struct {
		name string
		a    Answers
	}{
		{name: "no title", a: Answers{Sections: []SectionAnswer{{ID: "a"}}}},
		{name: "no sections", a: Answers{Title: "T"}},
		{name: "empty id", a: Answers{Title: "T", Sections: []SectionAnswer{{ID: "???"}}}},
		{name: "duplicate id", a: Answers{Title: "T", Sections: []SectionAnswer{{ID: "A"}, {ID: "a"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAnswers(tt.a)
			assert.Error(t, err)
		})
	}
}

func TestFromTemplate(t *testing.T) {
	assert.Equal(t, []string{"basic", "technical"}, Templates())

	cfg, err := FromTemplate("technical")
	require.NoError(t, err)
	assert.Equal(t, "TECH", cfg.Prefix)
	assert.Equal(t, "Technical_Document.md", cfg.Filename)
	assert.Equal(t, []string{"overview", "architecture", "implementation", "testing", "deployment"}, cfg.SectionIDs())
	assert.Equal(t, "Technical Overview", cfg.Outline[0].Heading)
	assert.Equal(t, "## Architecture", *cfg.Outline[0].EndPattern)

	basic, err := FromTemplate("basic")
	require.NoError(t, err)
	assert.Equal(t, "## Main Content", basic.Outline[1].StartPattern)
	assert.Equal(t, "## Conclusion", *basic.Outline[1].EndPattern)

	_, err = FromTemplate("novel")
	assert.ErrorContains(t, err, "basic, technical")
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("intro=Introduction")
	require.NoError(t, err)
	assert.Equal(t, SectionAnswer{ID: "intro", Heading: "Introduction"}, s)

	s, err = ParseSection("summary")
	require.NoError(t, err)
	assert.Equal(t, "summary", s.Heading)

	_, err = ParseSection("=Heading")
	assert.Error(t, err)
}

func TestLoadExternal(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
	"filename": "Doc.md",
	"prefix": "DOC",
	"title": "Doc",
	"document_outline": [
		{"id": "a", "heading": "A", "start_pattern": "## A", "end_pattern": "## B"},
		{"id": "b", "heading": "B", "start_pattern": "## B", "end_pattern": null}
	]
}`), 0o644))
	cfg, err := LoadExternal(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.SectionIDs())
	assert.Nil(t, cfg.Outline[1].EndPattern)

	yamlPath := filepath.Join(dir, "doc.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("filename: D.md\nprefix: D\ntitle: D\ndocument_outline:\n  - id: x\n    start_pattern: '# X'\n"), 0o644))
	cfg, err = LoadExternal(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "D", cfg.Prefix)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"title": "no outline"}`), 0o644))
	_, err = LoadExternal(badPath)
	var verr *store.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = LoadExternal(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteModules(t *testing.T) {
	ws, err := workspace.New(types.WorkspaceConfig{Root: t.TempDir()})
	require.NoError(t, err)
	cfg, err := FromTemplate("basic")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(ws.ModulesDir(), 0o755))
	existing := ws.ModulePath("BASIC", "conclusion")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o644))

	var log bytes.Buffer
	n, err := WriteModules(ws, cfg, &log)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(ws.ModulePath("BASIC", "introduction"))
	require.NoError(t, err)
	assert.Equal(t, "# Introduction\n\n<!-- Content for introduction section -->\n", string(data))

	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
	assert.Contains(t, log.String(), "exists:  BASIC-conclusion.md")
}
