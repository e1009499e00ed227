// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsmith/pkg/types"
)

func TestExtract(t *testing.T) {
	doc := []string{"# Title", "## A", "a1", "a2", "## B", "b1"}

	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "bounded section excludes end line",
			start: "## A",
			end:   "## B",
			want:  []string{"## A", "a1", "a2"},
		},
		{
			name:  "no end runs to end of document",
			start: "## B",
			want:  []string{"## B", "b1"},
		},
		{
			name:  "unmatched end runs to end of document",
			start: "## A",
			end:   "## Z",
			want:  []string{"## A", "a1", "a2", "## B", "b1"},
		},
		{
			name:  "substring match is unanchored",
			start: "A",
			end:   "b1",
			want:  []string{"## A", "a1", "a2", "## B"},
		},
		{
			name:  "adjacent headers yield header only",
			start: "## A",
			end:   "a1",
			want:  []string{"## A"},
		},
		{
			name:  "end matching the start line is ignored",
			start: "## A",
			end:   "## A",
			want:  []string{"## A", "a1", "a2", "## B", "b1"},
		},
		{
			name:  "missing start yields placeholder",
			start: "## Missing",
			end:   "## B",
			want:  []string{"<!-- Section not found: ## Missing -->"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(doc, tt.start, tt.end))
		})
	}
}

func TestExtract_FirstMatchWins(t *testing.T) {
	doc := []string{"## Notes", "first", "## Notes", "second"}
	assert.Equal(t, []string{"## Notes", "first"}, Extract(doc, "## Notes", "## Notes"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound([]string{NotFoundMarker("## X")}))
	assert.False(t, IsNotFound([]string{"## X", "body"}))
	assert.False(t, IsNotFound(nil))
}

func TestScanHeadings(t *testing.T) {
	doc := []string{
		"# Title",
		"text #not a heading",
		"##NoSpace",
		"## Section  ",
		"#### Deep",
		"####### too deep",
		"#   ",
	}
	got := ScanHeadings(doc)
	require.Len(t, got, 3)
	assert.Equal(t, Heading{Line: 0, Level: 1, Text: "Title", Raw: "# Title"}, got[0])
	assert.Equal(t, Heading{Line: 3, Level: 2, Text: "Section", Raw: "## Section"}, got[1])
	assert.Equal(t, Heading{Line: 4, Level: 4, Text: "Deep", Raw: "#### Deep"}, got[2])
	assert.Equal(t, "## Section", got[1].Pattern())
}

func TestHeadingPatternKeepsSpacing(t *testing.T) {
	doc := []string{"##  Alpha", "##\tBeta", "###   Gamma  "}
	got := ScanHeadings(doc)
	require.Len(t, got, 3)

	for i, h := range got {
		assert.Contains(t, doc[i], h.Pattern())
		assert.Equal(t, i, Find(doc, h.Pattern(), 0))
	}
	assert.Equal(t, "Alpha", got[0].Text)
	assert.Equal(t, "##\tBeta", got[1].Pattern())
	assert.Equal(t, "###   Gamma", got[2].Pattern())
}

func TestInfer_IrregularHeadingSpacing(t *testing.T) {
	doc := []string{"# Title", "##  Alpha", "a1", "##\tBeta", "b1"}
	cfg := Infer("d", "d.md", doc)
	require.Len(t, cfg.Outline, 2)

	assert.Equal(t, []string{"alpha", "beta"}, cfg.SectionIDs())
	assert.Equal(t, "Alpha", cfg.Outline[0].Heading)
	assert.Equal(t, []string{"##  Alpha", "a1"},
		Extract(doc, cfg.Outline[0].StartPattern, *cfg.Outline[0].EndPattern))
	assert.Equal(t, []string{"##\tBeta", "b1"}, Extract(doc, cfg.Outline[1].StartPattern, ""))

	stale, _ := IsStale(cfg, doc)
	assert.False(t, stale)
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		pattern string
		level   int
		text    string
		ok      bool
	}{
		{"# Intro", 1, "Intro", true},
		{"## Intro", 2, "Intro", true},
		{"### Intro ", 3, "Intro", true},
		{"#### Intro", 0, "", false},
		{"Intro", 0, "", false},
		{"##Intro", 0, "", false},
		{"##  Intro", 2, "Intro", true},
		{"##\tIntro", 2, "Intro", true},
		{"##", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			level, text, ok := ParsePattern(tt.pattern)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestSelectLevel(t *testing.T) {
	tests := []struct {
		name string
		doc  []string
		want int
	}{
		{
			name: "three level-1 headings win over deeper levels",
			doc:  []string{"# One", "## a", "## b", "### x", "# Two", "# Three"},
			want: 1,
		},
		{
			name: "single title falls through to level 2",
			doc:  []string{"# Title", "## a", "## b"},
			want: 2,
		},
		{
			name: "one level-2 heading falls through to level 3",
			doc:  []string{"# Title", "## only", "### x"},
			want: 3,
		},
		{
			name: "single level-3 heading is enough",
			doc:  []string{"### x"},
			want: 3,
		},
		{
			name: "no headings",
			doc:  []string{"plain", "text"},
			want: 0,
		},
		{
			name: "only deeper headings",
			doc:  []string{"#### a", "#### b"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectLevel(ScanHeadings(tt.doc)))
		})
	}
}

func TestInfer(t *testing.T) {
	doc := []string{
		"# Product Guide",
		"## Getting Started!",
		"text",
		"## API  Reference",
		"more",
		"## FAQ",
	}

	cfg := Infer("guide", "docs/product_guide.md", doc)

	assert.Equal(t, "product guide", cfg.Title)
	assert.Equal(t, "GUIDE", cfg.Prefix)
	assert.Equal(t, "Guide_Document.md", cfg.Filename)
	require.Len(t, cfg.Outline, 3)

	assert.Equal(t, "getting_started", cfg.Outline[0].ID)
	assert.Equal(t, "Getting Started!", cfg.Outline[0].Heading)
	assert.Equal(t, "## Getting Started!", cfg.Outline[0].StartPattern)
	assert.Equal(t, "## API  Reference", cfg.Outline[0].End())

	assert.Equal(t, "api_reference", cfg.Outline[1].ID)
	assert.Equal(t, "## FAQ", cfg.Outline[1].End())

	assert.Equal(t, "faq", cfg.Outline[2].ID)
	assert.Nil(t, cfg.Outline[2].EndPattern)
}

func TestInfer_PrefersLevelOne(t *testing.T) {
	doc := []string{"# Part One", "## a", "## b", "# Part Two", "### c", "# Part Three"}
	cfg := Infer("book", "book.md", doc)
	assert.Equal(t, []string{"part_one", "part_two", "part_three"}, cfg.SectionIDs())
	assert.Equal(t, "# Part Two", cfg.Outline[0].End())
}

func TestInfer_FallsBackToTemplate(t *testing.T) {
	for name, lines := range map[string][]string{
		"no source":   nil,
		"no headings": {"just", "text"},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Infer("notes", "notes.md", lines)
			assert.Equal(t, []string{"overview", "content"}, cfg.SectionIDs())
			assert.Equal(t, "## Overview", cfg.Outline[0].StartPattern)
			assert.Equal(t, "## Next Section", cfg.Outline[0].End())
			assert.Nil(t, cfg.Outline[1].EndPattern)
			assert.Equal(t, "Notes Document", cfg.Title)
		})
	}
}

func TestInfer_DuplicateAndEmptyIDs(t *testing.T) {
	doc := []string{"## Notes", "## Notes", "## ???", "## Notes_2"}
	cfg := Infer("d", "d.md", doc)
	assert.Equal(t, []string{"notes", "notes_2", "section_3", "notes_2_2"}, cfg.SectionIDs())
}

func TestIsStale(t *testing.T) {
	doc := []string{"# Title", "## Overview", "## Details", "### Notes", "##  Spaced"}

	tests := []struct {
		name      string
		patterns  []string
		wantStale bool
		wantIDs   []string
	}{
		{
			name:     "all headings present",
			patterns: []string{"## Overview", "## Details", "### Notes"},
		},
		{
			name:      "heading renamed",
			patterns:  []string{"## Overview", "## Specifics"},
			wantStale: true,
			wantIDs:   []string{"s1"},
		},
		{
			name:      "heading present at a different level",
			patterns:  []string{"### Overview"},
			wantStale: true,
			wantIDs:   []string{"s0"},
		},
		{
			name:     "pattern keeps the heading's spacing",
			patterns: []string{"##  Spaced"},
		},
		{
			name:      "text matches but pattern does not occur in the line",
			patterns:  []string{"## Overview", "## Spaced"},
			wantStale: true,
			wantIDs:   []string{"s1"},
		},
		{
			name:     "non-heading patterns are not checked",
			patterns: []string{"<!-- begin -->", "Overview"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &types.Configuration{}
			for i, p := range tt.patterns {
				cfg.Outline = append(cfg.Outline, types.SectionDescriptor{
					ID:           "s" + string(rune('0'+i)),
					StartPattern: p,
				})
			}
			stale, ids := IsStale(cfg, doc)
			assert.Equal(t, tt.wantStale, stale)
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSectionID(t *testing.T) {
	assert.Equal(t, "release_notes_v2", SectionID("Release Notes: v2", 0))
	assert.Equal(t, "section_4", SectionID("!!!", 3))
	assert.Equal(t, "café_menu", SectionID("Café & Menu", 0))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Api Guide", DisplayName("api_guide"))
	assert.Equal(t, "User Manual", DisplayName("user-MANUAL"))
	assert.Equal(t, "", DisplayName(""))
	assert.Equal(t, "Untitled_Document.md", DefaultFilename(""))
}
