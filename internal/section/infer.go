// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdiddy/docsmith/pkg/types"
)

const (
	templateFirstPattern  = "## Overview"
	templateSecondPattern = "## Next Section"
)

// maxInferLevel is the deepest heading level inference considers.
const maxInferLevel = 3

// Template returns the generic two-section configuration used when a
// document offers no usable headings.
func Template(name string) *types.Configuration {
	return &types.Configuration{
		Filename: DefaultFilename(name),
		Prefix:   DefaultPrefix(name),
		Title:    DisplayName(name) + " Document",
		Outline: []types.SectionDescriptor{
			{
				ID:           "overview",
				Heading:      "Overview",
				StartPattern: templateFirstPattern,
				EndPattern:   types.Pattern(templateSecondPattern),
			},
			{
				ID:           "content",
				Heading:      "Main Content",
				StartPattern: templateSecondPattern,
			},
		},
	}
}

// SelectLevel picks the heading level that best describes the document's
// sections: level 1 when there is more than one level-1 heading, else level
// 2 when there is more than one level-2 heading, else level 3 when there is
// any. It returns 0 when no level qualifies.
func SelectLevel(headings []Heading) int {
	switch {
	case len(HeadingsAt(headings, 1)) > 1:
		return 1
	case len(HeadingsAt(headings, 2)) > 1:
		return 2
	case len(HeadingsAt(headings, 3)) > 0:
		return 3
	}
	return 0
}

// Infer derives a configuration for name from the heading structure of
// lines. sourcePath names the source document and supplies the title.
// A nil lines, or a document without usable headings, yields Template.
func Infer(name, sourcePath string, lines []string) *types.Configuration {
	if lines == nil {
		return Template(name)
	}

	headings := ScanHeadings(lines)
	level := SelectLevel(headings)
	if level == 0 {
		return Template(name)
	}
	selected := HeadingsAt(headings, level)

	cfg := &types.Configuration{
		Filename: DefaultFilename(name),
		Prefix:   DefaultPrefix(name),
		Title:    TitleFromPath(sourcePath),
		Outline:  make([]types.SectionDescriptor, 0, len(selected)),
	}
	if cfg.Title == "" {
		cfg.Title = DisplayName(name) + " Document"
	}

	used := make(map[string]bool, len(selected))
	for i, h := range selected {
		sec := types.SectionDescriptor{
			ID:           uniqueID(SectionID(h.Text, i), used),
			Heading:      h.Text,
			StartPattern: h.Pattern(),
		}
		if i+1 < len(selected) {
			sec.EndPattern = types.Pattern(selected[i+1].Pattern())
		}
		cfg.Outline = append(cfg.Outline, sec)
	}
	return cfg
}

// IsStale reports whether any section's start pattern no longer names a
// heading at its level in lines: the heading text must be present, and the
// pattern must still occur in that heading's line. Patterns without a "#",
// "##", or "###" marker are not checked. The returned ids list the offending
// sections.
func IsStale(cfg *types.Configuration, lines []string) (bool, []string) {
	headings := ScanHeadings(lines)

	var stale []string
	for _, sec := range cfg.Outline {
		level, text, ok := ParsePattern(sec.StartPattern)
		if !ok {
			continue
		}
		if !namesHeading(headings, lines, level, text, sec.StartPattern) {
			stale = append(stale, sec.ID)
		}
	}
	return len(stale) > 0, stale
}

func namesHeading(headings []Heading, lines []string, level int, text, pattern string) bool {
	for _, h := range headings {
		if h.Level == level && h.Text == text && strings.Contains(lines[h.Line], pattern) {
			return true
		}
	}
	return false
}

// SectionID derives a filesystem-safe id from heading text: lower-cased,
// non-alphanumerics stripped, whitespace runs collapsed to underscores.
// index is used to name headings that reduce to nothing.
func SectionID(text string, index int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	id := strings.Join(strings.Fields(b.String()), "_")
	if id == "" {
		return fmt.Sprintf("section_%d", index+1)
	}
	return id
}

func uniqueID(id string, used map[string]bool) string {
	candidate := id
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
	used[candidate] = true
	return candidate
}

// DisplayName turns a configuration name such as "api_guide" into
// "Api Guide".
func DisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// DefaultFilename returns the assembled document filename for name.
func DefaultFilename(name string) string {
	display := strings.ReplaceAll(DisplayName(name), " ", "_")
	if display == "" {
		display = "Untitled"
	}
	return display + "_Document.md"
}

// DefaultPrefix returns the module prefix for name.
func DefaultPrefix(name string) string {
	return strings.ToUpper(name)
}

// TitleFromPath derives a document title from a source filename:
// "release_notes-v2.md" becomes "release notes v2".
func TitleFromPath(path string) string {
	if path == "" {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return strings.Join(strings.Fields(stem), " ")
}
