// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scaffold constructs new document configurations. Every
// constructor is a pure function of its input; prompting and persistence
// belong to the caller.
package scaffold

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/docsmith/pkg/types"
)

// SectionAnswer describes one section of a new configuration. StartPattern
// defaults to "## " + Heading.
type SectionAnswer struct {
	ID           string
	Heading      string
	StartPattern string
}

// Answers is the full answer set for a new configuration. Empty Filename
// and Prefix are derived from Title.
type Answers struct {
	Title    string
	Filename string
	Prefix   string
	Sections []SectionAnswer
}

var templates = map[string]Answers{
	"basic": {
		Title:    "Basic Document Template",
		Filename: "Basic_Document.md",
		Prefix:   "BASIC",
		Sections: []SectionAnswer{
			{ID: "introduction", Heading: "Introduction"},
			{ID: "main-content", Heading: "Main Content"},
			{ID: "conclusion", Heading: "Conclusion"},
		},
	},
	"technical": {
		Title:    "Technical Document Template",
		Filename: "Technical_Document.md",
		Prefix:   "TECH",
		Sections: []SectionAnswer{
			{ID: "overview", Heading: "Technical Overview", StartPattern: "## Overview"},
			{ID: "architecture", Heading: "System Architecture", StartPattern: "## Architecture"},
			{ID: "implementation", Heading: "Implementation Details", StartPattern: "## Implementation"},
			{ID: "testing", Heading: "Testing Strategy", StartPattern: "## Testing"},
			{ID: "deployment", Heading: "Deployment Guide", StartPattern: "## Deployment"},
		},
	},
}

// Templates returns the names of the predefined templates.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromTemplate builds a configuration from a predefined template.
func FromTemplate(name string) (*types.Configuration, error) {
	a, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found (available: %s)", name, strings.Join(Templates(), ", "))
	}
	return FromAnswers(a)
}

// FromAnswers builds a configuration from an answer set. Section ids are
// slugged, and each section's end pattern is the next section's start
// pattern; the last section runs to end of file.
func FromAnswers(a Answers) (*types.Configuration, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(a.Sections) == 0 {
		return nil, fmt.Errorf("at least one section is required")
	}

	cfg := &types.Configuration{
		Filename: strings.TrimSpace(a.Filename),
		Prefix:   strings.ToUpper(strings.TrimSpace(a.Prefix)),
		Title:    title,
	}
	if cfg.Filename == "" {
		cfg.Filename = strings.ReplaceAll(title, " ", "_") + ".md"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = GeneratePrefix(title)
	}

	seen := make(map[string]bool, len(a.Sections))
	for i, s := range a.Sections {
		id := Slug(s.ID)
		if id == "" {
			return nil, fmt.Errorf("section %d: id %q is empty after normalisation", i+1, s.ID)
		}
		if seen[id] {
			return nil, fmt.Errorf("section %d: duplicate id %q", i+1, id)
		}
		seen[id] = true

		heading := strings.TrimSpace(s.Heading)
		if heading == "" {
			heading = s.ID
		}
		start := strings.TrimSpace(s.StartPattern)
		if start == "" {
			start = "## " + heading
		}
		if i > 0 {
			cfg.Outline[i-1].EndPattern = types.Pattern(start)
		}
		cfg.Outline = append(cfg.Outline, types.SectionDescriptor{
			ID:           id,
			Heading:      heading,
			StartPattern: start,
		})
	}
	return cfg, nil
}

// ParseSection parses an "id=heading" pair. A bare id uses itself as the
// heading.
func ParseSection(s string) (SectionAnswer, error) {
	id, heading, _ := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if id == "" {
		return SectionAnswer{}, fmt.Errorf("section %q: missing id", s)
	}
	heading = strings.TrimSpace(heading)
	if heading == "" {
		heading = id
	}
	return SectionAnswer{ID: id, Heading: heading}, nil
}

var (
	prefixWord = regexp.MustCompile(`\b[A-Z][a-z]+|\b[A-Z]+\b`)
	notUpper   = regexp.MustCompile(`[^A-Z]`)
	unsafeChar = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[-\s]+`)
)

const maxPrefix = 4

// GeneratePrefix derives a module prefix from a title: the initials of up to
// four capitalised words, or the first four letters of the title when it has
// fewer than two such words.
func GeneratePrefix(title string) string {
	words := prefixWord.FindAllString(title, -1)
	var prefix string
	if len(words) >= 2 {
		if len(words) > maxPrefix {
			words = words[:maxPrefix]
		}
		for _, w := range words {
			prefix += w[:1]
		}
	} else {
		prefix = notUpper.ReplaceAllString(strings.ToUpper(title), "")
		if len(prefix) > maxPrefix {
			prefix = prefix[:maxPrefix]
		}
	}
	if prefix == "" {
		return "DOC"
	}
	return strings.ToUpper(prefix)
}

// Slug converts text to a lowercase, hyphen-separated name safe for file
// names and section ids.
func Slug(s string) string {
	s = unsafeChar.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(strings.ToLower(s), "-")
}
