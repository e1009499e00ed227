// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"regexp"
	"strings"
)

// headingPattern matches ATX headings of levels 1-6 anchored at line start.
var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Heading is a heading line found in a document.
type Heading struct {
	// Line is the zero-based line index.
	Line  int
	Level int
	Text  string
	// Raw is the heading line without trailing whitespace. It keeps the
	// exact spacing between the marker and the text.
	Raw string
}

// Marker returns the heading's leading marker, e.g. "##".
func (h Heading) Marker() string {
	return strings.Repeat("#", h.Level)
}

// Pattern returns the start pattern that locates this heading. It is the
// literal heading line, so it is always a substring of that line whatever
// whitespace separates the marker from the text.
func (h Heading) Pattern() string {
	if h.Raw != "" {
		return h.Raw
	}
	return h.Marker() + " " + h.Text
}

// ScanHeadings returns every heading in lines in document order.
func ScanHeadings(lines []string) []Heading {
	var out []Heading
	for i, line := range lines {
		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		out = append(out, Heading{
			Line:  i,
			Level: len(m[1]),
			Text:  text,
			Raw:   strings.TrimRight(line, " \t\r"),
		})
	}
	return out
}

// HeadingsAt filters headings to a single level.
func HeadingsAt(headings []Heading, level int) []Heading {
	var out []Heading
	for _, h := range headings {
		if h.Level == level {
			out = append(out, h)
		}
	}
	return out
}

// ParsePattern splits a start pattern of the form "# Text", "## Text", or
// "### Text" into its heading level and text. The marker may be followed by
// any run of spaces or tabs. ok is false for patterns that do not begin with
// one of those markers.
func ParsePattern(pattern string) (level int, text string, ok bool) {
	level = len(pattern) - len(strings.TrimLeft(pattern, "#"))
	if level < 1 || level > maxInferLevel {
		return 0, "", false
	}
	rest := pattern[level:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}
