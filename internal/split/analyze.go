// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/docsmith/internal/section"
	"github.com/pdiddy/docsmith/internal/store"
)

// PatternMatch reports where a configured section's start pattern occurs
// among the document's heading lines.
type PatternMatch struct {
	ID      string
	Pattern string
	Found   bool
	Heading section.Heading
}

// Analysis describes a document's heading structure and, when a
// configuration exists, how its sections map onto that structure.
type Analysis struct {
	Lines    int
	Words    int
	Headings []section.Heading
	Matches  []PatternMatch
}

// Analyze inspects the document at inputPath without writing anything. If a
// configuration exists for name, each section's start pattern is checked
// against the heading lines. A malformed configuration is reported as an
// error.
func (s *Splitter) Analyze(name, inputPath string, w io.Writer) (*Analysis, error) {
	lines, err := ReadLines(inputPath)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Lines:    len(lines),
		Headings: section.ScanHeadings(lines),
	}
	for _, l := range lines {
		a.Words += len(strings.Fields(l))
	}

	fmt.Fprintf(w, "Document analysis: %s\n", inputPath)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "\nDocument structure:")
	for _, h := range a.Headings {
		indent := strings.Repeat("  ", h.Level-1)
		fmt.Fprintf(w, "Line %4d: %s%s\n", h.Line+1, indent, h.Pattern())
	}

	fmt.Fprintln(w, "\nDocument statistics:")
	fmt.Fprintf(w, "  Total lines:    %d\n", a.Lines)
	fmt.Fprintf(w, "  Total words:    %d\n", a.Words)
	fmt.Fprintf(w, "  Total headings: %d\n", len(a.Headings))

	cfg, err := s.store.Load(name)
	if errors.Is(err, store.ErrConfigNotFound) {
		fmt.Fprintf(w, "\nNo configuration named %s; split will infer one (level %d headings).\n",
			name, section.SelectLevel(a.Headings))
		return a, nil
	}
	if err != nil {
		return a, err
	}

	fmt.Fprintf(w, "\nConfiguration mapping (%s):\n", name)
	for _, sec := range cfg.Outline {
		m := PatternMatch{ID: sec.ID, Pattern: sec.StartPattern}
		for _, h := range a.Headings {
			if strings.Contains(lines[h.Line], sec.StartPattern) {
				m.Found = true
				m.Heading = h
				break
			}
		}
		a.Matches = append(a.Matches, m)

		if m.Found {
			fmt.Fprintf(w, "  found:   %s: %q at line %d (%s)\n", sec.ID, sec.StartPattern, m.Heading.Line+1, m.Heading.Text)
		} else {
			fmt.Fprintf(w, "  missing: %s: %q not found in headings\n", sec.ID, sec.StartPattern)
		}
	}
	return a, nil
}
