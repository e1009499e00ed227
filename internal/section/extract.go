// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section locates sections in a flat line sequence and derives
// document outlines from heading structure. Boundaries are plain substring
// matches: first match wins, no anchoring, no regular expressions.
package section

import (
	"fmt"
	"strings"
)

// NotFoundMarker returns the placeholder written in place of a section whose
// start pattern does not occur in the document.
func NotFoundMarker(startPattern string) string {
	return fmt.Sprintf("<!-- Section not found: %s -->", startPattern)
}

// IsNotFound reports whether lines is the placeholder produced by Extract
// for a missing section.
func IsNotFound(lines []string) bool {
	return len(lines) == 1 && strings.HasPrefix(lines[0], "<!-- Section not found: ")
}

// Find returns the index of the first line at or after from that contains
// pattern, or -1.
func Find(lines []string, pattern string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.Contains(lines[i], pattern) {
			return i
		}
	}
	return -1
}

// Extract returns the lines of the section that starts at the first line
// containing start and ends before the first later line containing end.
// An empty end, or an end that never matches, extends the section to the
// end of the document. When start does not occur, Extract returns a single
// NotFoundMarker line.
func Extract(lines []string, start, end string) []string {
	from := Find(lines, start, 0)
	if from < 0 {
		return []string{NotFoundMarker(start)}
	}

	to := len(lines)
	if end != "" {
		if i := Find(lines, end, from+1); i >= 0 {
			to = i
		}
	}
	return lines[from:to]
}

// SplitLines splits document text into lines on "\n".
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}
