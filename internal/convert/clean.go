// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var datedOutput = regexp.MustCompile(`_(\d{8})\.(docx|pdf)$`)

// Clean removes dated outputs in dist/docx and dist/pdfs whose date is
// more than days before today. Files without a date stamp are kept.
func (c *Converter) Clean(days int, w io.Writer) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("days must not be negative, got %d", days)
	}
	now := c.Now()
	cutoff := now.AddDate(0, 0, -days)
	ws := c.store.Workspace()

	removed := 0
	for _, dir := range []string{ws.DocxDir(), ws.PDFDir()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			m := datedOutput.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			stamp, err := time.ParseInLocation(dateLayout, m[1], now.Location())
			if err != nil || !stamp.Before(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return removed, fmt.Errorf("removing %s: %w", e.Name(), err)
			}
			removed++
			fmt.Fprintf(w, "removed: %s\n", e.Name())
		}
	}

	if removed > 0 {
		fmt.Fprintf(w, "\nCleaned %d old file(s)\n", removed)
	} else {
		fmt.Fprintln(w, "\nNo old files to clean")
	}
	return removed, nil
}
