// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns assembled Markdown documents into DOCX and PDF with
// pandoc. Each conversion runs with the full option set first and retries
// once with a degraded set when that fails.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/pdiddy/docsmith/internal/store"
	"github.com/pdiddy/docsmith/internal/workspace"
	"github.com/pdiddy/docsmith/pkg/types"
)

const (
	// DefaultImage is the container image used when none is configured.
	DefaultImage = "pandoc/latex:latest"

	dateLayout     = "20060102"
	referenceName  = "reference.docx"
	referenceDraft = "reference.md"
	referenceBody  = "# docsmith Document Template\n\nThis is a reference document for styling.\n"
)

// Defaults fills unset conversion settings.
func Defaults(cfg types.ConversionConfig) types.ConversionConfig {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendAuto
	}
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.TOCDepth <= 0 {
		cfg.TOCDepth = 3
	}
	if cfg.PDFEngine == "" {
		cfg.PDFEngine = "xelatex"
	}
	if cfg.FallbackPDFEngine == "" {
		cfg.FallbackPDFEngine = "pdflatex"
	}
	if cfg.MainFont == "" {
		cfg.MainFont = "Arial"
	}
	return cfg
}

// ParseFormats maps a --format value (docx, pdf, or both) to output formats.
func ParseFormats(s string) ([]types.OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return []types.OutputFormat{types.FormatDOCX, types.FormatPDF}, nil
	case string(types.FormatDOCX):
		return []types.OutputFormat{types.FormatDOCX}, nil
	case string(types.FormatPDF):
		return []types.OutputFormat{types.FormatPDF}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want docx, pdf, or both)", s)
	}
}

// Output is the outcome of converting one source to one format.
type Output struct {
	Format   types.OutputFormat
	Path     string
	Degraded bool
	Err      error
}

// Result holds the outcomes of converting one source document.
type Result struct {
	Source  string
	Outputs []Output
}

// HasFailures reports whether any format failed.
func (r *Result) HasFailures() bool {
	for _, o := range r.Outputs {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter runs pandoc over documents in a workspace's dist directory.
type Converter struct {
	store  *store.Store
	runner Runner
	cfg    types.ConversionConfig
	log    *slog.Logger

	// Now supplies the date stamped into output names. Defaults to time.Now.
	Now func() time.Time
	// RetryDelay is the pause before the degraded attempt.
	RetryDelay time.Duration
}

// New returns a Converter. A nil logger discards diagnostics.
func New(st *store.Store, runner Runner, cfg types.ConversionConfig, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		store:      st,
		runner:     runner,
		cfg:        Defaults(cfg),
		log:        log,
		Now:        time.Now,
		RetryDelay: 500 * time.Millisecond,
	}
}

// Workspace returns the workspace the converter operates on.
func (c *Converter) Workspace() *workspace.Workspace {
	return c.store.Workspace()
}

// OutputPath returns the dated output path for source in format.
func (c *Converter) OutputPath(source string, format types.OutputFormat) string {
	ws := c.store.Workspace()
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name := stem + "_" + c.Now().Format(dateLayout) + "." + string(format)
	if format == types.FormatDOCX {
		return filepath.Join(ws.DocxDir(), name)
	}
	return filepath.Join(ws.PDFDir(), name)
}

// Args returns the pandoc arguments for one attempt. The full attempt uses
// every styling option; the degraded attempt drops the DOCX reference
// template, or swaps the PDF engine for the fallback and drops the font.
// reference may be empty when no template is available.
func (c *Converter) Args(source, output string, format types.OutputFormat, reference string, full bool) []string {
	args := []string{source, "-o", output}
	if format == types.FormatDOCX && full && reference != "" {
		args = append(args, "--reference-doc", reference)
	}
	if format == types.FormatPDF {
		engine := c.cfg.PDFEngine
		if !full {
			engine = c.cfg.FallbackPDFEngine
		}
		args = append(args, "--pdf-engine="+engine)
	}
	args = append(args, "--toc", "--toc-depth="+strconv.Itoa(c.cfg.TOCDepth))
	if format == types.FormatPDF {
		args = append(args, "-V", "geometry:margin=1in")
	}
	args = append(args,
		"-V", "colorlinks=true",
		"-V", "linkcolor=blue",
		"-V", "urlcolor=blue",
	)
	if format == types.FormatPDF {
		args = append(args, "-V", "toccolor=black", "-V", "fontsize=11pt")
		if full {
			args = append(args, "-V", "mainfont="+c.cfg.MainFont)
		}
		args = append(args, "--highlight-style=tango")
	}
	return args
}

// ResolveSource finds the assembled Markdown for doc: the configured output
// filename, then a case-insensitive match among dist/*.md, then <doc>.md.
func (c *Converter) ResolveSource(doc string) (string, error) {
	ws := c.store.Workspace()

	cfg, err := c.store.Load(doc)
	switch {
	case err == nil:
		return ws.DistPath(cfg.Filename), nil
	case !errors.Is(err, store.ErrConfigNotFound):
		return "", err
	}

	files, err := distDocuments(ws)
	if err != nil {
		return "", err
	}
	needle := strings.ToLower(doc)
	for _, f := range files {
		if strings.Contains(strings.ToLower(filepath.Base(f)), needle) {
			return f, nil
		}
	}
	return ws.DistPath(doc + workspace.ModuleExt), nil
}

// ConvertDocument converts the assembled document for doc into each format.
// It fails only when the source cannot be found; per-format failures are
// reported in the result.
func (c *Converter) ConvertDocument(ctx context.Context, doc string, formats []types.OutputFormat, w io.Writer) (*Result, error) {
	source, err := c.ResolveSource(doc)
	if err != nil {
		return nil, err
	}
	if !workspace.Exists(source) {
		return nil, fmt.Errorf("%s not found; build the document first", c.store.Workspace().Rel(source))
	}

	fmt.Fprintf(w, "\nConverting %s\n", doc)
	fmt.Fprintf(w, "Source: %s\n", filepath.Base(source))
	return c.convertSource(ctx, source, formats, w), nil
}

// ConvertAll converts every Markdown document in dist/. A document that
// fails in any format is counted as failed; the batch continues.
func (c *Converter) ConvertAll(ctx context.Context, formats []types.OutputFormat, w io.Writer) (BatchResult, error) {
	ws := c.store.Workspace()
	files, err := distDocuments(ws)
	if err != nil {
		return BatchResult{}, err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No markdown files found in dist/")
		return BatchResult{}, nil
	}

	var batch BatchResult
	fmt.Fprintf(w, "Converting %d document(s)\n", len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		fmt.Fprintf(w, "\nProcessing: %s\n", filepath.Base(f))
		if c.convertSource(ctx, f, formats, w).HasFailures() {
			batch.Failed++
		} else {
			batch.Converted++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		batch.Converted, batch.Failed, batch.Total())
	return batch, nil
}

func (c *Converter) convertSource(ctx context.Context, source string, formats []types.OutputFormat, w io.Writer) *Result {
	result := &Result{Source: source}
	for _, format := range formats {
		o := c.convertFormat(ctx, source, format)
		result.Outputs = append(result.Outputs, o)
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", format, o.Err)
		case o.Degraded:
			fmt.Fprintf(w, "created: %s (%s)\n", filepath.Base(o.Path), c.degradedNote(format))
		default:
			fmt.Fprintf(w, "created: %s\n", filepath.Base(o.Path))
		}
	}
	return result
}

func (c *Converter) degradedNote(format types.OutputFormat) string {
	if format == types.FormatPDF {
		return "using " + c.cfg.FallbackPDFEngine
	}
	return "without template"
}

func (c *Converter) convertFormat(ctx context.Context, source string, format types.OutputFormat) Output {
	ws := c.store.Workspace()
	out := Output{Format: format, Path: c.OutputPath(source, format)}
	if err := workspace.EnsureDir(filepath.Dir(out.Path)); err != nil {
		out.Err = err
		return out
	}

	var reference string
	if format == types.FormatDOCX {
		reference = c.referenceDoc(ctx)
	}

	attempt := 0
	out.Err = retry.Do(
		func() error {
			attempt++
			args := c.Args(ws.Rel(source), ws.Rel(out.Path), format, reference, attempt == 1)
			c.log.Debug("running pandoc", "runner", c.runner.Name(), "attempt", attempt, "args", args)
			return c.runner.Run(ctx, ws.Root(), args, nil)
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(c.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug("conversion failed, retrying with degraded options", "format", format, "err", err)
		}),
	)
	out.Degraded = out.Err == nil && attempt > 1
	return out
}

// referenceDoc returns the workspace-relative path of the DOCX reference
// template, generating it from a stub document when missing. It returns ""
// when no template can be produced.
func (c *Converter) referenceDoc(ctx context.Context) string {
	ws := c.store.Workspace()
	path := filepath.Join(ws.StateDir(), referenceName)
	if workspace.Exists(path) {
		return ws.Rel(path)
	}
	if err := workspace.EnsureDir(ws.StateDir()); err != nil {
		c.log.Debug("reference template unavailable", "err", err)
		return ""
	}

	draft := filepath.Join(ws.StateDir(), referenceDraft)
	if err := os.WriteFile(draft, []byte(referenceBody), 0o644); err != nil {
		c.log.Debug("reference template unavailable", "err", err)
		return ""
	}
	defer os.Remove(draft)

	if err := c.runner.Run(ctx, ws.Root(), []string{ws.Rel(draft), "-o", ws.Rel(path)}, nil); err != nil {
		c.log.Debug("generating reference template failed", "err", err)
		return ""
	}
	if !workspace.Exists(path) {
		return ""
	}
	return ws.Rel(path)
}

func distDocuments(ws *workspace.Workspace) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(ws.DistDir(), "*"+workspace.ModuleExt))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", ws.DistDir(), err)
	}
	sort.Strings(files)
	return files, nil
}
