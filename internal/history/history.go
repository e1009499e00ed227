// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of split, build, and convert runs
// so that a workspace can answer "when was this document last built, and
// how complete was it".
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"
)

const (
	dbFile = "history.db"

	// timeLayout has fixed width so that stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Kind names the operation a run performed.
type Kind string

const (
	KindSplit   Kind = "split"
	KindBuild   Kind = "build"
	KindConvert Kind = "convert"
)

// Run is one recorded operation. Succeeded and Failed count items: modules
// written or found, and modules missing or formats that failed.
type Run struct {
	ID        string    `yaml:"id"`
	Kind      Kind      `yaml:"kind"`
	Document  string    `yaml:"document"`
	At        time.Time `yaml:"at"`
	Succeeded int       `yaml:"succeeded"`
	Failed    int       `yaml:"failed"`
	Output    string    `yaml:"output,omitempty"`
}

// Ledger is the run history of one workspace.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger database in dir.
func Open(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	l := &Ledger{db: db, now: time.Now}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			document TEXT NOT NULL,
			at TEXT NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			output TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_document ON runs(document)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores r, assigning an id and timestamp when unset, and returns
// the stored run.
func (l *Ledger) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.At.IsZero() {
		r.At = l.now()
	}
	r.At = r.At.UTC()

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, document, at, succeeded, failed, output) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Kind), r.Document, r.At.Format(timeLayout), r.Succeeded, r.Failed, r.Output,
	)
	if err != nil {
		return r, fmt.Errorf("recording %s run for %s: %w", r.Kind, r.Document, err)
	}
	return r, nil
}

// Recent returns up to limit runs, newest first. A non-empty doc restricts
// the result to that document. limit <= 0 means no limit.
func (l *Ledger) Recent(ctx context.Context, doc string, limit int) ([]Run, error) {
	var (
		where []string
		args  []any
	)
	if doc != "" {
		where = append(where, "document = ?")
		args = append(args, doc)
	}

	query := `SELECT id, kind, document, at, succeeded, failed, COALESCE(output, '') FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY at DESC, seq DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r    Run
			kind string
			at   string
		)
		if err := rows.Scan(&r.ID, &kind, &r.Document, &at, &r.Succeeded, &r.Failed, &r.Output); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Kind = Kind(kind)
		if r.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parsing timestamp of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Print writes runs as an aligned table.
func Print(w io.Writer, runs []Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tDOCUMENT\tOK\tFAILED\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.At.Local().Format("2006-01-02 15:04:05"), r.Kind, r.Document, r.Succeeded, r.Failed, r.Output)
	}
	tw.Flush()
}

// ExportYAML writes runs as a YAML list.
func ExportYAML(w io.Writer, runs []Run) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if runs == nil {
		runs = []Run{}
	}
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("encoding runs: %w", err)
	}
	return enc.Close()
}
