// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite inventory of a docs tree so that read-when
// hints can be searched without re-reading every file.
//
// Refreshing the index compares each file's modification time with the
// stored one and re-extracts only new or changed files. Rows for files that
// disappeared are removed.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docs-list/internal/frontmatter"
	"github.com/pdiddy/docs-list/internal/walk"
	"github.com/pdiddy/docs-list/pkg/types"
)

// Store manages the inventory database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS docs (
			path TEXT PRIMARY KEY,
			summary TEXT NOT NULL DEFAULT '',
			read_when TEXT NOT NULL DEFAULT '[]',
			reason TEXT NOT NULL DEFAULT '',
			file_mod_time TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_docs_reason ON docs(reason)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RefreshSummary holds counts from an index refresh.
type RefreshSummary struct {
	Indexed int
	Updated int
	Skipped int
	Removed int
}

// Total returns the number of files present in the tree.
func (r RefreshSummary) Total() int {
	return r.Indexed + r.Updated + r.Skipped
}

// Refresh brings the index in line with the Markdown files under root,
// printing one line per changed file to w. Read errors abort the refresh;
// changes made so far are kept.
func (s *Store) Refresh(ctx context.Context, root string, exclude []string, w io.Writer) (RefreshSummary, error) {
	var summary RefreshSummary

	paths, err := walk.Markdown(root, exclude)
	if err != nil {
		return summary, err
	}

	stored, err := s.modTimes(ctx)
	if err != nil {
		return summary, err
	}

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		full := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			return summary, err
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		prev, known := stored[rel]
		delete(stored, rel)
		if known && prev == modTime {
			summary.Skipped++
			continue
		}

		md, err := frontmatter.Extract(full)
		if err != nil {
			return summary, err
		}
		if err := s.upsert(ctx, types.Entry{Path: rel, Metadata: md}, modTime); err != nil {
			return summary, fmt.Errorf("indexing %s: %w", rel, err)
		}

		if known {
			fmt.Fprintf(w, "updated  %s\n", rel)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed  %s\n", rel)
			summary.Indexed++
		}
	}

	for rel := range stored {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE path = ?`, rel); err != nil {
			return summary, fmt.Errorf("removing %s: %w", rel, err)
		}
		fmt.Fprintf(w, "removed  %s\n", rel)
		summary.Removed++
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, removed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Removed)
	return summary, nil
}

func (s *Store) modTimes(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, file_mod_time FROM docs`)
	if err != nil {
		return nil, fmt.Errorf("reading indexing status: %w", err)
	}
	defer rows.Close()

	times := make(map[string]string)
	for rows.Next() {
		var path, modTime string
		if err := rows.Scan(&path, &modTime); err != nil {
			return nil, fmt.Errorf("scanning indexing status: %w", err)
		}
		times[path] = modTime
	}
	return times, rows.Err()
}

func (s *Store) upsert(ctx context.Context, e types.Entry, modTime string) error {
	hints := e.ReadWhen
	if hints == nil {
		hints = []string{}
	}
	hintsJSON, err := json.Marshal(hints)
	if err != nil {
		return fmt.Errorf("encoding hints: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO docs (path, summary, read_when, reason, file_mod_time)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			summary=excluded.summary, read_when=excluded.read_when,
			reason=excluded.reason, file_mod_time=excluded.file_mod_time`,
		e.Path, e.Summary, string(hintsJSON), e.Reason(), modTime,
	)
	return err
}

// All returns every indexed entry ordered by path.
func (s *Store) All(ctx context.Context) ([]types.Entry, error) {
	return s.query(ctx, `SELECT path, summary, read_when, reason FROM docs ORDER BY path`)
}

// Match returns the entries whose summary or one of whose read-when hints
// contains term, ignoring case. Only entries with a summary are considered.
// Hints are compared one at a time after decoding, so a term never matches
// across two hints.
func (s *Store) Match(ctx context.Context, term string) ([]types.Entry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("match term is empty")
	}
	entries, err := s.query(ctx,
		`SELECT path, summary, read_when, reason FROM docs WHERE summary != '' ORDER BY path`)
	if err != nil {
		return nil, err
	}

	needle := fold(term)
	var matched []types.Entry
	for _, e := range entries {
		if matches(e, needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func matches(e types.Entry, needle string) bool {
	if strings.Contains(fold(e.Summary), needle) {
		return true
	}
	for _, h := range e.ReadWhen {
		if strings.Contains(fold(h), needle) {
			return true
		}
	}
	return false
}

// fold lowers s for case-insensitive comparison, including non-ASCII text.
func fold(s string) string {
	return strings.ToLower(s)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying docs: %w", err)
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		var (
			e                 types.Entry
			hintsJSON, reason string
		)
		if err := rows.Scan(&e.Path, &e.Summary, &hintsJSON, &reason); err != nil {
			return nil, fmt.Errorf("scanning doc row: %w", err)
		}
		if err := json.Unmarshal([]byte(hintsJSON), &e.ReadWhen); err != nil {
			return nil, fmt.Errorf("decoding hints for %s: %w", e.Path, err)
		}
		if len(e.ReadWhen) == 0 {
			e.ReadWhen = nil
		}
		e.Err = frontmatter.ReasonError(reason)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
