// Package cache persists lint results between runs in a SQLite database so
// unchanged files are not parsed again.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrNotOpen is returned when the store has no database connection.
var ErrNotOpen = errors.New("database not opened")

// Store is a SQLite-backed lint result cache. Entries are valid only for
// the fingerprint the store was opened with.
type Store struct {
	db          *sql.DB
	path        string
	fingerprint string
}

// Open opens the cache database at path, creating parent directories and
// applying migrations. Use ":memory:" for an in-memory cache.
func Open(ctx context.Context, path, fingerprint string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	s := &Store{db: db, path: path, fingerprint: fingerprint}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection. The schema must already exist.
func NewWithDB(db *sql.DB, fingerprint string) *Store {
	return &Store{db: db, fingerprint: fingerprint}
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Fingerprint returns the configuration fingerprint entries are keyed on.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the cached diagnostics for path when both the content hash
// and the fingerprint match.
func (s *Store) Get(ctx context.Context, path, hash string) ([]lint.Diagnostic, bool, error) {
	if s.db == nil {
		return nil, false, ErrNotOpen
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT diagnostics FROM lint_results WHERE path = ? AND content_hash = ? AND fingerprint = ?`,
		path, hash, s.fingerprint,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry for %s: %w", path, err)
	}

	var diags []lint.Diagnostic
	if err := json.Unmarshal([]byte(raw), &diags); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry for %s: %w", path, err)
	}
	return diags, true, nil
}

// Put stores the diagnostics for path, replacing any previous entry.
func (s *Store) Put(ctx context.Context, path, hash string, diags []lint.Diagnostic) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if diags == nil {
		diags = []lint.Diagnostic{}
	}
	raw, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lint_results (path, content_hash, fingerprint, diagnostics, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   fingerprint = excluded.fingerprint,
		   diagnostics = excluded.diagnostics,
		   updated_at = excluded.updated_at`,
		path, hash, s.fingerprint, string(raw), now(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry for %s: %w", path, err)
	}
	return nil
}

// Delete removes the entry for path.
func (s *Store) Delete(ctx context.Context, path string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lint_results WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete cache entry for %s: %w", path, err)
	}
	return nil
}

// Clear removes every entry and run record.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpen
	}
	for _, table := range []string{"lint_results", "runs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Path    string `json:"path" yaml:"path"`
	Entries int    `json:"entries" yaml:"entries"`
	Stale   int    `json:"stale" yaml:"stale"` // written under another fingerprint
	LastRun *Run   `json:"last_run,omitempty" yaml:"last_run,omitempty"`
}

// Stats counts entries and loads the most recent run.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	st := &Stats{Path: s.path}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN fingerprint != ? THEN 1 ELSE 0 END), 0) FROM lint_results`,
		s.fingerprint,
	).Scan(&st.Entries, &st.Stale)
	if err != nil {
		return nil, fmt.Errorf("failed to count cache entries: %w", err)
	}

	last, err := s.LastRun(ctx)
	if err != nil {
		return nil, err
	}
	st.LastRun = last
	return st, nil
}

// timeFormat is fixed width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func now() string {
	return time.Now().UTC().Format(timeFormat)
}
