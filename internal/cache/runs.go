package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run records one cached lint invocation.
type Run struct {
	ID          string     `json:"id" yaml:"id"`
	StartedAt   time.Time  `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Files       int        `json:"files" yaml:"files"`
	Cached      int        `json:"cached" yaml:"cached"`
	Issues      int        `json:"issues" yaml:"issues"`
}

// BeginRun records the start of a lint run and returns its ID.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", ErrNotOpen
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, fingerprint, started_at) VALUES (?, ?, ?)`,
		id, s.fingerprint, now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun stores the totals of a finished run.
func (s *Store) CompleteRun(ctx context.Context, id string, files, cached, issues int) error {
	if s.db == nil {
		return ErrNotOpen
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ?, files = ?, cached = ?, issues = ? WHERE id = ?`,
		now(), files, cached, issues, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// LastRun returns the most recently started run, or nil when none exist.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	var (
		run         Run
		startedAt   string
		completedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, files, cached, issues
		 FROM runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&run.ID, &startedAt, &completedAt, &run.Files, &run.Cached, &run.Issues)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	if run.StartedAt, err = time.Parse(timeFormat, startedAt); err != nil {
		return nil, fmt.Errorf("invalid run start time %q: %w", startedAt, err)
	}
	if completedAt.Valid {
		t, err := time.Parse(timeFormat, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("invalid run completion time %q: %w", completedAt.String, err)
		}
		run.CompletedAt = &t
	}
	return &run, nil
}
