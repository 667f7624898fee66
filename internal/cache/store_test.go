package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func setupTestStore(t *testing.T, fingerprint string) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:", fingerprint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleDiagnostics() []lint.Diagnostic {
	return []lint.Diagnostic{{
		Code:     "no-var",
		Message:  "`var` keyword is not allowed.",
		Hint:     "Use `let` or `const` instead",
		Filename: "src/main.ts",
		Range: syntax.Range{
			Start: syntax.Position{Line: 1, Column: 1, Offset: 0},
			End:   syntax.Position{Line: 1, Column: 11, Offset: 10},
		},
	}}
}

func TestStore_Migrate(t *testing.T) {
	store := setupTestStore(t, "fp")
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Migrating again is a no-op.
	require.NoError(t, store.Migrate(ctx))
}

func TestStore_GetPut(t *testing.T) {
	store := setupTestStore(t, "fp")
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "src/main.ts", "h1")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache")

	require.NoError(t, store.Put(ctx, "src/main.ts", "h1", sampleDiagnostics()))

	diags, ok, err := store.Get(ctx, "src/main.ts", "h1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleDiagnostics(), diags)

	_, ok, err = store.Get(ctx, "src/main.ts", "h2")
	require.NoError(t, err)
	assert.False(t, ok, "content hash changed")

	// Replacing an entry keeps one row per path.
	require.NoError(t, store.Put(ctx, "src/main.ts", "h2", nil))
	diags, ok, err = store.Get(ctx, "src/main.ts", "h2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, diags)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)

	require.NoError(t, store.Delete(ctx, "src/main.ts"))
	_, ok, err = store.Get(ctx, "src/main.ts", "h2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_FingerprintMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	ctx := context.Background()

	first, err := Open(ctx, path, "fp-1")
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "a.ts", "h", sampleDiagnostics()))
	require.NoError(t, first.Close())

	second, err := Open(ctx, path, "fp-2")
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	_, ok, err := second.Get(ctx, "a.ts", "h")
	require.NoError(t, err)
	assert.False(t, ok, "entries from another configuration are ignored")

	stats, err := second.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, stats.Path)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.Stale)
}

func TestStore_Runs(t *testing.T) {
	store := setupTestStore(t, "fp")
	ctx := context.Background()

	last, err := store.LastRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	first, err := store.BeginRun(ctx)
	require.NoError(t, err)
	require.NoError(t, store.CompleteRun(ctx, first, 3, 0, 2))

	second, err := store.BeginRun(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	require.NoError(t, store.CompleteRun(ctx, second, 3, 3, 2))

	last, err = store.LastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second, last.ID)
	assert.Equal(t, 3, last.Files)
	assert.Equal(t, 3, last.Cached)
	assert.Equal(t, 2, last.Issues)
	require.NotNil(t, last.CompletedAt)
	assert.False(t, last.CompletedAt.Before(last.StartedAt))

	assert.Error(t, store.CompleteRun(ctx, "missing", 0, 0, 0))
}

func TestStore_Clear(t *testing.T) {
	store := setupTestStore(t, "fp")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.ts", "h", nil))
	_, err := store.BeginRun(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
	assert.Nil(t, stats.LastRun)
}

func TestStore_NotOpen(t *testing.T) {
	store := &Store{}
	ctx := context.Background()

	_, _, err := store.Get(ctx, "a.ts", "h")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Put(ctx, "a.ts", "h", nil), ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(ctx), ErrNotOpen)
	_, err = store.BeginRun(ctx)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestStore_DatabaseErrors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(s *Store) error
		errSubstr string
	}{
		{
			name: "put fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO lint_results").WillReturnError(errors.New("disk full"))
			},
			call: func(s *Store) error {
				return s.Put(context.Background(), "a.ts", "h", nil)
			},
			errSubstr: "failed to write cache entry for a.ts: disk full",
		},
		{
			name: "get fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT diagnostics FROM lint_results").
					WithArgs("a.ts", "h", "fp").
					WillReturnError(errors.New("locked"))
			},
			call: func(s *Store) error {
				_, _, err := s.Get(context.Background(), "a.ts", "h")
				return err
			},
			errSubstr: "failed to read cache entry for a.ts: locked",
		},
		{
			name: "corrupt entry",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT diagnostics FROM lint_results").
					WillReturnRows(sqlmock.NewRows([]string{"diagnostics"}).AddRow("{not json"))
			},
			call: func(s *Store) error {
				_, _, err := s.Get(context.Background(), "a.ts", "h")
				return err
			},
			errSubstr: "corrupt cache entry for a.ts",
		},
		{
			name: "begin run fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO runs").WillReturnError(errors.New("readonly"))
			},
			call: func(s *Store) error {
				_, err := s.BeginRun(context.Background())
				return err
			},
			errSubstr: "failed to create run: readonly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			err = tt.call(NewWithDB(db, "fp"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("a", "b"), Fingerprint("a", "b"))
	assert.NotEqual(t, Fingerprint("a", "b"), Fingerprint("b", "a"))
	assert.NotEqual(t, Fingerprint("ab"), Fingerprint("a", "b"))
	assert.Len(t, Fingerprint(), 64)
}

func TestBuildID_DevelopmentBuildHashesExecutable(t *testing.T) {
	// Test binaries are development builds.
	sum, err := executableHash()
	require.NoError(t, err)
	assert.Len(t, sum, 64)
	assert.Contains(t, buildID(), sum)
	assert.Equal(t, buildID(), buildID())
}
