package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
	"github.com/leapstack-labs/leaplint/pkg/lint/runner"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	linter, err := lint.NewBuilder().Rules(rules.Recommended()...).Build()
	require.NoError(t, err)
	return &runner.Runner{Linter: linter, Concurrency: 4, Logger: testutil.NewTestLogger(t)}
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"a.ts":                "",
		"b.js":                "",
		"README.md":           "",
		"node_modules/x/x.js": "",
		".git/hooks/y.js":     "",
		"sub/c.tsx":           "",
		"sub/gen/d.ts":        "",
		"sub/e.d.ts":          "",
	})

	r := newRunner(t)
	r.Exclude = []string{"gen", "*.d.ts"}

	files, err := r.Collect([]string{dir, filepath.Join(dir, "README.md"), filepath.Join(dir, "a.ts")})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "a.ts", "b.js", "sub/c.tsx"}, rel(t, dir, files))
}

func TestCollect_Extensions(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.ts": "", "b.js": "", "c.TSX": ""})

	r := newRunner(t)
	r.Extensions = []string{"ts", ".tsx"}

	files, err := r.Collect([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts", "c.TSX"}, rel(t, dir, files))
}

func TestCollect_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src/legacy/a.ts": "",
		"src/new/b.ts":    "",
		"dist/c.js":       "",
	})
	r := newRunner(t)
	r.Exclude = []string{"dist/", filepath.ToSlash(filepath.Join(dir, "src", "legacy"))}

	files, err := r.Collect([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/new/b.ts"}, rel(t, dir, files))
}

func TestCollect_MissingPath(t *testing.T) {
	_, err := newRunner(t).Collect([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"clean.ts":   "const a = 1;\n",
		"dirty.js":   "var a = 1;\ndebugger;\n",
		"broken.ts":  "const = ;\n",
		"ignored.ts": "// leaplint-ignore-file\nvar a = 1;\n",
	})

	report, err := newRunner(t).Run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, report.Files, 4)

	assert.Equal(t, []string{"broken.ts", "clean.ts", "dirty.js", "ignored.ts"}, rel(t, dir, []string{
		report.Files[0].Path, report.Files[1].Path, report.Files[2].Path, report.Files[3].Path,
	}))
	assert.ErrorIs(t, report.Files[0].Err, syntax.ErrParse)
	assert.Empty(t, report.Files[1].Diagnostics)
	assert.Len(t, report.Files[2].Diagnostics, 2)
	assert.Equal(t, "var a = 1;\ndebugger;\n", report.Files[2].Source)
	assert.Empty(t, report.Files[3].Diagnostics)

	assert.Equal(t, 2, report.DiagnosticCount())
	assert.Equal(t, 1, report.ErrorCount())
	assert.True(t, report.HasIssues())
	assert.Len(t, report.Diagnostics(), 2)
}

func TestRun_ConcurrencyDoesNotChangeResults(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".ts"] = "var " + name + " = 1;\nlet x: any;\n// leaplint-ignore no-var\nconst y = 2;\n"
	}
	testutil.WriteFiles(t, dir, files)

	r := newRunner(t)
	r.Concurrency = 1
	serial, err := r.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	r.Concurrency = 8
	parallel, err := r.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	if diff := cmp.Diff(serial.Diagnostics(), parallel.Diagnostics()); diff != "" {
		t.Fatalf("results differ (-serial +parallel):\n%s", diff)
	}
	assert.Equal(t, 8*3, serial.DiagnosticCount())
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.ts": "let a;\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t).Run(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLintFiles_NoLinter(t *testing.T) {
	_, err := (&runner.Runner{}).LintFiles(context.Background(), nil)
	assert.Error(t, err)
}

// memCache is an in-memory runner.Cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]lint.Diagnostic
	puts    int
	failGet bool
}

func (c *memCache) Get(_ context.Context, path, hash string) ([]lint.Diagnostic, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("cache unavailable")
	}
	diags, ok := c.entries[path+"@"+hash]
	return diags, ok, nil
}

func (c *memCache) Put(_ context.Context, path, hash string, diags []lint.Diagnostic) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path+"@"+hash] = diags
	c.puts++
	return nil
}

func TestRun_Cache(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"a.ts":   "var a = 1;\n",
		"b.ts":   "const b = 1;\n",
		"bad.js": "let x = ;\n",
	})

	r := newRunner(t)
	cache := &memCache{entries: map[string][]lint.Diagnostic{}}
	r.Cache = cache

	first, err := r.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Zero(t, first.CachedCount())
	assert.Equal(t, 2, cache.puts, "parse failures are not cached")

	second, err := r.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 2, second.CachedCount())
	assert.Equal(t, first.Diagnostics(), second.Diagnostics())
	assert.Equal(t, 1, second.ErrorCount())

	// Changing a file invalidates only its entry.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"), []byte("var b = 1;\n"), 0600))
	third, err := r.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 1, third.CachedCount())
	assert.Equal(t, 2, third.DiagnosticCount())
}

func TestRun_CacheFailureFallsBackToLinting(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.ts": "var a = 1;\n"})

	r := newRunner(t)
	r.Cache = &memCache{entries: map[string][]lint.Diagnostic{}, failGet: true}

	report, err := r.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Zero(t, report.CachedCount())
	assert.Equal(t, 1, report.DiagnosticCount())
}
