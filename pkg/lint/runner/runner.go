package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Runner lints files from disk with a shared Linter.
type Runner struct {
	Linter *lint.Linter

	// Concurrency bounds the number of files linted at once.
	// Zero or less means GOMAXPROCS.
	Concurrency int

	// Extensions lists lintable file extensions when walking directories.
	// Empty means syntax.SupportedExtensions.
	Extensions []string

	// Exclude holds glob patterns of files and directories to skip.
	Exclude []string

	// Cache, when set, is consulted before linting a file and updated after.
	Cache Cache

	Logger *slog.Logger
}

// Cache stores diagnostics between runs, keyed by path and content hash.
type Cache interface {
	Get(ctx context.Context, path, hash string) ([]lint.Diagnostic, bool, error)
	Put(ctx context.Context, path, hash string, diags []lint.Diagnostic) error
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path        string
	Source      string
	Diagnostics []lint.Diagnostic
	// Err is a read or parse failure. Parse failures match syntax.ErrParse.
	Err error
	// Cached is set when Diagnostics came from the cache.
	Cached bool
}

// Report holds the results of one run, sorted by path.
type Report struct {
	Files    []FileResult
	Duration time.Duration
}

// DiagnosticCount returns the number of diagnostics across all files.
func (r *Report) DiagnosticCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// ErrorCount returns the number of files that failed to read or parse.
func (r *Report) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// CachedCount returns the number of files answered from the cache.
func (r *Report) CachedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Cached {
			n++
		}
	}
	return n
}

// HasIssues reports whether any file has diagnostics or failed.
func (r *Report) HasIssues() bool {
	return r.DiagnosticCount() > 0 || r.ErrorCount() > 0
}

// Diagnostics returns every diagnostic, grouped by file.
func (r *Report) Diagnostics() []lint.Diagnostic {
	out := make([]lint.Diagnostic, 0, r.DiagnosticCount())
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	return out
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Runner) concurrency() int {
	if r.Concurrency <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return r.Concurrency
}

// Run collects the files below paths and lints them.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	files, err := r.Collect(paths)
	if err != nil {
		return nil, err
	}
	return r.LintFiles(ctx, files)
}

// LintFiles lints the given files. Read and parse failures are recorded on
// the file's result; only cancellation aborts the run.
func (r *Runner) LintFiles(ctx context.Context, files []string) (*Report, error) {
	if r.Linter == nil {
		return nil, fmt.Errorf("runner: no linter configured")
	}
	start := time.Now()
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.lintFile(gctx, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint run canceled: %w", err)
	}

	report := &Report{Files: results, Duration: time.Since(start)}
	r.logger().Debug("lint run finished",
		"files", len(files),
		"diagnostics", report.DiagnosticCount(),
		"errors", report.ErrorCount(),
		"cached", report.CachedCount(),
		"duration", report.Duration,
	)
	return report, nil
}

func (r *Runner) lintFile(ctx context.Context, path string) FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	src := string(content)

	var hash string
	if r.Cache != nil {
		hash = contentHash(content)
		diags, ok, err := r.Cache.Get(ctx, path, hash)
		if err != nil {
			r.logger().Warn("cache lookup failed", "file", path, "error", err)
		} else if ok {
			return FileResult{Path: path, Source: src, Diagnostics: diags, Cached: true}
		}
	}

	_, diags, err := r.Linter.LintFile(lint.LintFileOptions{Filename: path, Source: src})
	if err != nil {
		r.logger().Debug("file failed to parse", "file", path, "error", err)
		return FileResult{Path: path, Source: src, Err: err}
	}
	if r.Cache != nil {
		if err := r.Cache.Put(ctx, path, hash, diags); err != nil {
			r.logger().Warn("cache update failed", "file", path, "error", err)
		}
	}
	return FileResult{Path: path, Source: src, Diagnostics: diags}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
