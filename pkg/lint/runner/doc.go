// Package runner lints many files at once with bounded parallelism and can
// re-lint them as they change on disk.
package runner
