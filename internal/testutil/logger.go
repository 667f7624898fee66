// Package testutil provides shared test helpers.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger writing to t.Log. Each record
// names the file and line that logged it, since t.Log itself can only point
// into the handler.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(&testHandler{t: t, mu: &sync.Mutex{}})
}

type testHandler struct {
	t      testing.TB
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func (h *testHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer
	inner := slog.Handler(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	inner = inner.WithAttrs(h.attrs)
	for _, g := range h.groups {
		inner = inner.WithGroup(g)
	}
	if err := inner.Handle(context.Background(), r); err != nil {
		return err
	}

	h.t.Logf("%s: %s", caller(r.PC), bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *testHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

// caller formats the logging call site as file:line.
func caller(pc uintptr) string {
	if pc == 0 {
		return "?"
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
