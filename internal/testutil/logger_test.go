package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTB captures Logf output instead of writing to the test log.
type recordingTB struct {
	testing.TB
	lines []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestNewTestLogger_NamesCaller(t *testing.T) {
	tb := &recordingTB{TB: t}
	logger := NewTestLogger(tb)

	logger.Debug("linted", "file", "a.ts")
	logger.With("rule", "no-var").WithGroup("run").Info("done", "files", 2)

	require.Len(t, tb.lines, 2)
	assert.Regexp(t, `^logger_test\.go:\d+: level=DEBUG msg=linted file=a\.ts$`, tb.lines[0])
	assert.Regexp(t, `^logger_test\.go:\d+: level=INFO msg=done rule=no-var run\.files=2$`, tb.lines[1])
	assert.NotContains(t, tb.lines[0], "time=")
}
