// Package testutil provides helpers for testing CLI rendering.
package testutil

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
)

// TestRenderer is a Renderer writing into buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a test renderer with the given mode, simulating a
// terminal when isTTY is set.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a text renderer on a simulated terminal.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a markdown renderer.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a JSON renderer.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// NewTestRendererYAML creates a YAML renderer.
func NewTestRendererYAML() *TestRenderer {
	return NewTestRenderer(output.ModeYAML, false)
}

// Output returns what was written to stdout.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// PlainOutput returns stdout with ANSI escapes removed.
func (tr *TestRenderer) PlainOutput() string {
	return StripANSI(tr.Out.String())
}

// ErrorOutput returns what was written to stderr.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertNoANSI fails the test when s contains ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown checks that code fences are balanced and that no
// header is empty.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
