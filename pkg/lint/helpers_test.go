package lint_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// funcRule is a rule whose behavior is supplied by a closure.
type funcRule struct {
	lint.BaseRule
	code     string
	priority int
	tags     []string
	run      func(ctx *lint.Context, tree *syntax.Tree)
}

func (r *funcRule) Code() string   { return r.code }
func (r *funcRule) Priority() int  { return r.priority }
func (r *funcRule) Tags() []string { return r.tags }

func (r *funcRule) Lint(ctx *lint.Context, tree *syntax.Tree) {
	if r.run != nil {
		r.run(ctx, tree)
	}
}

func marker(code string) lint.Rule {
	return &funcRule{code: code, priority: lint.PriorityEarly}
}

// kindRule reports every node of a kind under its own code.
func kindRule(code, kind, message string) *funcRule {
	return &funcRule{
		code: code,
		run: func(ctx *lint.Context, tree *syntax.Tree) {
			tree.Walk(func(n *syntax.Node) bool {
				if n.Kind == kind {
					ctx.ReportNode(n, code, message)
				}
				return true
			})
		},
	}
}

func noVar() *funcRule {
	return kindRule("no-var", "variable_declaration", "`var` keyword is not allowed.")
}

func noDebugger() *funcRule {
	return kindRule("no-debugger", "debugger_statement", "`debugger` statement is not allowed")
}

// countingRule counts how often Lint is called.
type countingRule struct {
	lint.BaseRule
	calls atomic.Int32
}

func (*countingRule) Code() string { return "counting" }

func (r *countingRule) Lint(*lint.Context, *syntax.Tree) {
	r.calls.Add(1)
}

func newLinter(t *testing.T, rules ...lint.Rule) *lint.Linter {
	t.Helper()
	linter, err := lint.NewBuilder().
		Rules(rules...).
		Logger(testutil.NewTestLogger(t)).
		Build()
	require.NoError(t, err)
	return linter
}

func lintSource(t *testing.T, linter *lint.Linter, filename, src string) []lint.Diagnostic {
	t.Helper()
	_, diags, err := linter.LintFile(lint.LintFileOptions{Filename: filename, Source: src})
	require.NoError(t, err)
	return diags
}

func codes(diags []lint.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func parse(t *testing.T, filename, src string) *syntax.Tree {
	t.Helper()
	tree, err := syntax.Parse(filename, syntax.MediaTypeFromPath(filename), []byte(src))
	require.NoError(t, err)
	return tree
}
