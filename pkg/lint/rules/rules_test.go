package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// runRule lints src with a single rule and returns its diagnostics.
func runRule(t *testing.T, rule lint.Rule, filename, src string) []lint.Diagnostic {
	t.Helper()
	linter, err := lint.NewBuilder().
		Rules(rule).
		Logger(testutil.NewTestLogger(t)).
		Build()
	require.NoError(t, err)

	_, diags, err := linter.LintFile(lint.LintFileOptions{Filename: filename, Source: src})
	require.NoError(t, err)
	return diags
}

type ruleCase struct {
	name     string
	filename string
	src      string
	want     []syntax.Position // start of every expected diagnostic
}

func runCases(t *testing.T, rule lint.Rule, tests []ruleCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := tt.filename
			if filename == "" {
				filename = "file.ts"
			}
			diags := runRule(t, rule, filename, tt.src)

			got := make([]syntax.Position, len(diags))
			for i, d := range diags {
				assert.Equal(t, rule.Code(), d.Code)
				got[i] = syntax.Position{Line: d.Range.Start.Line, Column: d.Range.Start.Column}
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func pos(line, col int) syntax.Position {
	return syntax.Position{Line: line, Column: col}
}

func TestFreshHandlerExport(t *testing.T) {
	runCases(t, rules.FreshHandlerExport, []ruleCase{
		{name: "outside routes const", filename: "foo.jsx", src: "export const handlers = {}"},
		{name: "outside routes function", filename: "foo.jsx", src: "export function handlers() {}"},
		{name: "outside routes async", filename: "foo.jsx", src: "export async function handlers() {}"},
		{name: "handler const", filename: "routes/foo.jsx", src: "export const handler = {}"},
		{name: "handler function", filename: "routes/foo.jsx", src: "export function handler() {}"},
		{name: "handler async", filename: "routes/foo.jsx", src: "export async function handler() {}"},
		{name: "routes prefix only", filename: "myroutes/index.tsx", src: "export const handlers = {}"},
		{name: "not exported", filename: "routes/index.tsx", src: "const handlers = {}"},
		{name: "second declarator", filename: "routes/index.tsx", src: "export const handler = {}, handlers = {}"},
		{
			name:     "const",
			filename: "routes/index.tsx",
			src:      "export const handlers = {}",
			want:     []syntax.Position{pos(1, 14)},
		},
		{
			name:     "function",
			filename: "routes/index.tsx",
			src:      "export function handlers() {}",
			want:     []syntax.Position{pos(1, 17)},
		},
		{
			name:     "async function",
			filename: "routes/index.tsx",
			src:      "export async function handlers() {}",
			want:     []syntax.Position{pos(1, 23)},
		},
		{
			name:     "nested routes dir on windows",
			filename: `C:\app\routes\api\joke.ts`,
			src:      "export let handlers = {}",
			want:     []syntax.Position{pos(1, 12)},
		},
	})
}

func TestFreshHandlerExport_MessageAndHint(t *testing.T) {
	diags := runRule(t, rules.FreshHandlerExport, "routes/index.tsx", "export const handlers = {}")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "fresh-handler-export", d.Code)
	assert.Equal(t, `Fresh middlewares must be exported as "handler" but got "handlers" instead.`, d.Message)
	assert.Equal(t, `Did you mean "handler"?`, d.Hint)
	assert.Equal(t, 13, d.Range.Start.Offset)
	assert.Equal(t, 21, d.Range.End.Offset)
}

func TestNoDebugger(t *testing.T) {
	runCases(t, rules.NoDebugger, []ruleCase{
		{name: "no debugger", src: "function f() { return 1; }"},
		{name: "identifier named debug", src: "const debug = 1;"},
		{
			name: "statements",
			src:  "debugger;\nfunction f() {\n  debugger;\n}\n",
			want: []syntax.Position{pos(1, 1), pos(3, 3)},
		},
	})
}

func TestNoVar(t *testing.T) {
	runCases(t, rules.NoVar, []ruleCase{
		{name: "let and const", src: "let a = 1;\nconst b = 2;\n"},
		{
			name: "var",
			src:  "var a = 1;\nfor (var i = 0; i < 1; i++) {}\n",
			want: []syntax.Position{pos(1, 1), pos(2, 6)},
		},
	})
}

func TestNoExplicitAny(t *testing.T) {
	runCases(t, rules.NoExplicitAny, []ruleCase{
		{name: "unknown", src: "let a: unknown = 1;"},
		{name: "javascript is skipped", filename: "file.js", src: "let any = 1;"},
		{
			name: "annotations",
			src:  "let a: any = 1;\nfunction f(x: string): any { return x; }\n",
			want: []syntax.Position{pos(1, 8), pos(2, 24)},
		},
	})
}

func TestNoRedeclare(t *testing.T) {
	runCases(t, rules.NoRedeclare, []ruleCase{
		{name: "distinct names", src: "var a = 1;\nlet b = 2;\n"},
		{name: "shadowing in block", src: "let a = 1;\n{ let a = 2; }\n"},
		{name: "interface merging", src: "interface A { x: number }\ninterface A { y: number }\n"},
		{
			name: "var twice",
			src:  "var a = 1;\nvar a = 2;\n",
			want: []syntax.Position{pos(2, 5)},
		},
		{
			name: "duplicate parameter",
			src:  "function f(b: number, b: number) {}\n",
			want: []syntax.Position{pos(1, 23)},
		},
		{
			name: "function and var",
			src:  "function g() {}\nvar g = 1;\n",
			want: []syntax.Position{pos(2, 5)},
		},
	})
}

func TestReservedRulesReportNothingThemselves(t *testing.T) {
	for _, rule := range []lint.Rule{rules.BanUnknownRuleCode, rules.BanUnusedIgnore} {
		t.Run(rule.Code(), func(t *testing.T) {
			assert.True(t, lint.IsReservedCode(rule.Code()))
			assert.Empty(t, runRule(t, rule, "file.ts", "var a = 1;\ndebugger;\n"))
		})
	}
}

func TestRecommendedEndToEnd(t *testing.T) {
	linter, err := lint.NewBuilder().Rules(rules.Recommended()...).Build()
	require.NoError(t, err)

	src := `// leaplint-ignore no-var
var a = 1;
// leaplint-ignore no-debugger
let b = 2;
debugger;
// leaplint-ignore no-such-rule
const c: any = 3;
`
	_, diags, err := linter.LintFile(lint.LintFileOptions{Filename: "mod.ts", Source: src})
	require.NoError(t, err)

	type found struct {
		Code string
		Line int
	}
	got := make([]found, len(diags))
	for i, d := range diags {
		got[i] = found{d.Code, d.Range.Start.Line}
	}
	assert.Equal(t, []found{
		{"ban-unused-ignore", 3},
		{"no-debugger", 5},
		{"ban-unknown-rule-code", 6},
		{"ban-unused-ignore", 6},
		{"no-explicit-any", 7},
	}, got)
}
