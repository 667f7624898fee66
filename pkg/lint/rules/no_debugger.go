package rules

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func init() {
	register(NoDebugger)
}

// NoDebugger disallows debugger statements.
var NoDebugger lint.Rule = noDebugger{}

type noDebugger struct{ lint.BaseRule }

func (noDebugger) Code() string   { return "no-debugger" }
func (noDebugger) Tags() []string { return []string{TagRecommended} }

func (r noDebugger) Lint(ctx *lint.Context, tree *syntax.Tree) {
	lint.Traverse(noDebuggerVisitor{}, tree, ctx)
}

func (noDebugger) Docs() string {
	return `Disallows the use of the ` + "`debugger`" + ` statement.

A leftover debugger statement pauses execution whenever dev tools are open.

### Invalid:

` + "```typescript" + `
function isLongString(x: string) {
  debugger;
  return x.length > 100;
}
` + "```" + `

### Valid:

` + "```typescript" + `
function isLongString(x: string) {
  return x.length > 100;
}
` + "```"
}

type noDebuggerVisitor struct{ lint.BaseHandler }

func (noDebuggerVisitor) DebuggerStatement(n *syntax.Node, ctx *lint.Context) {
	ctx.ReportNodeWithHint(n, "no-debugger", "`debugger` statement is not allowed", "Remove the `debugger` statement")
}
