package rules

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func init() {
	register(NoVar)
}

// NoVar disallows var declarations.
var NoVar lint.Rule = noVar{}

type noVar struct{ lint.BaseRule }

func (noVar) Code() string   { return "no-var" }
func (noVar) Tags() []string { return []string{TagRecommended} }

func (noVar) Lint(ctx *lint.Context, tree *syntax.Tree) {
	lint.Traverse(noVarVisitor{}, tree, ctx)
}

func (noVar) Docs() string {
	return `Enforces the use of block scoped declarations over ` + "`var`" + `.

` + "`var`" + ` declarations are function scoped and hoisted, which makes
shadowing and use-before-assignment bugs easy to write.

### Invalid:

` + "```typescript" + `
var foo = "bar";
` + "```" + `

### Valid:

` + "```typescript" + `
const foo = 1;
let bar = 2;
` + "```"
}

type noVarVisitor struct{ lint.BaseHandler }

func (noVarVisitor) VariableDeclaration(n *syntax.Node, ctx *lint.Context) {
	ctx.ReportNodeWithHint(n, "no-var", "`var` keyword is not allowed.", "Use `let` or `const` instead")
}
