package rules

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func init() {
	register(NoExplicitAny)
}

// NoExplicitAny disallows the any type in TypeScript sources.
var NoExplicitAny lint.Rule = noExplicitAny{}

type noExplicitAny struct{ lint.BaseRule }

func (noExplicitAny) Code() string   { return "no-explicit-any" }
func (noExplicitAny) Tags() []string { return []string{TagRecommended, TagTypeScript} }

func (noExplicitAny) Lint(ctx *lint.Context, tree *syntax.Tree) {
	if !tree.MediaType.IsTypeScript() {
		return
	}
	lint.Traverse(noExplicitAnyVisitor{}, tree, ctx)
}

func (noExplicitAny) Docs() string {
	return `Disallows explicit use of the ` + "`any`" + ` type.

` + "`any`" + ` turns off type checking for everything it touches. Prefer a
precise type or ` + "`unknown`" + `.

### Invalid:

` + "```typescript" + `
const someNumber: any = "two";
function foo(): any { return undefined; }
` + "```" + `

### Valid:

` + "```typescript" + `
const someNumber: string = "two";
function foo(): undefined { return undefined; }
` + "```"
}

type noExplicitAnyVisitor struct{ lint.BaseHandler }

func (noExplicitAnyVisitor) PredefinedType(n *syntax.Node, ctx *lint.Context) {
	if n.Text() != "any" {
		return
	}
	ctx.ReportNodeWithHint(n, "no-explicit-any", "`any` type is not allowed", "Use a specific type other than `any`, or `unknown`")
}
