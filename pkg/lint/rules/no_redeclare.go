package rules

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func init() {
	register(NoRedeclare)
}

// NoRedeclare disallows declaring the same name twice in one scope.
var NoRedeclare lint.Rule = noRedeclare{}

type noRedeclare struct{ lint.BaseRule }

func (noRedeclare) Code() string   { return "no-redeclare" }
func (noRedeclare) Tags() []string { return []string{TagRecommended} }

// Priority runs after the syntax-only rules.
func (noRedeclare) Priority() int { return lint.PriorityLate }

func (noRedeclare) Lint(ctx *lint.Context, tree *syntax.Tree) {
	checkScope(ctx, tree.RootScope())
}

func (noRedeclare) Docs() string {
	return `Disallows redeclaring a name in the same scope.

TypeScript declaration merging of interfaces, type aliases and enums is
not reported.

### Invalid:

` + "```typescript" + `
var a = 3;
var a = 10;

function f(b: number, b: number) {}
` + "```" + `

### Valid:

` + "```typescript" + `
var a = 3;
a = 10;
` + "```"
}

func checkScope(ctx *lint.Context, s *syntax.Scope) {
	if s == nil {
		return
	}
	for _, b := range s.Bindings() {
		var seen bool
		for _, ident := range b.Decls {
			if mergesTypes(ident) {
				continue
			}
			if !seen {
				seen = true
				continue
			}
			ctx.ReportNode(ident, "no-redeclare", fmt.Sprintf("`%s` is already declared", b.Name))
		}
	}
	for _, child := range s.Children {
		checkScope(ctx, child)
	}
}

// mergesTypes reports whether ident names a TypeScript declaration that
// may share a name with another declaration.
func mergesTypes(ident *syntax.Node) bool {
	if ident.Parent == nil {
		return false
	}
	switch ident.Parent.Kind {
	case "interface_declaration", "type_alias_declaration", "enum_declaration":
		return true
	}
	return false
}
