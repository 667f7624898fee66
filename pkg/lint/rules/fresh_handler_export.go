package rules

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func init() {
	register(FreshHandlerExport)
}

const (
	freshHandlerExportCode    = "fresh-handler-export"
	freshHandlerExportMessage = `Fresh middlewares must be exported as "handler" but got "handlers" instead.`
	freshHandlerExportHint    = `Did you mean "handler"?`
)

// FreshHandlerExport flags Fresh route modules that export "handlers"
// instead of "handler".
var FreshHandlerExport lint.Rule = freshHandlerExport{}

type freshHandlerExport struct{ lint.BaseRule }

func (freshHandlerExport) Code() string   { return freshHandlerExportCode }
func (freshHandlerExport) Tags() []string { return []string{TagFresh} }

func (freshHandlerExport) Lint(ctx *lint.Context, tree *syntax.Tree) {
	if !inRoutesDir(ctx.Filename()) {
		return
	}
	lint.Traverse(&freshHandlerVisitor{}, tree, ctx)
}

func (freshHandlerExport) Docs() string {
	return `Checks that Fresh route middlewares are exported under the name the
framework looks for.

Fresh only picks up a middleware exported as ` + "`handler`" + ` from a file
below a ` + "`routes`" + ` directory. An export named ` + "`handlers`" + ` is
silently ignored.

### Invalid:

` + "```typescript" + `
// routes/index.tsx
export const handlers = {};
export function handlers() {}
export async function handlers() {}
` + "```" + `

### Valid:

` + "```typescript" + `
// routes/index.tsx
export const handler = {};
export function handler() {}
export async function handler() {}
` + "```"
}

// inRoutesDir reports whether any path component of filename is "routes".
func inRoutesDir(filename string) bool {
	parts := strings.FieldsFunc(filename, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, p := range parts {
		if p == "routes" {
			return true
		}
	}
	return false
}

type freshHandlerVisitor struct{ lint.BaseHandler }

func (*freshHandlerVisitor) ExportStatement(n *syntax.Node, ctx *lint.Context) {
	decl := n.ChildByField("declaration")
	if decl == nil {
		return
	}

	var name *syntax.Node
	switch decl.Kind {
	case "lexical_declaration", "variable_declaration":
		// Only the first declarator is considered.
		if d := decl.FirstNamedChild("variable_declarator"); d != nil {
			name = d.ChildByField("name")
		}
	case "function_declaration", "generator_function_declaration":
		name = decl.ChildByField("name")
	}

	if name == nil || name.Kind != "identifier" || name.Text() != "handlers" {
		return
	}
	ctx.ReportNodeWithHint(name, freshHandlerExportCode, freshHandlerExportMessage, freshHandlerExportHint)
}
