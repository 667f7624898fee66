// Package lint runs analysis rules over JavaScript and TypeScript syntax
// trees and reconciles their findings with in-source ignore directives.
//
// # Architecture
//
// The package is split into four parts:
//
//  1. Registry (registry.go): the enabled rules, sorted once by priority and code
//  2. Traversal (handler.go, traverse.go): the node callbacks rules implement
//  3. Context (context.go, directive.go): per-file accumulator and ignore bookkeeping
//  4. Linter (linter.go): the shared, immutable entry point built with a Builder
//
// # Building a Linter
//
//	linter, err := lint.NewBuilder().
//		Rules(rules.Recommended()...).
//		Build()
//	if err != nil {
//		return err
//	}
//	tree, diags, err := linter.LintFile(lint.LintFileOptions{
//		Filename: "routes/index.tsx",
//		Source:   src,
//	})
//
// A Linter holds no per-file state and may be used from many goroutines.
//
// # Ignore Directives
//
// Two comment directives suppress diagnostics:
//
//	// leaplint-ignore-file            ignore the whole file
//	// leaplint-ignore-file no-var     ignore no-var in the whole file
//	// leaplint-ignore                 ignore everything on the next line
//	// leaplint-ignore no-var -- why   ignore no-var on the next line
//
// Directive names are configurable on the Builder.
//
// # Writing Rules
//
// A rule embeds BaseRule for default metadata and walks the tree with a
// Handler that overrides only the callbacks it needs:
//
//	type noDebugger struct{ lint.BaseRule }
//
//	func (noDebugger) Code() string { return "no-debugger" }
//
//	func (r noDebugger) Lint(ctx *lint.Context, tree *syntax.Tree) {
//		lint.Traverse(&noDebuggerHandler{}, tree, ctx)
//	}
//
//	type noDebuggerHandler struct{ lint.BaseHandler }
//
//	func (*noDebuggerHandler) DebuggerStatement(n *syntax.Node, ctx *lint.Context) {
//		ctx.ReportNode(n, "no-debugger", "`debugger` statement is not allowed")
//	}
package lint
