// Package rules provides the built-in lint rules.
//
// Every rule registers itself with the package catalog from init. Callers
// pick a set with All, Recommended, ByTags or Select and hand it to
// lint.NewBuilder:
//
//	linter, err := lint.NewBuilder().Rules(rules.Recommended()...).Build()
//
// Rules in this package:
//   - ban-unknown-rule-code: diagnostics or directives naming unknown rules
//   - ban-unused-ignore: ignore directives that suppress nothing
//   - fresh-handler-export: Fresh route middlewares exported as "handlers"
//   - no-debugger: debugger statements
//   - no-explicit-any: the TypeScript any type
//   - no-redeclare: names declared twice in one scope
//   - no-var: var declarations
package rules
