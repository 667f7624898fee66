// Package script loads lint rules written in Starlark.
//
// A script declares its metadata as globals and one function per node kind
// it wants to inspect:
//
//	code = "no-console-log"
//	tags = ["custom"]
//	priority = 10
//	docs = "Disallows console.log calls."
//
//	def call_expression(node, ctx):
//	    callee = node.field("function")
//	    if callee and callee.text == "console.log":
//	        ctx.report(node, "Unexpected console.log", hint = "Use the logger")
//
// A function named node is called for every named node. Globals starting
// with an underscore are private helpers.
//
// Node values expose kind, text, named, start, end, children, parent and
// field(name). Positions expose line, column and offset. The ctx value
// exposes filename and report(node, message, hint=None).
package script
