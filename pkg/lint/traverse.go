package lint

import (
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// Traverse walks tree in pre-order and calls the callback of h matching each
// named node. Every node is visited exactly once; there is no way to skip a
// subtree or stop early.
func Traverse(h Handler, tree *syntax.Tree, ctx *Context) {
	if tree == nil || tree.Root == nil {
		return
	}
	generic, _ := h.(NodeHandler)
	traverse(h, generic, tree.Root, ctx)
}

func traverse(h Handler, generic NodeHandler, n *syntax.Node, ctx *Context) {
	if n.Named {
		if generic != nil {
			generic.Node(n, ctx)
		}
		dispatch(h, n, ctx)
	}
	for _, child := range n.Children {
		traverse(h, generic, child, ctx)
	}
}

// callbacks maps node kinds to their Handler method. Kinds not listed only
// reach NodeHandler.
var callbacks = map[string]func(Handler, *syntax.Node, *Context){
	"program":                         Handler.Program,
	"import_statement":                Handler.ImportStatement,
	"export_statement":                Handler.ExportStatement,
	"variable_declaration":            Handler.VariableDeclaration,
	"lexical_declaration":             Handler.LexicalDeclaration,
	"variable_declarator":             Handler.VariableDeclarator,
	"function_declaration":            Handler.FunctionDeclaration,
	"generator_function_declaration":  Handler.FunctionDeclaration,
	"function_expression":             Handler.FunctionExpression,
	"function":                        Handler.FunctionExpression,
	"generator_function":              Handler.FunctionExpression,
	"arrow_function":                  Handler.ArrowFunction,
	"class_declaration":               Handler.ClassDeclaration,
	"abstract_class_declaration":      Handler.ClassDeclaration,
	"class":                           Handler.ClassExpression,
	"method_definition":               Handler.MethodDefinition,
	"field_definition":                Handler.FieldDefinition,
	"public_field_definition":         Handler.FieldDefinition,
	"identifier":                      Handler.Identifier,
	"call_expression":                 Handler.CallExpression,
	"new_expression":                  Handler.NewExpression,
	"member_expression":               Handler.MemberExpression,
	"subscript_expression":            Handler.SubscriptExpression,
	"assignment_expression":           Handler.AssignmentExpression,
	"augmented_assignment_expression": Handler.AssignmentExpression,
	"binary_expression":               Handler.BinaryExpression,
	"unary_expression":                Handler.UnaryExpression,
	"update_expression":               Handler.UpdateExpression,
	"await_expression":                Handler.AwaitExpression,
	"object":                          Handler.ObjectLiteral,
	"array":                           Handler.ArrayLiteral,
	"string":                          Handler.StringLiteral,
	"template_string":                 Handler.TemplateString,
	"expression_statement":            Handler.ExpressionStatement,
	"statement_block":                 Handler.BlockStatement,
	"if_statement":                    Handler.IfStatement,
	"for_statement":                   Handler.ForStatement,
	"for_in_statement":                Handler.ForInStatement,
	"while_statement":                 Handler.WhileStatement,
	"do_statement":                    Handler.DoStatement,
	"switch_statement":                Handler.SwitchStatement,
	"try_statement":                   Handler.TryStatement,
	"catch_clause":                    Handler.CatchClause,
	"throw_statement":                 Handler.ThrowStatement,
	"return_statement":                Handler.ReturnStatement,
	"break_statement":                 Handler.BreakStatement,
	"continue_statement":              Handler.ContinueStatement,
	"labeled_statement":               Handler.LabeledStatement,
	"debugger_statement":              Handler.DebuggerStatement,
	"jsx_element":                     Handler.JSXElement,
	"jsx_self_closing_element":        Handler.JSXElement,
	"jsx_attribute":                   Handler.JSXAttribute,
	"interface_declaration":           Handler.InterfaceDeclaration,
	"type_alias_declaration":          Handler.TypeAliasDeclaration,
	"enum_declaration":                Handler.EnumDeclaration,
	"type_annotation":                 Handler.TypeAnnotation,
	"predefined_type":                 Handler.PredefinedType,
}

func dispatch(h Handler, n *syntax.Node, ctx *Context) {
	if cb, ok := callbacks[n.Kind]; ok {
		cb(h, n, ctx)
	}
}

// Kinds returns the node kinds that have a dedicated Handler callback,
// sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(callbacks))
	for k := range callbacks {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
