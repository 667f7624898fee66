package lint

import "github.com/leapstack-labs/leaplint/pkg/syntax"

// Handler receives one callback per syntactic construct during Traverse.
// Embed BaseHandler and override the callbacks a rule needs.
type Handler interface {
	Program(n *syntax.Node, ctx *Context)              // the root of the file
	ImportStatement(n *syntax.Node, ctx *Context)      // import declarations
	ExportStatement(n *syntax.Node, ctx *Context)      // export declarations and re-exports
	VariableDeclaration(n *syntax.Node, ctx *Context)  // var declarations
	LexicalDeclaration(n *syntax.Node, ctx *Context)   // let and const declarations
	VariableDeclarator(n *syntax.Node, ctx *Context)   // a single binding of a var, let or const declaration
	FunctionDeclaration(n *syntax.Node, ctx *Context)  // function declarations, including generators
	FunctionExpression(n *syntax.Node, ctx *Context)   // function expressions, including generators
	ArrowFunction(n *syntax.Node, ctx *Context)        // arrow functions
	ClassDeclaration(n *syntax.Node, ctx *Context)     // class declarations
	ClassExpression(n *syntax.Node, ctx *Context)      // class expressions
	MethodDefinition(n *syntax.Node, ctx *Context)     // class and object methods
	FieldDefinition(n *syntax.Node, ctx *Context)      // class fields
	Identifier(n *syntax.Node, ctx *Context)           // identifier references and bindings
	CallExpression(n *syntax.Node, ctx *Context)       // calls
	NewExpression(n *syntax.Node, ctx *Context)        // new expressions
	MemberExpression(n *syntax.Node, ctx *Context)     // property access
	SubscriptExpression(n *syntax.Node, ctx *Context)  // computed property access
	AssignmentExpression(n *syntax.Node, ctx *Context) // plain and compound assignments
	BinaryExpression(n *syntax.Node, ctx *Context)     // binary and logical operators
	UnaryExpression(n *syntax.Node, ctx *Context)      // unary operators
	UpdateExpression(n *syntax.Node, ctx *Context)     // increments and decrements
	AwaitExpression(n *syntax.Node, ctx *Context)      // await expressions
	ObjectLiteral(n *syntax.Node, ctx *Context)        // object literals
	ArrayLiteral(n *syntax.Node, ctx *Context)         // array literals
	StringLiteral(n *syntax.Node, ctx *Context)        // string literals
	TemplateString(n *syntax.Node, ctx *Context)       // template literals
	ExpressionStatement(n *syntax.Node, ctx *Context)  // expression statements
	BlockStatement(n *syntax.Node, ctx *Context)       // braced statement blocks
	IfStatement(n *syntax.Node, ctx *Context)          // if statements
	ForStatement(n *syntax.Node, ctx *Context)         // C-style for loops
	ForInStatement(n *syntax.Node, ctx *Context)       // for-in and for-of loops
	WhileStatement(n *syntax.Node, ctx *Context)       // while loops
	DoStatement(n *syntax.Node, ctx *Context)          // do-while loops
	SwitchStatement(n *syntax.Node, ctx *Context)      // switch statements
	TryStatement(n *syntax.Node, ctx *Context)         // try statements
	CatchClause(n *syntax.Node, ctx *Context)          // catch clauses
	ThrowStatement(n *syntax.Node, ctx *Context)       // throw statements
	ReturnStatement(n *syntax.Node, ctx *Context)      // return statements
	BreakStatement(n *syntax.Node, ctx *Context)       // break statements
	ContinueStatement(n *syntax.Node, ctx *Context)    // continue statements
	LabeledStatement(n *syntax.Node, ctx *Context)     // labeled statements
	DebuggerStatement(n *syntax.Node, ctx *Context)    // debugger statements
	JSXElement(n *syntax.Node, ctx *Context)           // JSX elements
	JSXAttribute(n *syntax.Node, ctx *Context)         // JSX attributes
	InterfaceDeclaration(n *syntax.Node, ctx *Context) // TypeScript interfaces
	TypeAliasDeclaration(n *syntax.Node, ctx *Context) // TypeScript type aliases
	EnumDeclaration(n *syntax.Node, ctx *Context)      // TypeScript enums
	TypeAnnotation(n *syntax.Node, ctx *Context)       // TypeScript type annotations
	PredefinedType(n *syntax.Node, ctx *Context)       // TypeScript keyword types such as any and string
}

// NodeHandler is an optional extension of Handler. Node is called for every
// named node before its construct callback.
type NodeHandler interface {
	Node(n *syntax.Node, ctx *Context)
}

// BaseHandler implements every Handler callback as a no-op.
type BaseHandler struct{}

var _ Handler = BaseHandler{}

func (BaseHandler) Program(*syntax.Node, *Context)              {}
func (BaseHandler) ImportStatement(*syntax.Node, *Context)      {}
func (BaseHandler) ExportStatement(*syntax.Node, *Context)      {}
func (BaseHandler) VariableDeclaration(*syntax.Node, *Context)  {}
func (BaseHandler) LexicalDeclaration(*syntax.Node, *Context)   {}
func (BaseHandler) VariableDeclarator(*syntax.Node, *Context)   {}
func (BaseHandler) FunctionDeclaration(*syntax.Node, *Context)  {}
func (BaseHandler) FunctionExpression(*syntax.Node, *Context)   {}
func (BaseHandler) ArrowFunction(*syntax.Node, *Context)        {}
func (BaseHandler) ClassDeclaration(*syntax.Node, *Context)     {}
func (BaseHandler) ClassExpression(*syntax.Node, *Context)      {}
func (BaseHandler) MethodDefinition(*syntax.Node, *Context)     {}
func (BaseHandler) FieldDefinition(*syntax.Node, *Context)      {}
func (BaseHandler) Identifier(*syntax.Node, *Context)           {}
func (BaseHandler) CallExpression(*syntax.Node, *Context)       {}
func (BaseHandler) NewExpression(*syntax.Node, *Context)        {}
func (BaseHandler) MemberExpression(*syntax.Node, *Context)     {}
func (BaseHandler) SubscriptExpression(*syntax.Node, *Context)  {}
func (BaseHandler) AssignmentExpression(*syntax.Node, *Context) {}
func (BaseHandler) BinaryExpression(*syntax.Node, *Context)     {}
func (BaseHandler) UnaryExpression(*syntax.Node, *Context)      {}
func (BaseHandler) UpdateExpression(*syntax.Node, *Context)     {}
func (BaseHandler) AwaitExpression(*syntax.Node, *Context)      {}
func (BaseHandler) ObjectLiteral(*syntax.Node, *Context)        {}
func (BaseHandler) ArrayLiteral(*syntax.Node, *Context)         {}
func (BaseHandler) StringLiteral(*syntax.Node, *Context)        {}
func (BaseHandler) TemplateString(*syntax.Node, *Context)       {}
func (BaseHandler) ExpressionStatement(*syntax.Node, *Context)  {}
func (BaseHandler) BlockStatement(*syntax.Node, *Context)       {}
func (BaseHandler) IfStatement(*syntax.Node, *Context)          {}
func (BaseHandler) ForStatement(*syntax.Node, *Context)         {}
func (BaseHandler) ForInStatement(*syntax.Node, *Context)       {}
func (BaseHandler) WhileStatement(*syntax.Node, *Context)       {}
func (BaseHandler) DoStatement(*syntax.Node, *Context)          {}
func (BaseHandler) SwitchStatement(*syntax.Node, *Context)      {}
func (BaseHandler) TryStatement(*syntax.Node, *Context)         {}
func (BaseHandler) CatchClause(*syntax.Node, *Context)          {}
func (BaseHandler) ThrowStatement(*syntax.Node, *Context)       {}
func (BaseHandler) ReturnStatement(*syntax.Node, *Context)      {}
func (BaseHandler) BreakStatement(*syntax.Node, *Context)       {}
func (BaseHandler) ContinueStatement(*syntax.Node, *Context)    {}
func (BaseHandler) LabeledStatement(*syntax.Node, *Context)     {}
func (BaseHandler) DebuggerStatement(*syntax.Node, *Context)    {}
func (BaseHandler) JSXElement(*syntax.Node, *Context)           {}
func (BaseHandler) JSXAttribute(*syntax.Node, *Context)         {}
func (BaseHandler) InterfaceDeclaration(*syntax.Node, *Context) {}
func (BaseHandler) TypeAliasDeclaration(*syntax.Node, *Context) {}
func (BaseHandler) EnumDeclaration(*syntax.Node, *Context)      {}
func (BaseHandler) TypeAnnotation(*syntax.Node, *Context)       {}
func (BaseHandler) PredefinedType(*syntax.Node, *Context)       {}
