package syntax

// ScopeKind identifies what introduced a lexical scope.
type ScopeKind int

// Scope kinds.
const (
	ScopeProgram ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProgram:
		return "program"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	default:
		return "unknown"
	}
}

// BindingKind identifies how a name was declared.
type BindingKind int

// Binding kinds.
const (
	BindingVar BindingKind = iota
	BindingLet
	BindingConst
	BindingFunction
	BindingClass
	BindingParam
	BindingImport
	BindingCatchParam
	BindingType
	BindingEnum
)

func (k BindingKind) String() string {
	switch k {
	case BindingVar:
		return "var"
	case BindingLet:
		return "let"
	case BindingConst:
		return "const"
	case BindingFunction:
		return "function"
	case BindingClass:
		return "class"
	case BindingParam:
		return "param"
	case BindingImport:
		return "import"
	case BindingCatchParam:
		return "catch"
	case BindingType:
		return "type"
	case BindingEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Binding is a name declared in a scope. Decls holds every identifier node
// that declared it, in source order; more than one means a redeclaration.
type Binding struct {
	Name  string
	Kind  BindingKind
	Decls []*Node
	Scope *Scope
}

// Scope is a lexical scope.
type Scope struct {
	Kind     ScopeKind
	Node     *Node
	Parent   *Scope
	Children []*Scope

	bindings map[string]*Binding
	order    []string
}

// Bindings returns the scope's own bindings in declaration order.
func (s *Scope) Bindings() []*Binding {
	out := make([]*Binding, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.bindings[name])
	}
	return out
}

// Own returns the binding declared directly in this scope.
func (s *Scope) Own(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Lookup resolves name through this scope and its ancestors.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// declare records ident as a declaration of name.
func (s *Scope) declare(name string, kind BindingKind, ident *Node) {
	if name == "" {
		return
	}
	if b, ok := s.bindings[name]; ok {
		b.Decls = append(b.Decls, ident)
		return
	}
	s.bindings[name] = &Binding{Name: name, Kind: kind, Decls: []*Node{ident}, Scope: s}
	s.order = append(s.order, name)
}

// hoistTarget returns the closest function or program scope.
func (s *Scope) hoistTarget() *Scope {
	cur := s
	for cur.Kind != ScopeFunction && cur.Kind != ScopeProgram {
		cur = cur.Parent
	}
	return cur
}

type scopeTable struct {
	root   *Scope
	byNode map[*Node]*Scope
}

// RootScope returns the program scope.
func (t *Tree) RootScope() *Scope {
	return t.scopes.root
}

// Scope returns the innermost scope enclosing n.
func (t *Tree) Scope(n *Node) *Scope {
	for cur := n; cur != nil; cur = cur.Parent {
		if s, ok := t.scopes.byNode[cur]; ok {
			return s
		}
	}
	return t.scopes.root
}

// Resolve finds the binding an identifier refers to. Returns false for
// globals and other unresolved names.
func (t *Tree) Resolve(ident *Node) (*Binding, bool) {
	if ident == nil {
		return nil, false
	}
	return t.Scope(ident).Lookup(ident.Text())
}

var functionKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function":                       true,
	"function_expression":            true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
}

func analyzeScopes(t *Tree) *scopeTable {
	root := &Scope{Kind: ScopeProgram, Node: t.Root, bindings: map[string]*Binding{}}
	st := &scopeTable{root: root, byNode: map[*Node]*Scope{t.Root: root}}

	open := func(kind ScopeKind, n *Node, parent *Scope) *Scope {
		s := &Scope{Kind: kind, Node: n, Parent: parent, bindings: map[string]*Binding{}}
		parent.Children = append(parent.Children, s)
		st.byNode[n] = s
		return s
	}

	var visit func(n *Node, cur *Scope)
	visit = func(n *Node, cur *Scope) {
		next := cur
		switch {
		case functionKinds[n.Kind]:
			next = open(ScopeFunction, n, cur)
			if name := n.ChildByField("name"); name != nil && name.Kind == "identifier" {
				if n.Kind == "function_declaration" || n.Kind == "generator_function_declaration" {
					cur.declare(name.Text(), BindingFunction, name)
				} else {
					next.declare(name.Text(), BindingFunction, name)
				}
			}
			if p := n.ChildByField("parameter"); p != nil {
				declarePattern(next, p, BindingParam)
			}
			if params := n.ChildByField("parameters"); params != nil {
				for _, p := range params.NamedChildren() {
					declarePattern(next, p, BindingParam)
				}
			}

		case n.Kind == "statement_block":
			if n.Parent == nil || !functionKinds[n.Parent.Kind] {
				next = open(ScopeBlock, n, cur)
			}

		case n.Kind == "for_statement", n.Kind == "for_in_statement", n.Kind == "switch_body", n.Kind == "class_body":
			next = open(ScopeBlock, n, cur)

		case n.Kind == "catch_clause":
			next = open(ScopeCatch, n, cur)
			if p := n.ChildByField("parameter"); p != nil {
				declarePattern(next, p, BindingCatchParam)
			}

		case n.Kind == "class_declaration", n.Kind == "abstract_class_declaration":
			if name := n.ChildByField("name"); name != nil {
				cur.declare(name.Text(), BindingClass, name)
			}

		case n.Kind == "variable_declaration":
			target := cur.hoistTarget()
			for _, d := range n.NamedChildren() {
				if d.Kind == "variable_declarator" {
					declarePattern(target, d.ChildByField("name"), BindingVar)
				}
			}

		case n.Kind == "lexical_declaration":
			kind := BindingLet
			if n.HasToken("const") {
				kind = BindingConst
			}
			for _, d := range n.NamedChildren() {
				if d.Kind == "variable_declarator" {
					declarePattern(cur, d.ChildByField("name"), kind)
				}
			}

		case n.Kind == "import_statement":
			declareImports(root, n)

		case n.Kind == "interface_declaration", n.Kind == "type_alias_declaration":
			if name := n.ChildByField("name"); name != nil {
				cur.declare(name.Text(), BindingType, name)
			}

		case n.Kind == "enum_declaration":
			if name := n.ChildByField("name"); name != nil {
				cur.declare(name.Text(), BindingEnum, name)
			}
		}

		for _, c := range n.Children {
			if c.Named {
				visit(c, next)
			}
		}
	}

	for _, c := range t.Root.Children {
		if c.Named {
			visit(c, root)
		}
	}
	return st
}

// declarePattern declares every identifier bound by a binding pattern.
func declarePattern(s *Scope, p *Node, kind BindingKind) {
	if p == nil {
		return
	}
	switch p.Kind {
	case "identifier", "shorthand_property_identifier_pattern":
		s.declare(p.Text(), kind, p)
	case "assignment_pattern", "object_assignment_pattern":
		declarePattern(s, p.ChildByField("left"), kind)
	case "pair_pattern":
		declarePattern(s, p.ChildByField("value"), kind)
	case "required_parameter", "optional_parameter":
		declarePattern(s, p.ChildByField("pattern"), kind)
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, c := range p.NamedChildren() {
			declarePattern(s, c, kind)
		}
	}
}

func declareImports(root *Scope, n *Node) {
	clause := n.FirstNamedChild("import_clause")
	if clause == nil {
		return
	}
	for _, c := range clause.NamedChildren() {
		switch c.Kind {
		case "identifier":
			root.declare(c.Text(), BindingImport, c)
		case "namespace_import":
			if id := c.FirstNamedChild("identifier"); id != nil {
				root.declare(id.Text(), BindingImport, id)
			}
		case "named_imports":
			for _, spec := range c.NamedChildren() {
				if spec.Kind != "import_specifier" {
					continue
				}
				id := spec.ChildByField("alias")
				if id == nil {
					id = spec.ChildByField("name")
				}
				if id != nil {
					root.declare(id.Text(), BindingImport, id)
				}
			}
		}
	}
}
