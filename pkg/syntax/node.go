package syntax

// Node is an immutable syntax tree node.
//
// Nodes are copied out of the tree-sitter tree at parse time, so a Tree can be
// walked any number of times from any goroutine after Parse returns.
type Node struct {
	Kind     string  // grammar node type, e.g. "export_statement"
	Field    string  // field name in the parent, e.g. "declaration"; empty if none
	Named    bool    // false for anonymous tokens such as keywords and punctuation
	Missing  bool    // inserted by error recovery
	Range    Range   // source span
	Parent   *Node   // nil for the root
	Children []*Node // all children, named and anonymous, in source order

	tree *Tree
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n == nil || n.tree == nil {
		return ""
	}
	return string(n.tree.Source[n.Range.Start.Offset:n.Range.End.Offset])
}

// ChildByField returns the first child stored under the given field name.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildrenByField returns every child stored under the given field name.
func (n *Node) ChildrenByField(field string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

// NamedChildren returns the named children in source order.
func (n *Node) NamedChildren() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// FirstNamedChild returns the first named child of the given kind.
func (n *Node) FirstNamedChild(kind string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Named && c.Kind == kind {
			return c
		}
	}
	return nil
}

// HasToken reports whether an anonymous child token with the given text exists,
// e.g. n.HasToken("async").
func (n *Node) HasToken(text string) bool {
	if n == nil {
		return false
	}
	for _, c := range n.Children {
		if !c.Named && c.Kind == text {
			return true
		}
	}
	return false
}

// Ancestor returns the closest ancestor with one of the given kinds.
func (n *Node) Ancestor(kinds ...string) *Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree {
	if n == nil {
		return nil
	}
	return n.tree
}
