// Package syntax turns JavaScript and TypeScript source text into immutable,
// scope-resolved syntax trees backed by tree-sitter grammars.
package syntax

// Tree is a parsed source file.
type Tree struct {
	Filename  string
	MediaType MediaType
	Source    []byte
	Root      *Node
	Comments  []Comment // every comment in source order

	lines  *LineIndex
	scopes *scopeTable
}

// Lines returns the line index of the source.
func (t *Tree) Lines() *LineIndex {
	return t.lines
}

// Walk visits every node in document order, parents before children.
// If fn returns false the node's children are skipped.
func (t *Tree) Walk(fn func(n *Node) bool) {
	walk(t.Root, fn)
}

func walk(n *Node, fn func(n *Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		walk(c, fn)
	}
}
