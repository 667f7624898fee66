package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// session wraps syntax nodes for one lint call so every node maps to a
// single Starlark value.
type session struct {
	nodes map[*syntax.Node]*nodeValue
}

func newSession() *session {
	return &session{nodes: make(map[*syntax.Node]*nodeValue)}
}

func (s *session) wrap(n *syntax.Node) starlark.Value {
	if n == nil {
		return starlark.None
	}
	if v, ok := s.nodes[n]; ok {
		return v
	}
	v := &nodeValue{node: n, session: s}
	s.nodes[n] = v
	return v
}

// nodeValue exposes a syntax node to scripts.
type nodeValue struct {
	node    *syntax.Node
	session *session
}

var (
	_ starlark.Value    = (*nodeValue)(nil)
	_ starlark.HasAttrs = (*nodeValue)(nil)
)

var nodeAttrs = []string{"children", "end", "field", "kind", "named", "parent", "start", "text"}

func (v *nodeValue) String() string {
	return fmt.Sprintf("<node %s %s>", v.node.Kind, v.node.Range)
}

func (v *nodeValue) Type() string         { return "node" }
func (v *nodeValue) Freeze()              {}
func (v *nodeValue) Truth() starlark.Bool { return starlark.True }

func (v *nodeValue) Hash() (uint32, error) {
	return starlark.String(v.node.Kind).Hash()
}

func (v *nodeValue) AttrNames() []string { return nodeAttrs }

func (v *nodeValue) Attr(name string) (starlark.Value, error) {
	n := v.node
	switch name {
	case "kind":
		return starlark.String(n.Kind), nil
	case "text":
		return starlark.String(n.Text()), nil
	case "named":
		return starlark.Bool(n.Named), nil
	case "start":
		return positionValue(n.Range.Start), nil
	case "end":
		return positionValue(n.Range.End), nil
	case "parent":
		return v.session.wrap(n.Parent), nil
	case "children":
		named := n.NamedChildren()
		items := make([]starlark.Value, len(named))
		for i, c := range named {
			items[i] = v.session.wrap(c)
		}
		return starlark.NewList(items), nil
	case "field":
		return starlark.NewBuiltin("field", v.field), nil
	}
	return nil, nil
}

func (v *nodeValue) field(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	return v.session.wrap(v.node.ChildByField(name)), nil
}

func positionValue(p syntax.Position) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("position"), starlark.StringDict{
		"line":   starlark.MakeInt(p.Line),
		"column": starlark.MakeInt(p.Column),
		"offset": starlark.MakeInt(p.Offset),
	})
}

// contextValue builds the ctx argument passed to script callbacks.
func contextValue(code string, ctx *lint.Context) starlark.Value {
	report := func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			node    starlark.Value
			message string
			hint    starlark.Value = starlark.None
		)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &node, "message", &message, "hint?", &hint); err != nil {
			return nil, err
		}
		nv, ok := node.(*nodeValue)
		if !ok {
			return nil, fmt.Errorf("%s: node must be a node, got %s", b.Name(), node.Type())
		}
		var hintText string
		switch h := hint.(type) {
		case starlark.NoneType:
		case starlark.String:
			hintText = string(h)
		default:
			return nil, fmt.Errorf("%s: hint must be a string or None, got %s", b.Name(), hint.Type())
		}
		ctx.ReportNodeWithHint(nv.node, code, message, hintText)
		return starlark.None, nil
	}

	return starlarkstruct.FromStringDict(starlark.String("context"), starlark.StringDict{
		"filename": starlark.String(ctx.Filename()),
		"report":   starlark.NewBuiltin("report", report),
	})
}
