package script

import (
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// nodeCallback is the global name of the callback invoked for every node.
const nodeCallback = "node"

// Rule is a lint rule backed by a loaded script. Its globals are frozen, so
// one Rule may lint many files concurrently.
type Rule struct {
	path     string
	code     string
	tags     []string
	priority int
	docs     string

	handlers map[string]*starlark.Function // keyed by node kind
	generic  *starlark.Function

	pool   *ThreadPool
	logger *slog.Logger
}

var (
	_ lint.Rule       = (*Rule)(nil)
	_ lint.Documented = (*Rule)(nil)
)

// Code returns the code declared by the script.
func (r *Rule) Code() string { return r.code }

// Tags returns the tags declared by the script.
func (r *Rule) Tags() []string { return r.tags }

// Priority returns the priority declared by the script.
func (r *Rule) Priority() int { return r.priority }

// Docs returns the docs declared by the script.
func (r *Rule) Docs() string { return r.docs }

// Path returns the file the script was loaded from.
func (r *Rule) Path() string { return r.path }

// Kinds returns the node kinds the script handles.
func (r *Rule) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	return kinds
}

// Lint runs the script callbacks over tree. An evaluation error is logged
// and ends the script's work on this file; diagnostics reported before the
// error are kept.
func (r *Rule) Lint(ctx *lint.Context, tree *syntax.Tree) {
	thread := r.pool.Get(fmt.Sprintf("%s:%s", r.code, tree.Filename))
	v := &scriptVisitor{
		rule:    r,
		thread:  thread,
		session: newSession(),
		ctx:     contextValue(r.code, ctx),
	}
	lint.Traverse(v, tree, ctx)

	if v.err != nil {
		r.logger.Warn("script rule failed",
			"rule", r.code,
			"script", r.path,
			"file", tree.Filename,
			"error", v.err,
		)
		return
	}
	r.pool.Put(thread)
}

// scriptVisitor forwards every named node to the matching script callback.
type scriptVisitor struct {
	lint.BaseHandler

	rule    *Rule
	thread  *starlark.Thread
	session *session
	ctx     starlark.Value
	err     error
}

func (v *scriptVisitor) Node(n *syntax.Node, _ *lint.Context) {
	if v.err != nil {
		return
	}
	if v.rule.generic != nil {
		v.call(v.rule.generic, n)
	}
	if fn, ok := v.rule.handlers[n.Kind]; ok && v.err == nil {
		v.call(fn, n)
	}
}

func (v *scriptVisitor) call(fn *starlark.Function, n *syntax.Node) {
	if _, err := starlark.Call(v.thread, fn, starlark.Tuple{v.session.wrap(n), v.ctx}, nil); err != nil {
		v.err = err
	}
}
