package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// Context accumulates the findings of every rule for one file. It is
// created per lint call and must not be shared between goroutines.
type Context struct {
	tree       *syntax.Tree
	registry   *Registry
	directives *DirectiveIndex

	diagnostics []Diagnostic
	suppressed  int
}

func newContext(tree *syntax.Tree, registry *Registry, directives *DirectiveIndex) *Context {
	return &Context{
		tree:       tree,
		registry:   registry,
		directives: directives,
	}
}

// Filename returns the name of the file being linted.
func (c *Context) Filename() string {
	return c.tree.Filename
}

// Tree returns the syntax tree being linted.
func (c *Context) Tree() *syntax.Tree {
	return c.tree
}

// Directives returns the ignore directives of the file.
func (c *Context) Directives() *DirectiveIndex {
	return c.directives
}

// Report records a diagnostic for rng.
func (c *Context) Report(code, message string, rng syntax.Range) {
	c.ReportWithHint(code, message, rng, "")
}

// ReportWithHint records a diagnostic with a remediation hint.
func (c *Context) ReportWithHint(code, message string, rng syntax.Range, hint string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Code:     code,
		Message:  message,
		Hint:     hint,
		Filename: c.tree.Filename,
		Range:    rng,
	})
}

// ReportNode records a diagnostic spanning n.
func (c *Context) ReportNode(n *syntax.Node, code, message string) {
	c.ReportWithHint(code, message, n.Range, "")
}

// ReportNodeWithHint records a diagnostic with a hint spanning n.
func (c *Context) ReportNodeWithHint(n *syntax.Node, code, message, hint string) {
	c.ReportWithHint(code, message, n.Range, hint)
}

// Diagnostics returns a copy of the diagnostics reported so far, before
// reconciliation.
func (c *Context) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// finish reconciles reported diagnostics with the registry and the ignore
// directives and returns the final, line-sorted result.
func (c *Context) finish() []Diagnostic {
	var unknown []Diagnostic
	if c.registry.ChecksUnknownRules() {
		unknown = c.banUnknownRuleCode()
	}
	kept, unused := c.applyIgnoreDirectives()

	out := make([]Diagnostic, 0, len(kept)+len(unknown)+len(unused))
	out = append(out, kept...)
	out = append(out, unknown...)
	out = append(out, unused...)
	out = dedupe(out)
	SortDiagnostics(out)
	return out
}

// banUnknownRuleCode reports diagnostics and directive codes naming rules
// that are neither registered nor reserved. The original diagnostics are
// left in place.
func (c *Context) banUnknownRuleCode() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if c.registry.Has(d.Code) || IsReservedCode(d.Code) {
			continue
		}
		out = append(out, c.unknownCode(d.Code, d.Range))
	}
	for _, dir := range c.directives.All() {
		for _, code := range dir.Codes {
			if c.registry.Has(code) || IsReservedCode(code) {
				continue
			}
			out = append(out, c.unknownCode(code, dir.Range))
		}
	}
	return out
}

func (c *Context) unknownCode(code string, rng syntax.Range) Diagnostic {
	return Diagnostic{
		Code:     CodeBanUnknownRuleCode,
		Message:  fmt.Sprintf("Unknown rule for code %q", code),
		Hint:     "Remove the code or enable the rule that reports it",
		Filename: c.tree.Filename,
		Range:    rng,
	}
}

// applyIgnoreDirectives drops suppressed diagnostics and, when
// ban-unused-ignore is registered, reports directives that suppressed
// nothing.
func (c *Context) applyIgnoreDirectives() (kept, unused []Diagnostic) {
	used := make(map[*IgnoreDirective]bool, c.directives.Len())
	for _, d := range c.diagnostics {
		if dir := c.directives.match(d); dir != nil {
			used[dir] = true
			c.suppressed++
			continue
		}
		kept = append(kept, d)
	}

	if !c.registry.ChecksUnusedIgnores() || c.unusedReportingDisabled() {
		return kept, nil
	}
	for _, dir := range c.directives.All() {
		if used[dir] || dir.HasCode(CodeBanUnusedIgnore) {
			continue
		}
		unused = append(unused, Diagnostic{
			Code:     CodeBanUnusedIgnore,
			Message:  unusedMessage(dir),
			Hint:     "Remove the ignore directive",
			Filename: c.tree.Filename,
			Range:    dir.Range,
		})
	}
	return kept, unused
}

// unusedReportingDisabled reports whether a file directive names
// ban-unused-ignore.
func (c *Context) unusedReportingDisabled() bool {
	for _, dir := range c.directives.File() {
		if dir.HasCode(CodeBanUnusedIgnore) {
			return true
		}
	}
	return false
}

func unusedMessage(dir *IgnoreDirective) string {
	switch len(dir.Codes) {
	case 0:
		return "Ignore directive was not used."
	case 1:
		return fmt.Sprintf("Ignore for code %q was not used.", dir.Codes[0])
	default:
		quoted := make([]string, len(dir.Codes))
		for i, code := range dir.Codes {
			quoted[i] = fmt.Sprintf("%q", code)
		}
		return fmt.Sprintf("Ignore for codes %s was not used.", strings.Join(quoted, ", "))
	}
}
