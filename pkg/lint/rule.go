package lint

import "github.com/leapstack-labs/leaplint/pkg/syntax"

// Codes of the reserved rules. Registering a rule with one of these codes
// enables the matching reconciliation pass in Context; the rules themselves
// never report anything from Lint.
const (
	CodeBanUnknownRuleCode = "ban-unknown-rule-code"
	CodeBanUnusedIgnore    = "ban-unused-ignore"
)

// IsReservedCode reports whether code names one of the reconciliation rules.
func IsReservedCode(code string) bool {
	return code == CodeBanUnknownRuleCode || code == CodeBanUnusedIgnore
}

// Priorities used by the built-in rules. Lower runs first.
const (
	PriorityEarly   = -1000
	PriorityDefault = 0
	PriorityLate    = 1000
)

// Rule is the interface all lint rules implement.
type Rule interface {
	// Code returns the unique, stable identifier, e.g. "no-var".
	Code() string

	// Tags returns descriptive labels such as "recommended".
	Tags() []string

	// Priority orders rule execution; lower values run first.
	Priority() int

	// Lint inspects tree and reports findings through ctx.
	Lint(ctx *Context, tree *syntax.Tree)
}

// Documented is implemented by rules that ship long-form documentation.
type Documented interface {
	Docs() string
}

// BaseRule supplies default Tags and Priority. Embed it in rule types.
type BaseRule struct{}

// Tags returns no tags.
func (BaseRule) Tags() []string { return nil }

// Priority returns PriorityDefault.
func (BaseRule) Priority() int { return PriorityDefault }

// HasTag reports whether r carries tag.
func HasTag(r Rule, tag string) bool {
	for _, t := range r.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}
