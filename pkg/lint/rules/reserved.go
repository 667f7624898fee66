package rules

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func init() {
	register(BanUnknownRuleCode)
	register(BanUnusedIgnore)
}

// reservedRule enables one of the reconciliation passes of lint.Context.
// Its Lint method reports nothing.
type reservedRule struct {
	lint.BaseRule
	code string
	docs string
}

func (r *reservedRule) Code() string                   { return r.code }
func (*reservedRule) Tags() []string                   { return []string{TagRecommended} }
func (*reservedRule) Priority() int                    { return lint.PriorityEarly }
func (*reservedRule) Lint(*lint.Context, *syntax.Tree) {}
func (r *reservedRule) Docs() string                   { return r.docs }

// BanUnknownRuleCode reports diagnostics and ignore directives that refer
// to rules which are not enabled.
var BanUnknownRuleCode lint.Rule = &reservedRule{
	code: lint.CodeBanUnknownRuleCode,
	docs: `Warns when a diagnostic or an ignore directive refers to a rule code
that is not enabled.

Misspelled codes in ignore directives silently suppress nothing.

### Invalid:

` + "```typescript" + `
// leaplint-ignore no-vra
var a = 1;
` + "```" + `

### Valid:

` + "```typescript" + `
// leaplint-ignore no-var
var a = 1;
` + "```",
}

// BanUnusedIgnore reports ignore directives that did not suppress any
// diagnostic.
var BanUnusedIgnore lint.Rule = &reservedRule{
	code: lint.CodeBanUnusedIgnore,
	docs: `Warns when an ignore directive does not suppress any diagnostic.

Stale directives hide future problems on the lines they cover. A directive
that names ban-unused-ignore is never reported, and a file directive naming
it turns the check off for the whole file.

### Invalid:

` + "```typescript" + `
// leaplint-ignore no-var
const a = 1;
` + "```" + `

### Valid:

` + "```typescript" + `
// leaplint-ignore no-var
var a = 1;
` + "```",
}
