package lint

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateRule is returned when two rules share a code.
	ErrDuplicateRule = errors.New("duplicate rule code")
	// ErrInvalidRule is returned for nil rules or rules with an empty code.
	ErrInvalidRule = errors.New("invalid rule")
)

// Registry is the ordered, immutable set of rules a Linter runs.
type Registry struct {
	rules  []Rule
	byCode map[string]Rule

	checkUnknownRules  bool
	checkUnusedIgnores bool
}

// NewRegistry validates rules and orders them by ascending priority, then
// by code. Duplicate codes fail with ErrDuplicateRule.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{
		rules:  make([]Rule, 0, len(rules)),
		byCode: make(map[string]Rule, len(rules)),
	}
	for i, rule := range rules {
		if rule == nil {
			return nil, fmt.Errorf("%w: rule at index %d is nil", ErrInvalidRule, i)
		}
		code := rule.Code()
		if code == "" {
			return nil, fmt.Errorf("%w: rule at index %d has an empty code", ErrInvalidRule, i)
		}
		if _, exists := r.byCode[code]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, code)
		}
		r.byCode[code] = rule
		r.rules = append(r.rules, rule)
	}
	SortRules(r.rules)

	_, r.checkUnknownRules = r.byCode[CodeBanUnknownRuleCode]
	_, r.checkUnusedIgnores = r.byCode[CodeBanUnusedIgnore]
	return r, nil
}

// SortRules orders rules in place by ascending priority, then code.
func SortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		pi, pj := rules[i].Priority(), rules[j].Priority()
		if pi != pj {
			return pi < pj
		}
		return rules[i].Code() < rules[j].Code()
	})
}

// Rules returns the rules in execution order. The slice is a copy.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Has reports whether a rule with code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.byCode[code]
	return ok
}

// Get returns the rule registered under code.
func (r *Registry) Get(code string) (Rule, bool) {
	rule, ok := r.byCode[code]
	return rule, ok
}

// Codes returns the rule codes in execution order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.rules))
	for i, rule := range r.rules {
		codes[i] = rule.Code()
	}
	return codes
}

// ChecksUnknownRules reports whether ban-unknown-rule-code is enabled.
func (r *Registry) ChecksUnknownRules() bool {
	return r.checkUnknownRules
}

// ChecksUnusedIgnores reports whether ban-unused-ignore is enabled.
func (r *Registry) ChecksUnusedIgnores() bool {
	return r.checkUnusedIgnores
}
