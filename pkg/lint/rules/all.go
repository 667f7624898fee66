package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Tags used by the built-in rules.
const (
	TagRecommended = "recommended"
	TagFresh       = "fresh"
	TagTypeScript  = "typescript"
)

// ErrUnknownRule is returned by Select for codes that are not in the catalog.
var ErrUnknownRule = errors.New("unknown rule")

var catalog = map[string]lint.Rule{}

// register adds a rule to the catalog. Call this from init functions.
func register(r lint.Rule) {
	if _, dup := catalog[r.Code()]; dup {
		panic(fmt.Sprintf("rules: duplicate registration of %q", r.Code()))
	}
	catalog[r.Code()] = r
}

// All returns every built-in rule in execution order.
func All() []lint.Rule {
	out := make([]lint.Rule, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, r)
	}
	lint.SortRules(out)
	return out
}

// Recommended returns the rules tagged "recommended".
func Recommended() []lint.Rule {
	return ByTags(TagRecommended)
}

// ByTags returns the rules carrying at least one of tags.
func ByTags(tags ...string) []lint.Rule {
	var out []lint.Rule
	for _, r := range All() {
		for _, tag := range tags {
			if lint.HasTag(r, tag) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Lookup returns the built-in rule registered under code.
func Lookup(code string) (lint.Rule, bool) {
	r, ok := catalog[code]
	return r, ok
}

// Codes returns every built-in rule code, sorted.
func Codes() []string {
	codes := make([]string, 0, len(catalog))
	for code := range catalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Selection narrows the catalog. Tags defaults to "recommended" when empty;
// Include adds rules by code and Exclude removes them.
type Selection struct {
	Tags    []string
	Include []string
	Exclude []string
}

// Select resolves a Selection against the catalog and the given extra
// rules, which take part in tag matching and code lookup like built-ins.
func Select(sel Selection, extra ...lint.Rule) ([]lint.Rule, error) {
	pool := make(map[string]lint.Rule, len(catalog)+len(extra))
	for code, r := range catalog {
		pool[code] = r
	}
	for _, r := range extra {
		pool[r.Code()] = r
	}

	tags := sel.Tags
	if len(tags) == 0 {
		tags = []string{TagRecommended}
	}

	chosen := make(map[string]lint.Rule)
	for code, r := range pool {
		for _, tag := range tags {
			if lint.HasTag(r, tag) {
				chosen[code] = r
				break
			}
		}
	}
	for _, code := range sel.Include {
		r, ok := pool[code]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, code)
		}
		chosen[code] = r
	}
	for _, code := range sel.Exclude {
		if _, ok := pool[code]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, code)
		}
		delete(chosen, code)
	}

	out := make([]lint.Rule, 0, len(chosen))
	for _, r := range chosen {
		out = append(out, r)
	}
	lint.SortRules(out)
	return out, nil
}
