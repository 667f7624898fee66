package lint

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// Diagnostic is a single finding.
type Diagnostic struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Hint     string       `json:"hint,omitempty"`
	Filename string       `json:"filename"`
	Range    syntax.Range `json:"range"`
}

// String formats the diagnostic as "file:line:col: code: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%s: %s: %s", d.Filename, d.Range.Start, d.Code, d.Message)
}

// SortDiagnostics stably orders diagnostics by start line.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Range.Start.Line < diags[j].Range.Start.Line
	})
}

// dedupe drops exact repeats of code, range and message, keeping the first.
func dedupe(diags []Diagnostic) []Diagnostic {
	type key struct {
		code, message string
		rng           syntax.Range
	}
	seen := make(map[key]struct{}, len(diags))
	out := diags[:0]
	for _, d := range diags {
		k := key{code: d.Code, message: d.Message, rng: d.Range}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}
