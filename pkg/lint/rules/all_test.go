package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

type extraRule struct{ lint.BaseRule }

func (extraRule) Code() string                     { return "custom-rule" }
func (extraRule) Tags() []string                   { return []string{"custom"} }
func (extraRule) Lint(*lint.Context, *syntax.Tree) {}

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{
		"ban-unknown-rule-code",
		"ban-unused-ignore",
		"fresh-handler-export",
		"no-debugger",
		"no-explicit-any",
		"no-redeclare",
		"no-var",
	}, rules.Codes())

	all := rules.All()
	require.Len(t, all, 7)
	assert.Equal(t, lint.CodeBanUnknownRuleCode, all[0].Code())
	assert.Equal(t, "no-redeclare", all[len(all)-1].Code(), "late priority runs last")

	for _, r := range all {
		doc, ok := r.(lint.Documented)
		require.True(t, ok, "%s has no docs", r.Code())
		assert.NotEmpty(t, doc.Docs())
	}

	r, ok := rules.Lookup("no-var")
	require.True(t, ok)
	assert.Equal(t, "no-var", r.Code())
	_, ok = rules.Lookup("nope")
	assert.False(t, ok)
}

func TestRecommendedExcludesFresh(t *testing.T) {
	for _, r := range rules.Recommended() {
		assert.NotEqual(t, "fresh-handler-export", r.Code())
	}
	fresh := rules.ByTags(rules.TagFresh)
	require.Len(t, fresh, 1)
	assert.Equal(t, "fresh-handler-export", fresh[0].Code())
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		sel     rules.Selection
		want    []string
		wantErr error
	}{
		{
			name: "default is recommended",
			sel:  rules.Selection{},
			want: []string{"ban-unknown-rule-code", "ban-unused-ignore", "no-debugger", "no-explicit-any", "no-var", "no-redeclare"},
		},
		{
			name: "tags",
			sel:  rules.Selection{Tags: []string{"fresh", "typescript"}},
			want: []string{"fresh-handler-export", "no-explicit-any"},
		},
		{
			name: "include and exclude",
			sel: rules.Selection{
				Include: []string{"fresh-handler-export"},
				Exclude: []string{"no-var", "no-redeclare", "no-explicit-any"},
			},
			want: []string{"ban-unknown-rule-code", "ban-unused-ignore", "fresh-handler-export", "no-debugger"},
		},
		{
			name: "extra rule by tag",
			sel:  rules.Selection{Tags: []string{"custom"}},
			want: []string{"custom-rule"},
		},
		{
			name:    "unknown include",
			sel:     rules.Selection{Include: []string{"no-such-rule"}},
			wantErr: rules.ErrUnknownRule,
		},
		{
			name:    "unknown exclude",
			sel:     rules.Selection{Exclude: []string{"no-such-rule"}},
			wantErr: rules.ErrUnknownRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rules.Select(tt.sel, extraRule{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			codes := make([]string, len(got))
			for i, r := range got {
				codes[i] = r.Code()
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}
