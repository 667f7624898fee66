package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

func parseDirectives(t *testing.T, src string) *lint.DirectiveIndex {
	t.Helper()
	tree := parse(t, "file.ts", src)
	return lint.ParseDirectives(tree.Comments, lint.DefaultIgnoreFileDirective, lint.DefaultIgnoreDirective)
}

func TestParseDirectives(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantKind   lint.DirectiveKind
		wantCodes  []string
		wantReason string
		wantLine   int
	}{
		{
			name:     "file directive without codes",
			src:      "// leaplint-ignore-file\nlet a = 1;\n",
			wantKind: lint.DirectiveFile,
		},
		{
			name:      "file directive with codes",
			src:       "// leaplint-ignore-file no-var no-debugger\n",
			wantKind:  lint.DirectiveFile,
			wantCodes: []string{"no-var", "no-debugger"},
		},
		{
			name:      "line directive with comma separated codes",
			src:       "// leaplint-ignore no-var, no-debugger\nvar a = 1;\n",
			wantKind:  lint.DirectiveLine,
			wantCodes: []string{"no-var", "no-debugger"},
			wantLine:  2,
		},
		{
			name:       "line directive with reason",
			src:        "let a = 1;\n// leaplint-ignore no-var -- legacy code, keep\nvar b = 2;\n",
			wantKind:   lint.DirectiveLine,
			wantCodes:  []string{"no-var"},
			wantReason: "legacy code, keep",
			wantLine:   3,
		},
		{
			name:     "block comment",
			src:      "/* leaplint-ignore */\nvar a = 1;\n",
			wantKind: lint.DirectiveLine,
			wantLine: 2,
		},
		{
			name:      "jsdoc block comment",
			src:       "/** leaplint-ignore no-var */\nvar a = 1;\n",
			wantKind:  lint.DirectiveLine,
			wantCodes: []string{"no-var"},
			wantLine:  2,
		},
		{
			name:     "trailing comment applies to the following line",
			src:      "let a = 1; // leaplint-ignore\nvar b = 2;\n",
			wantKind: lint.DirectiveLine,
			wantLine: 2,
		},
		{
			name:      "multi-line block comment applies after its last line",
			src:       "/*\n leaplint-ignore no-var\n*/\nvar a = 1;\n",
			wantKind:  lint.DirectiveLine,
			wantCodes: []string{"no-var"},
			wantLine:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := parseDirectives(t, tt.src)
			all := ix.All()
			require.Len(t, all, 1)

			d := all[0]
			assert.Equal(t, tt.wantKind, d.Kind)
			assert.Equal(t, tt.wantCodes, d.Codes)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.wantLine, d.Line)
			assert.Equal(t, len(tt.wantCodes) == 0, d.IgnoreAll())
		})
	}
}

func TestParseDirectives_NotDirectives(t *testing.T) {
	srcs := []string{
		"// leaplint-ignore-files\n",
		"// leaplint-ignoreno-var\n",
		"// please leaplint-ignore this\n",
		"// eslint-disable-next-line\n",
		"const s = \"// leaplint-ignore-file\";\n",
	}
	for _, src := range srcs {
		ix := parseDirectives(t, src)
		assert.Zero(t, ix.Len(), "source %q", src)
		assert.False(t, ix.IgnoresFile())
	}
}

func TestParseDirectives_FileDirectiveAnywhere(t *testing.T) {
	ix := parseDirectives(t, "let a = 1;\nfunction f() {\n  // leaplint-ignore-file\n}\n")
	assert.True(t, ix.IgnoresFile())
	require.Len(t, ix.File(), 1)
	assert.Empty(t, ix.Line())
}

func TestParseDirectives_CustomNames(t *testing.T) {
	tree := parse(t, "file.js", "// deno-lint-ignore-file no-var\n// deno-lint-ignore\nvar a;\n// leaplint-ignore\n")
	ix := lint.ParseDirectives(tree.Comments, "deno-lint-ignore-file", "deno-lint-ignore")

	require.Len(t, ix.File(), 1)
	assert.Equal(t, []string{"no-var"}, ix.File()[0].Codes)
	require.Len(t, ix.Line(), 1)
	assert.Equal(t, 3, ix.Line()[0].Line)
	assert.Len(t, ix.ForLine(3), 1)
	assert.Empty(t, ix.ForLine(5))
}
