package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})

	assert.Equal(t, "| A | B |\n|---|---|\n| x\\|y | z |\n\n", string(w.Bytes()))
}

func TestGenerateRuleDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateRuleDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)

	for _, rule := range rules.All() {
		code := rule.Code()
		assert.Contains(t, string(index), "`"+code+"`")

		page, err := os.ReadFile(filepath.Join(dir, code+".md"))
		require.NoError(t, err, code)
		assert.Contains(t, string(page), "# "+code+"\n")
		assert.True(t, strings.HasSuffix(lint.BuildDocURL(code), "/"+code), "doc URL matches page name")
	}
}

func TestGenerateConfigDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateConfigDocs(dir))

	page, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "ignore_directive: leaplint-ignore")
	assert.Contains(t, string(page), "`rules.scripts`")
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "`LEAPLINT_RULES__TAGS`")
	assert.Contains(t, string(index), "`cache info`")
	assert.Contains(t, string(index), "`lint`: diagnostics reported")

	lintPage, err := os.ReadFile(filepath.Join(dir, "lint.md"))
	require.NoError(t, err)
	page := string(lintPage)

	// Selection flags get their own section after the other options.
	options := strings.Index(page, "## Options")
	selection := strings.Index(page, "## Rule Selection")
	require.NotEqual(t, -1, options)
	require.NotEqual(t, -1, selection)
	assert.Less(t, options, selection)
	assert.Equal(t, 1, strings.Count(page, "`--exclude-rule`"))
	assert.NotContains(t, page[options:selection], "`--tag`")
	assert.Contains(t, page, "## Exit Codes")
	assert.Contains(t, page, `"lint issues found"`)

	rulesPage, err := os.ReadFile(filepath.Join(dir, "rules.md"))
	require.NoError(t, err)
	assert.Contains(t, string(rulesPage), "## Rule Selection")
	assert.NotContains(t, string(rulesPage), "## Exit Codes")

	cachePage, err := os.ReadFile(filepath.Join(dir, "cache.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cachePage), "## info\n")
	assert.Contains(t, string(cachePage), "## clean\n")
	assert.Contains(t, string(cachePage), "leaplint cache <subcommand> [options]")
}
