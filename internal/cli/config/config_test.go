package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "leaplint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	testutil.Chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultConcurrency(), cfg.Concurrency)
	assert.Equal(t, "leaplint-ignore-file", cfg.IgnoreFileDirective)
	assert.Equal(t, "leaplint-ignore", cfg.IgnoreDirective)
	assert.Equal(t, []string{"recommended"}, cfg.Rules.Tags)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, `output: json
concurrency: 2
ignore_directive: deno-lint-ignore
files:
  exclude: ["dist", "*.d.ts"]
rules:
  tags: [recommended, fresh]
  exclude: [no-var]
  scripts: [rules/console.star]
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "deno-lint-ignore", cfg.IgnoreDirective)
	assert.Equal(t, []string{"dist", "*.d.ts"}, cfg.Files.Exclude)
	assert.Equal(t, []string{"recommended", "fresh"}, cfg.Rules.Tags)
	assert.Equal(t, []string{"no-var"}, cfg.Rules.Exclude)
	assert.Equal(t, []string{filepath.Join(dir, "rules", "console.star")}, cfg.Rules.Scripts)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "output: markdown\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0750))
	testutil.Chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)

	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: markdown\nrules:\n  include: [from-file]\n")
	t.Setenv("LEAPLINT_OUTPUT", "text")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "output format")
	flags.StringSlice("rule", nil, "rules")
	flags.Bool("watch", false, "watch")
	require.NoError(t, flags.Set("format", "json"))
	require.NoError(t, flags.Set("rule", "no-var,no-debugger"))
	require.NoError(t, flags.Set("watch", "true"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat, "flag value should override config file and env var")
	assert.Equal(t, []string{"no-var", "no-debugger"}, cfg.Rules.Include)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: markdown\nconcurrency: 3\n")
	t.Setenv("LEAPLINT_OUTPUT", "text")
	t.Setenv("LEAPLINT_RULES__TAGS", "fresh,typescript")

	// Unset flags fall back to env
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "output format")

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat, "env var should override config file")
	assert.Equal(t, []string{"fresh", "typescript"}, cfg.Rules.Tags)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "bad yaml", content: "output: [", errSubstr: "error reading config file"},
		{name: "bad output", content: "output: html\n", errSubstr: "invalid output format"},
		{name: "zero concurrency", content: "concurrency: 0\n", errSubstr: "concurrency must be positive"},
		{name: "empty directive", content: "ignore_directive: \"\"\n", errSubstr: "must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	buf.Reset()
	NewLogger(&buf, true).Debug("debug record")
	assert.Contains(t, buf.String(), "debug record")
}

func TestConfigContext(t *testing.T) {
	def := FromContext(context.Background())
	assert.Equal(t, Default(), def)
	assert.Equal(t, []string{DefaultTag}, def.Rules.Tags)

	cfg := &Config{OutputFormat: "json"}
	assert.Same(t, cfg, FromContext(WithConfig(context.Background(), cfg)))
}

func TestLoadConfig_Cache(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, "cache:\n  path: tmp/lint.db\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("cache", false, "enable cache")
	require.NoError(t, flags.Set("cache", "true"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, "tmp", "lint.db"), cfg.Cache.Path)

	ResetConfig()
	cfg, err = LoadConfig(writeConfig(t, dir, "output: json\n"), nil)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, DefaultCache), cfg.Cache.Path)
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "LEAPLINT_OUTPUT", EnvVar("output"))
	assert.Equal(t, "LEAPLINT_RULES__TAGS", EnvVar("rules.tags"))
	assert.Equal(t, "LEAPLINT_IGNORE_DIRECTIVE", EnvVar("ignore_directive"))
}
