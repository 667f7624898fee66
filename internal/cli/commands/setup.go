// Package commands implements the leaplint subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/leaplint/internal/cache"
	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
	"github.com/leapstack-labs/leaplint/pkg/lint/runner"
	"github.com/leapstack-labs/leaplint/pkg/lint/script"
	"github.com/spf13/cobra"
)

// ErrIssuesFound is returned by lint when any file has diagnostics or
// failed to parse. main turns it into exit status 1.
var ErrIssuesFound = errors.New("lint issues found")

// AnnotationIssuesExit marks commands that may return ErrIssuesFound.
const AnnotationIssuesExit = "leaplint/issues-exit"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// ScriptRules loads the configured Starlark rules.
func (c *CommandContext) ScriptRules() ([]lint.Rule, error) {
	if len(c.Cfg.Rules.Scripts) == 0 {
		return nil, nil
	}
	loaded, err := script.NewLoader(c.Logger).LoadFiles(c.Cfg.Rules.Scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to load script rules: %w", err)
	}
	return loaded, nil
}

// SelectRules resolves the configured rule selection against the built-in
// catalog and the script rules.
func (c *CommandContext) SelectRules() ([]lint.Rule, error) {
	extra, err := c.ScriptRules()
	if err != nil {
		return nil, err
	}
	return rules.Select(c.selection(), extra...)
}

func (c *CommandContext) selection() rules.Selection {
	return rules.Selection{
		Tags:    c.Cfg.Rules.Tags,
		Include: c.Cfg.Rules.Include,
		Exclude: c.Cfg.Rules.Exclude,
	}
}

// BuildLinter builds a Linter from the configuration.
func (c *CommandContext) BuildLinter() (*lint.Linter, error) {
	selected, err := c.SelectRules()
	if err != nil {
		return nil, err
	}
	linter, err := lint.NewBuilder().
		IgnoreFileDirective(c.Cfg.IgnoreFileDirective).
		IgnoreDirective(c.Cfg.IgnoreDirective).
		Rules(selected...).
		Logger(c.Logger).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build linter: %w", err)
	}
	c.Logger.Debug("linter ready", "rules", linter.Registry().Codes())
	return linter, nil
}

// NewRunner returns a runner for linter honoring the files configuration.
func (c *CommandContext) NewRunner(linter *lint.Linter) *runner.Runner {
	return &runner.Runner{
		Linter:      linter,
		Concurrency: c.Cfg.Concurrency,
		Extensions:  c.Cfg.Files.Include,
		Exclude:     c.Cfg.Files.Exclude,
		Logger:      c.Logger,
	}
}

// OpenCache opens the result cache keyed on everything about linter that
// affects its output.
func (c *CommandContext) OpenCache(ctx context.Context, linter *lint.Linter) (*cache.Store, error) {
	parts := []string{linter.IgnoreFileDirective(), linter.IgnoreDirective()}
	parts = append(parts, linter.Registry().Codes()...)
	for _, path := range c.Cfg.Rules.Scripts {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read script %s: %w", path, err)
		}
		parts = append(parts, path, string(src))
	}

	store, err := cache.Open(ctx, c.Cfg.Cache.Path, cache.Fingerprint(parts...))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", c.Cfg.Cache.Path, err)
	}
	c.Logger.Debug("cache opened", "path", c.Cfg.Cache.Path)
	return store, nil
}
