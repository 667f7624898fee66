package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/leapstack-labs/leaplint/internal/cache"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/runner"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format  string // Output format: text, markdown, json
	Watch   bool   // Re-lint on file changes
	Frames  bool   // Show source frames under diagnostics
	Context int    // Lines of context in source frames
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript and TypeScript files",
		Long: `Lint files and directories with the configured rules.

Directories are walked recursively, skipping node_modules and hidden
directories. Rules are selected by tag and code in leaplint.yaml or with
flags; Starlark rule scripts are loaded alongside the built-in rules.

Exits with status 1 when any diagnostic is reported or a file fails to parse.

Output adapts to environment:
  - Terminal: Styled output with source frames
  - Piped/Scripted: Markdown format
  - JSON or YAML: Machine-readable format`,
		Example: `  # Lint the current directory
  leaplint lint

  # Lint specific paths
  leaplint lint src/ routes/_middleware.ts

  # Run only some rules
  leaplint lint --tag recommended --exclude-rule no-var

  # Add a Starlark rule
  leaplint lint --script rules/no-console.star

  # Skip files that have not changed since the last run
  leaplint lint --cache

  # Re-lint on every change
  leaplint lint --watch src/

  # Output as JSON
  leaplint lint --format json`,
		Annotations: map[string]string{AnnotationIssuesExit: "diagnostics reported or a file failed to parse"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch files and re-lint on change")
	cmd.Flags().BoolVar(&opts.Frames, "frames", true, "Show source frames under diagnostics")
	cmd.Flags().IntVar(&opts.Context, "context", 1, "Lines of context around source frames")
	cmd.Flags().StringSlice("rule", nil, "Enable rules by code")
	cmd.Flags().StringSlice("exclude-rule", nil, "Disable rules by code")
	cmd.Flags().StringSlice("tag", nil, "Enable rules carrying any of these tags (default: recommended)")
	cmd.Flags().StringSlice("script", nil, "Load a Starlark rule file")
	cmd.Flags().StringSlice("exclude", nil, "Skip files and directories matching a glob")
	cmd.Flags().StringSlice("ext", nil, "File extensions to lint when walking directories")
	cmd.Flags().String("ignore-directive", "", "Name of the next-line ignore directive")
	cmd.Flags().String("ignore-file-directive", "", "Name of the file ignore directive")
	cmd.Flags().Bool("cache", false, "Reuse results for files unchanged since the last run")
	cmd.Flags().String("cache-path", "", "Cache database (default: .leaplint/cache.db)")

	return cmd
}

func runLint(cmd *cobra.Command, paths []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	linter, err := cmdCtx.BuildLinter()
	if err != nil {
		return err
	}
	run := cmdCtx.NewRunner(linter)

	var store *cache.Store
	if cmdCtx.Cfg.Cache.Enabled {
		store, err = cmdCtx.OpenCache(cmd.Context(), linter)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		run.Cache = store
	}

	if opts.Watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return run.Watch(ctx, paths, func(report *runner.Report) {
			renderLintResults(r, report, opts)
		})
	}

	report, err := run.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}
	if store != nil {
		recordRun(cmd.Context(), store, report, cmdCtx.Logger)
	}
	if renderLintResults(r, report, opts) {
		return ErrIssuesFound
	}
	return nil
}

// recordRun stores the run totals. Failures only cost the history, so they
// are logged.
func recordRun(ctx context.Context, store *cache.Store, report *runner.Report, logger *slog.Logger) {
	id, err := store.BeginRun(ctx)
	if err == nil {
		err = store.CompleteRun(ctx, id, len(report.Files), report.CachedCount(), report.DiagnosticCount())
	}
	if err != nil {
		logger.Warn("failed to record lint run", "error", err)
	}
}

// renderLintResults writes the report and reports whether it has issues.
func renderLintResults(r *output.Renderer, report *runner.Report, opts *LintOptions) bool {
	summary := summarize(report)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		_ = r.JSON(lintOutput(report, summary))
		return report.HasIssues()
	case output.ModeYAML:
		_ = r.YAML(lintOutput(report, summary))
		return report.HasIssues()
	}

	if !report.HasIssues() {
		r.Success(fmt.Sprintf("No lint issues found in %d files", summary.FilesChecked))
		return false
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, res := range report.Files {
		if res.Err == nil && len(res.Diagnostics) == 0 {
			continue
		}
		if markdown {
			renderFileMarkdown(r, res, opts)
		} else {
			renderFileText(r, res, opts)
		}
	}

	parts := []string{fmt.Sprintf("%d problems", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d files failed", summary.Errors))
	}
	r.Printf("Summary: %s in %d of %d files (%s)\n",
		strings.Join(parts, ", "), summary.FilesWithIssues, summary.FilesChecked, summary.Duration)
	return true
}

func renderFileText(r *output.Renderer, res runner.FileResult, opts *LintOptions) {
	s := r.Styles()
	r.Println(s.Path.Render(res.Path))
	if res.Err != nil {
		r.Printf("  %s  %s\n", s.Error.Render("error"), res.Err)
		if frame := parseErrorFrame(res, opts, r.IsTTY()); frame != "" {
			r.Println(indent(frame, "    "))
		}
		r.Println("")
		return
	}
	for _, d := range res.Diagnostics {
		loc := fmt.Sprintf("%d:%d", d.Range.Start.Line, d.Range.Start.Column)
		r.Printf("  %s  %s  %s\n",
			s.Muted.Render(fmt.Sprintf("%-7s", loc)),
			s.Code.Render(d.Code),
			d.Message,
		)
		if d.Hint != "" {
			r.Printf("           %s %s\n", s.Hint.Render("hint:"), d.Hint)
		}
		if opts.Frames {
			frame := output.CodeFrame(res.Source, d.Range, output.FrameOptions{
				Filename:  res.Path,
				Context:   opts.Context,
				Highlight: r.IsTTY(),
			})
			if frame != "" {
				r.Println(indent(frame, "    "))
			}
		}
		r.Printf("           %s\n", s.Muted.Render(lint.BuildDocURL(d.Code)))
	}
	r.Println("")
}

func renderFileMarkdown(r *output.Renderer, res runner.FileResult, opts *LintOptions) {
	r.Println(output.FormatHeader(2, res.Path))
	r.Println("")
	if res.Err != nil {
		r.Printf("- **error:** %s\n", res.Err)
		if frame := parseErrorFrame(res, opts, false); frame != "" {
			r.Println("")
			r.Println(output.FormatCodeBlock("", frame))
		}
		r.Println("")
		return
	}
	for _, d := range res.Diagnostics {
		r.Printf("- `%d:%d` **%s** %s\n", d.Range.Start.Line, d.Range.Start.Column, d.Code, d.Message)
		if d.Hint != "" {
			r.Printf("  - hint: %s\n", d.Hint)
		}
		if opts.Frames {
			frame := output.CodeFrame(res.Source, d.Range, output.FrameOptions{Context: opts.Context})
			if frame != "" {
				r.Println("")
				r.Println(indent(output.FormatCodeBlock("", frame), "  "))
				r.Println("")
			}
		}
	}
	r.Println("")
}

func parseErrorFrame(res runner.FileResult, opts *LintOptions, highlight bool) string {
	var perr *syntax.ParseError
	if !opts.Frames || !errors.As(res.Err, &perr) {
		return ""
	}
	return output.CodeFrame(res.Source, perr.Range, output.FrameOptions{
		Filename:  res.Path,
		Context:   opts.Context,
		Highlight: highlight,
	})
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func summarize(report *runner.Report) output.LintSummary {
	summary := output.LintSummary{
		FilesChecked: len(report.Files),
		TotalIssues:  report.DiagnosticCount(),
		Errors:       report.ErrorCount(),
		Duration:     report.Duration.Round(time.Millisecond).String(),
	}
	for _, res := range report.Files {
		if res.Err != nil || len(res.Diagnostics) > 0 {
			summary.FilesWithIssues++
		}
	}
	return summary
}

func lintOutput(report *runner.Report, summary output.LintSummary) output.LintOutput {
	out := output.LintOutput{Summary: summary, Files: []output.LintFileResult{}}
	for _, res := range report.Files {
		if res.Err == nil && len(res.Diagnostics) == 0 {
			continue
		}
		fr := output.LintFileResult{Path: res.Path, Diagnostics: []output.LintDiagnostic{}}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		for _, d := range res.Diagnostics {
			fr.Diagnostics = append(fr.Diagnostics, output.LintDiagnostic{
				Code:      d.Code,
				Message:   d.Message,
				Hint:      d.Hint,
				Line:      d.Range.Start.Line,
				Column:    d.Range.Start.Column,
				EndLine:   d.Range.End.Line,
				EndColumn: d.Range.End.Column,
				DocURL:    lint.BuildDocURL(d.Code),
			})
		}
		out.Files = append(out.Files, fr)
	}
	return out
}
