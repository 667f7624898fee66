package lint

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// Default directive names.
const (
	DefaultIgnoreFileDirective = "leaplint-ignore-file"
	DefaultIgnoreDirective     = "leaplint-ignore"
)

// ErrInvalidDirective is returned by Build for unusable directive names.
var ErrInvalidDirective = errors.New("invalid ignore directive name")

// Builder configures a Linter.
type Builder struct {
	fileDirective string
	lineDirective string
	rules         []Rule
	logger        *slog.Logger
}

// NewBuilder returns a Builder with the default directive names, no rules
// and a discarding logger.
func NewBuilder() *Builder {
	return &Builder{
		fileDirective: DefaultIgnoreFileDirective,
		lineDirective: DefaultIgnoreDirective,
	}
}

// IgnoreFileDirective sets the name of the whole-file ignore directive.
func (b *Builder) IgnoreFileDirective(name string) *Builder {
	b.fileDirective = name
	return b
}

// IgnoreDirective sets the name of the next-line ignore directive.
func (b *Builder) IgnoreDirective(name string) *Builder {
	b.lineDirective = name
	return b
}

// Rules replaces the rule set.
func (b *Builder) Rules(rules ...Rule) *Builder {
	b.rules = append([]Rule(nil), rules...)
	return b
}

// Logger sets the logger used for per-file debug records.
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and returns an immutable Linter.
func (b *Builder) Build() (*Linter, error) {
	if err := validateDirective(b.fileDirective); err != nil {
		return nil, fmt.Errorf("file directive: %w", err)
	}
	if err := validateDirective(b.lineDirective); err != nil {
		return nil, fmt.Errorf("line directive: %w", err)
	}
	if b.fileDirective == b.lineDirective {
		return nil, fmt.Errorf("%w: file and line directives are both %q", ErrInvalidDirective, b.fileDirective)
	}

	registry, err := NewRegistry(b.rules...)
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Linter{
		fileDirective: b.fileDirective,
		lineDirective: b.lineDirective,
		registry:      registry,
		logger:        logger,
	}, nil
}

func validateDirective(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDirective)
	}
	if strings.ContainsFunc(name, isSpace) || strings.Contains(name, ",") {
		return fmt.Errorf("%w: %q contains whitespace or commas", ErrInvalidDirective, name)
	}
	return nil
}

// Linter runs a fixed set of rules over files. It holds no per-file state
// and is safe for concurrent use.
type Linter struct {
	fileDirective string
	lineDirective string
	registry      *Registry
	logger        *slog.Logger
}

// LintFileOptions describes one file to lint.
type LintFileOptions struct {
	Filename string
	// MediaType selects the grammar. MediaTypeUnknown derives it from Filename.
	MediaType syntax.MediaType
	Source    string
}

// Registry returns the ordered rule set.
func (l *Linter) Registry() *Registry {
	return l.registry
}

// IgnoreFileDirective returns the whole-file directive name.
func (l *Linter) IgnoreFileDirective() string {
	return l.fileDirective
}

// IgnoreDirective returns the next-line directive name.
func (l *Linter) IgnoreDirective() string {
	return l.lineDirective
}

// LintFile parses opts.Source and lints the resulting tree. A parse failure
// is returned as a *syntax.ParseError with no diagnostics.
func (l *Linter) LintFile(opts LintFileOptions) (*syntax.Tree, []Diagnostic, error) {
	media := opts.MediaType
	if media == syntax.MediaTypeUnknown {
		media = syntax.MediaTypeFromPath(opts.Filename)
	}
	tree, err := syntax.Parse(opts.Filename, media, []byte(opts.Source))
	if err != nil {
		l.logger.Debug("parse failed", "file", opts.Filename, "error", err)
		return nil, nil, err
	}
	return tree, l.LintWithTree(tree), nil
}

// LintWithTree lints an already parsed tree.
func (l *Linter) LintWithTree(tree *syntax.Tree) []Diagnostic {
	directives := ParseDirectives(tree.Comments, l.fileDirective, l.lineDirective)
	if directives.IgnoresFile() {
		l.logger.Debug("file ignored", "file", tree.Filename, "ignored", true)
		return nil
	}

	ctx := newContext(tree, l.registry, directives)
	for _, rule := range l.registry.rules {
		rule.Lint(ctx, tree)
	}
	diags := ctx.finish()

	l.logger.Debug("linted file",
		"file", tree.Filename,
		"rules", l.registry.Len(),
		"diagnostics", len(diags),
		"suppressed", ctx.suppressed,
	)
	return diags
}
