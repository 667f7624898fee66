package script

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Metadata globals every script may declare.
const (
	globalCode     = "code"
	globalTags     = "tags"
	globalPriority = "priority"
	globalDocs     = "docs"
)

// ErrLoad is matched by every LoadError.
var ErrLoad = errors.New("script load failed")

// LoadError is returned when a script cannot be read, executed or validated.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// Loader loads script rules that share a thread pool and logger.
type Loader struct {
	pool   *ThreadPool
	logger *slog.Logger
}

// NewLoader returns a Loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{pool: NewThreadPool(0), logger: logger}
}

// LoadFiles loads every path and fails on the first error.
func (l *Loader) LoadFiles(paths []string) ([]lint.Rule, error) {
	out := make([]lint.Rule, 0, len(paths))
	for _, path := range paths {
		r, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadFile reads and loads a single script.
func (l *Loader) LoadFile(path string) (*Rule, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}
	return l.Load(path, content)
}

// Load executes src and builds a Rule from its globals.
func (l *Loader) Load(path string, src []byte) (*Rule, error) {
	thread := newThread("load:" + path)
	globals, err := starlark.ExecFile(thread, path, src, nil) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("Starlark execution error: %v", err)}
	}
	globals.Freeze()

	r := &Rule{
		path:     path,
		handlers: make(map[string]*starlark.Function),
		pool:     l.pool,
		logger:   l.logger,
	}
	if err := r.readMetadata(globals); err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	if err := r.readCallbacks(globals); err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	l.logger.Debug("loaded script rule", "rule", r.code, "script", path, "kinds", len(r.handlers))
	return r, nil
}

func (r *Rule) readMetadata(globals starlark.StringDict) error {
	code, ok := globals[globalCode].(starlark.String)
	if !ok || strings.TrimSpace(string(code)) == "" {
		return fmt.Errorf("%q must be a non-empty string", globalCode)
	}
	if strings.ContainsAny(string(code), " \t\n,") {
		return fmt.Errorf("%q must not contain whitespace or commas: %q", globalCode, string(code))
	}
	if lint.IsReservedCode(string(code)) {
		return fmt.Errorf("%q is reserved", string(code))
	}
	r.code = string(code)

	if v, ok := globals[globalTags]; ok {
		list, ok := v.(*starlark.List)
		if !ok {
			return fmt.Errorf("%q must be a list of strings", globalTags)
		}
		for i := 0; i < list.Len(); i++ {
			tag, ok := list.Index(i).(starlark.String)
			if !ok {
				return fmt.Errorf("%q must be a list of strings", globalTags)
			}
			r.tags = append(r.tags, string(tag))
		}
	}

	if v, ok := globals[globalPriority]; ok {
		if err := starlark.AsInt(v, &r.priority); err != nil {
			return fmt.Errorf("%q must be an int: %w", globalPriority, err)
		}
	}

	if v, ok := globals[globalDocs]; ok {
		docs, ok := v.(starlark.String)
		if !ok {
			return fmt.Errorf("%q must be a string", globalDocs)
		}
		r.docs = string(docs)
	}
	return nil
}

func (r *Rule) readCallbacks(globals starlark.StringDict) error {
	for name, v := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		fn, ok := v.(*starlark.Function)
		if !ok {
			continue
		}
		if fn.NumParams() != 2 {
			return fmt.Errorf("callback %q must take (node, ctx), got %d parameters", name, fn.NumParams())
		}
		if name == nodeCallback {
			r.generic = fn
			continue
		}
		r.handlers[name] = fn
	}
	if r.generic == nil && len(r.handlers) == 0 {
		return errors.New("script defines no callbacks")
	}
	return nil
}
