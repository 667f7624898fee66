package lsp

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// CompletionContextType describes what kind of completion context we're in.
type CompletionContextType int

// Completion context type constants.
const (
	ContextUnknown        CompletionContextType = iota
	ContextDirectiveName                        // After "//" at the start of a comment
	ContextDirectiveCodes                       // After "// leaplint-ignore "
)

// commentStartPattern matches an unfinished word right after a comment
// opener.
var commentStartPattern = regexp.MustCompile(`(?://|/\*)\s*([\w-]*)$`)

// completionContext classifies the text before the cursor. For directive
// codes it also returns the codes already listed.
func (s *Server) completionContext(before string) (CompletionContextType, []string) {
	for _, name := range s.directiveNames() {
		re := regexp.MustCompile(`(?://|/\*)\s*` + regexp.QuoteMeta(name) + `(\s.*)$`)
		m := re.FindStringSubmatch(before)
		if m == nil {
			continue
		}
		rest := m[1]
		if strings.Contains(rest, "--") || strings.Contains(rest, "*/") {
			return ContextUnknown, nil
		}
		return ContextDirectiveCodes, strings.FieldsFunc(rest, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	}
	if commentStartPattern.MatchString(before) {
		return ContextDirectiveName, nil
	}
	return ContextUnknown, nil
}

// directiveNames returns the configured directive names, longest first so
// a file directive is not read as a line directive plus a suffix.
func (s *Server) directiveNames() []string {
	file, line := s.linter.IgnoreFileDirective(), s.linter.IgnoreDirective()
	if len(line) > len(file) {
		return []string{line, file}
	}
	return []string{file, line}
}

// getCompletions returns completion items for the given position.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return []CompletionItem{}
	}

	kind, listed := s.completionContext(doc.GetTextBefore(params.Position))
	switch kind {
	case ContextDirectiveName:
		return s.directiveCompletions()
	case ContextDirectiveCodes:
		return s.codeCompletions(listed)
	default:
		return []CompletionItem{}
	}
}

func (s *Server) directiveCompletions() []CompletionItem {
	return []CompletionItem{
		{
			Label:  s.linter.IgnoreDirective(),
			Kind:   CompletionItemKindKeyword,
			Detail: "ignore diagnostics on the next line",
		},
		{
			Label:  s.linter.IgnoreFileDirective(),
			Kind:   CompletionItemKindKeyword,
			Detail: "ignore diagnostics in this file",
		},
	}
}

// codeCompletions lists every registered rule code not already named by
// the directive.
func (s *Server) codeCompletions(listed []string) []CompletionItem {
	seen := make(map[string]bool, len(listed))
	for _, code := range listed {
		seen[code] = true
	}

	items := []CompletionItem{}
	for _, rule := range s.linter.Registry().Rules() {
		if seen[rule.Code()] {
			continue
		}
		info := lint.GetRuleInfo(rule)
		item := CompletionItem{
			Label:    info.Code,
			Kind:     CompletionItemKindConstant,
			Detail:   strings.Join(info.Tags, ", "),
			SortText: info.Code,
		}
		if info.Docs != "" {
			item.Documentation = &MarkupContent{Kind: MarkupKindMarkdown, Value: info.Docs}
		}
		items = append(items, item)
	}
	return items
}
