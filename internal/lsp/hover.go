package lsp

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// getHover documents the rule code under the cursor. Only codes inside an
// ignore directive comment are considered.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	word, rng := doc.GetWordAtPosition(params.Position)
	if word == "" {
		return nil
	}
	if kind, _ := s.completionContext(doc.GetTextBefore(rng.Start)); kind != ContextDirectiveCodes {
		return nil
	}

	rule, ok := s.linter.Registry().Get(word)
	if !ok {
		return &Hover{
			Contents: MarkupContent{
				Kind:  MarkupKindMarkdown,
				Value: fmt.Sprintf("`%s` is not an enabled rule.", word),
			},
			Range: &rng,
		}
	}

	return &Hover{
		Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: ruleMarkdown(lint.GetRuleInfo(rule))},
		Range:    &rng,
	}
}

func ruleMarkdown(info lint.RuleInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**", info.Code)
	if len(info.Tags) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(info.Tags, ", "))
	}
	sb.WriteString("\n\n")
	if info.Docs != "" {
		sb.WriteString(strings.TrimSpace(info.Docs))
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "[Documentation](%s)", info.DocURL)
	return sb.String()
}
