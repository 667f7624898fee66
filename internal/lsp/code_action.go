package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	s.sendResponse(msg.ID, s.getCodeActions(params), nil)
	return nil
}

// getCodeActions offers quick fixes for the leaplint diagnostics in the
// request context: suppressing a code on one line or for the whole file,
// and deleting directives reported as unused.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return actions
	}

	for _, diag := range params.Context.Diagnostics {
		if diag.Source != diagnosticSource || diag.Code == "" {
			continue
		}

		if diag.Code == lint.CodeBanUnusedIgnore {
			actions = append(actions, removeDirectiveAction(doc, diag))
			continue
		}

		actions = append(actions,
			ignoreLineAction(doc, diag, s.linter.IgnoreDirective()),
			ignoreFileAction(doc, diag, s.linter.IgnoreFileDirective()),
		)
	}
	return actions
}

func ignoreLineAction(doc *Document, diag Diagnostic, directive string) CodeAction {
	line := int(diag.Range.Start.Line)
	text := doc.GetLine(line)
	indent := text[:len(text)-len(strings.TrimLeft(text, " \t"))]
	at := Position{Line: diag.Range.Start.Line}

	return CodeAction{
		Title:       fmt.Sprintf("Ignore `%s` on this line", diag.Code),
		Kind:        CodeActionKindQuickFix,
		Diagnostics: []Diagnostic{diag},
		IsPreferred: true,
		Edit: singleEdit(doc.URI, TextEdit{
			Range:   Range{Start: at, End: at},
			NewText: fmt.Sprintf("%s// %s %s\n", indent, directive, diag.Code),
		}),
	}
}

func ignoreFileAction(doc *Document, diag Diagnostic, directive string) CodeAction {
	return CodeAction{
		Title:       fmt.Sprintf("Ignore `%s` for this file", diag.Code),
		Kind:        CodeActionKindQuickFix,
		Diagnostics: []Diagnostic{diag},
		Edit: singleEdit(doc.URI, TextEdit{
			NewText: fmt.Sprintf("// %s %s\n", directive, diag.Code),
		}),
	}
}

// removeDirectiveAction deletes the directive comment. When the comment is
// alone on its line, the whole line goes.
func removeDirectiveAction(doc *Document, diag Diagnostic) CodeAction {
	rng := diag.Range
	if rng.Start.Line == rng.End.Line {
		line := int(rng.Start.Line)
		text := doc.GetLine(line)
		start := doc.PositionToOffset(rng.Start) - doc.Lines[line]
		end := doc.PositionToOffset(rng.End) - doc.Lines[line]
		if strings.TrimSpace(text[:start]) == "" && strings.TrimSpace(text[end:]) == "" {
			rng = Range{
				Start: Position{Line: rng.Start.Line},
				End:   Position{Line: rng.Start.Line + 1},
			}
		}
	}

	return CodeAction{
		Title:       "Remove unused ignore directive",
		Kind:        CodeActionKindQuickFix,
		Diagnostics: []Diagnostic{diag},
		IsPreferred: true,
		Edit:        singleEdit(doc.URI, TextEdit{Range: rng}),
	}
}

func singleEdit(uri string, edit TextEdit) *WorkspaceEdit {
	return &WorkspaceEdit{Changes: map[string][]TextEdit{uri: {edit}}}
}
