package lsp

import (
	"errors"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// diagnosticSource tags every diagnostic the server publishes.
const diagnosticSource = "leaplint"

// publishDiagnostics lints doc and publishes the result.
func (s *Server) publishDiagnostics(doc *Document) {
	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: s.lintDocument(doc),
	})
}

// lintDocument runs the linter over doc. A parse failure becomes a single
// error diagnostic; documents in other languages get none.
func (s *Server) lintDocument(doc *Document) []Diagnostic {
	if doc.MediaType == syntax.MediaTypeUnknown {
		s.logger.Debug("skipping document of unknown language", "uri", doc.URI)
		return []Diagnostic{}
	}
	_, diags, err := s.linter.LintFile(lint.LintFileOptions{
		Filename:  URIToPath(doc.URI),
		MediaType: doc.MediaType,
		Source:    doc.Content,
	})
	if err != nil {
		s.logger.Debug("lint failed", "uri", doc.URI, "error", err)
		d := Diagnostic{
			Severity: DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  err.Error(),
		}
		var perr *syntax.ParseError
		if errors.As(err, &perr) {
			d.Range = doc.ToRange(perr.Range)
			d.Message = perr.Message
		}
		return []Diagnostic{d}
	}

	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, convertDiagnostic(doc, d))
	}
	return out
}

// convertDiagnostic converts a lint diagnostic. The hint, when present,
// follows the message on its own line.
func convertDiagnostic(doc *Document, d lint.Diagnostic) Diagnostic {
	msg := d.Message
	if d.Hint != "" {
		msg += "\n" + d.Hint
	}
	return Diagnostic{
		Range:           doc.ToRange(d.Range),
		Severity:        DiagnosticSeverityWarning,
		Code:            d.Code,
		CodeDescription: &CodeDescription{Href: lint.BuildDocURL(d.Code)},
		Source:          diagnosticSource,
		Message:         msg,
	}
}
