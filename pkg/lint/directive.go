package lint

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// DirectiveKind distinguishes file-wide from next-line ignore directives.
type DirectiveKind int

// Directive kinds.
const (
	DirectiveFile DirectiveKind = iota
	DirectiveLine
)

// String returns the kind name.
func (k DirectiveKind) String() string {
	if k == DirectiveFile {
		return "file"
	}
	return "line"
}

// IgnoreDirective is a parsed ignore comment.
type IgnoreDirective struct {
	Kind   DirectiveKind
	Range  syntax.Range // span of the comment
	Codes  []string     // empty means every rule
	Reason string       // text after a standalone "--"
	Line   int          // 1-based line a DirectiveLine applies to; 0 for DirectiveFile
}

// IgnoreAll reports whether the directive names no codes.
func (d *IgnoreDirective) IgnoreAll() bool {
	return len(d.Codes) == 0
}

// HasCode reports whether the directive names code.
func (d *IgnoreDirective) HasCode(code string) bool {
	for _, c := range d.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// Covers reports whether the directive suppresses diag.
func (d *IgnoreDirective) Covers(diag Diagnostic) bool {
	if d.Kind == DirectiveLine && diag.Range.Start.Line != d.Line {
		return false
	}
	return d.IgnoreAll() || d.HasCode(diag.Code)
}

// DirectiveIndex holds every ignore directive of one file.
type DirectiveIndex struct {
	file   []*IgnoreDirective
	line   []*IgnoreDirective
	byLine map[int][]*IgnoreDirective
}

// ParseDirectives scans comments for directives named fileDirective and
// lineDirective. A comment is a directive when its first word equals the
// directive name exactly; the remaining words, split on whitespace and
// commas, are rule codes up to a standalone "--".
func ParseDirectives(comments []syntax.Comment, fileDirective, lineDirective string) *DirectiveIndex {
	ix := &DirectiveIndex{byLine: make(map[int][]*IgnoreDirective)}
	for i := range comments {
		c := &comments[i]
		name, rest := splitFirstWord(c.Body())
		switch name {
		case fileDirective:
			codes, reason := parseCodes(rest)
			ix.file = append(ix.file, &IgnoreDirective{
				Kind:   DirectiveFile,
				Range:  c.Range,
				Codes:  codes,
				Reason: reason,
			})
		case lineDirective:
			codes, reason := parseCodes(rest)
			d := &IgnoreDirective{
				Kind:   DirectiveLine,
				Range:  c.Range,
				Codes:  codes,
				Reason: reason,
				Line:   c.Range.End.Line + 1,
			}
			ix.line = append(ix.line, d)
			ix.byLine[d.Line] = append(ix.byLine[d.Line], d)
		}
	}
	return ix
}

// IgnoresFile reports whether a file directive without codes is present.
func (ix *DirectiveIndex) IgnoresFile() bool {
	for _, d := range ix.file {
		if d.IgnoreAll() {
			return true
		}
	}
	return false
}

// File returns the file directives in source order.
func (ix *DirectiveIndex) File() []*IgnoreDirective {
	return ix.file
}

// Line returns the next-line directives in source order.
func (ix *DirectiveIndex) Line() []*IgnoreDirective {
	return ix.line
}

// ForLine returns the directives applying to a 1-based line.
func (ix *DirectiveIndex) ForLine(line int) []*IgnoreDirective {
	return ix.byLine[line]
}

// All returns file directives followed by line directives.
func (ix *DirectiveIndex) All() []*IgnoreDirective {
	out := make([]*IgnoreDirective, 0, len(ix.file)+len(ix.line))
	out = append(out, ix.file...)
	return append(out, ix.line...)
}

// Len returns the number of directives.
func (ix *DirectiveIndex) Len() int {
	return len(ix.file) + len(ix.line)
}

// match returns the first directive covering diag: file directives are
// consulted before line directives.
func (ix *DirectiveIndex) match(diag Diagnostic) *IgnoreDirective {
	for _, d := range ix.file {
		if d.Covers(diag) {
			return d
		}
	}
	for _, d := range ix.byLine[diag.Range.Start.Line] {
		if d.Covers(diag) {
			return d
		}
	}
	return nil
}

func splitFirstWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, isSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func parseCodes(s string) ([]string, string) {
	list, reason := splitReason(s)
	codes := strings.FieldsFunc(list, func(r rune) bool {
		return isSpace(r) || r == ','
	})
	return codes, reason
}

// splitReason splits s at the first "--" surrounded by whitespace or the
// string bounds.
func splitReason(s string) (string, string) {
	for i := 0; i+2 <= len(s); i++ {
		if s[i:i+2] != "--" {
			continue
		}
		before := i == 0 || isSpace(rune(s[i-1]))
		after := i+2 == len(s) || isSpace(rune(s[i+2]))
		if before && after {
			return s[:i], strings.TrimSpace(s[i+2:])
		}
	}
	return s, ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
