package main

import (
	"bytes"
	"fmt"
	"strings"
)

// MarkdownWriter builds a markdown document.
type MarkdownWriter struct {
	buf bytes.Buffer
}

// NewMarkdownWriter returns an empty writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes the YAML frontmatter read by the docs site.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.buf, "---\ntitle: %q\ndescription: %q\n---\n\n", title, description)
}

// GeneratedMarker notes that the page must not be edited by hand.
func (w *MarkdownWriter) GeneratedMarker() {
	w.buf.WriteString("<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->\n\n")
}

// Header writes a header of the given level.
func (w *MarkdownWriter) Header(level int, text string) {
	fmt.Fprintf(&w.buf, "%s %s\n\n", strings.Repeat("#", max(level, 1)), text)
}

// Paragraph writes text followed by a blank line.
func (w *MarkdownWriter) Paragraph(text string) {
	w.buf.WriteString(strings.TrimSpace(text))
	w.buf.WriteString("\n\n")
}

// Line writes a single line.
func (w *MarkdownWriter) Line(text string) {
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

// Newline writes an empty line.
func (w *MarkdownWriter) Newline() {
	w.buf.WriteByte('\n')
}

// CodeBlock writes a fenced code block.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	fmt.Fprintf(&w.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
}

// BulletList writes one bullet per item.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		fmt.Fprintf(&w.buf, "- %s\n", item)
	}
	w.buf.WriteByte('\n')
}

// Table writes a table. Pipes in cells are escaped.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	row := func(cells []string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		fmt.Fprintf(&w.buf, "| %s |\n", strings.Join(escaped, " | "))
	}
	row(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(&w.buf, "|%s|\n", strings.Join(sep, "|"))
	for _, r := range rows {
		row(r)
	}
	w.buf.WriteByte('\n')
}

// Bytes returns the document.
func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// Bold wraps s in double asterisks.
func Bold(s string) string {
	return "**" + s + "**"
}

// cleanDescription collapses whitespace so text fits in a table cell.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
