package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

// generateRuleDocs writes an index of all built-in rules and one page per
// rule. Page names match lint.BuildDocURL so diagnostics link to them.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	all := rules.All()
	if err := generateRuleIndex(outDir, all); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, rule := range all {
		info := lint.GetRuleInfo(rule)
		name := rulePageName(info.Code)
		if err := os.WriteFile(filepath.Join(outDir, name), rulePage(info), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func rulePageName(code string) string {
	return strings.ToLower(code) + ".md"
}

func generateRuleIndex(outDir string, all []lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Built-in lint rules for leaplint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("leaplint ships **%d built-in rules**. Rules tagged %s run by default.",
		len(all), InlineCode(rules.TagRecommended)))

	var rows [][]string
	for _, rule := range all {
		info := lint.GetRuleInfo(rule)
		summary, _, _ := strings.Cut(strings.TrimSpace(info.Docs), "\n")
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s)", InlineCode(info.Code), strings.TrimSuffix(rulePageName(info.Code), ".md")),
			strings.Join(info.Tags, ", "),
			cleanDescription(summary),
		})
	}
	w.Table([]string{"Rule", "Tags", "Summary"}, rows)

	w.Header(2, "Ignoring Diagnostics")
	w.Paragraph("A line directive silences the codes it names on the next line; without codes it silences everything there.")
	w.CodeBlock("typescript", `// leaplint-ignore no-var -- kept for compatibility
var legacy = 1;`)
	w.Paragraph("A file directive before the first statement silences codes for the whole file.")
	w.CodeBlock("typescript", `// leaplint-ignore-file no-explicit-any`)
	w.Paragraph(fmt.Sprintf("Directives that suppress nothing are reported by %s; codes that name no enabled rule are reported by %s.",
		InlineCode(lint.CodeBanUnusedIgnore), InlineCode(lint.CodeBanUnknownRuleCode)))

	w.Header(2, "Custom Rules")
	w.Paragraph("Rules can also be written in Starlark and listed under `rules.scripts` in `leaplint.yaml`.")
	w.CodeBlock("python", `code = "no-console-log"
tags = ["recommended"]

def call_expression(node, ctx):
    callee = node.field("function")
    if callee != None and callee.text == "console.log":
        ctx.report(node, "Unexpected console.log", hint = "Use the logger")`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// rulePage renders the page of one rule. Rule docs are already markdown.
func rulePage(info lint.RuleInfo) []byte {
	w := NewMarkdownWriter()

	summary, _, _ := strings.Cut(strings.TrimSpace(info.Docs), "\n")
	w.Frontmatter(info.Code, cleanDescription(summary))
	w.GeneratedMarker()

	w.Header(1, info.Code)
	if len(info.Tags) > 0 {
		tags := make([]string, len(info.Tags))
		for i, tag := range info.Tags {
			tags[i] = InlineCode(tag)
		}
		w.Line(Bold("Tags:") + " " + strings.Join(tags, ", "))
		w.Newline()
	}
	if info.Docs != "" {
		w.Paragraph(info.Docs)
	}

	w.Header(2, "Ignoring")
	w.CodeBlock("typescript", fmt.Sprintf("// leaplint-ignore %s -- reason", info.Code))
	return w.Bytes()
}
