package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplint/internal/cli"
	"github.com/leapstack-labs/leaplint/internal/cli/commands"
	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// selectionFlags choose which rules run. Commands carrying them get a
// separate section since they behave the same everywhere.
var selectionFlags = []string{"tag", "rule", "exclude-rule", "script"}

// generateCLIDocs writes index.md plus one page per visible top-level
// command. Subcommands are documented on their parent's page.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndexPage(root)}
	for _, cmd := range visibleCommands(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(outDir, name), pages[name], 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Hidden || !sub.IsAvailableCommand() || sub.Name() == "help" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func cliIndexPage(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for leaplint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Short)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leaplint/cmd/leaplint@latest\nleaplint <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
		for _, sub := range visibleCommands(cmd) {
			rows = append(rows, []string{InlineCode(sub.CommandPath()[len(root.Name())+1:]), cleanDescription(sub.Short)})
		}
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags(), nil)

	w.Header(2, "Environment Variables")
	w.Paragraph("Configuration keys can also be set from the environment. Flags take precedence over " +
		"environment variables, which take precedence over `leaplint.yaml`. " +
		"List values are comma separated.")
	var envRows [][]string
	for _, f := range configFields {
		envRows = append(envRows, []string{InlineCode(config.EnvVar(f.Key)), InlineCode(f.Key), f.Description})
	}
	w.Table([]string{"Variable", "Key", "Description"}, envRows)

	w.Header(2, "Exit Codes")
	writeExitCodes(w, root)

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	writeCommand(w, cmd, 2)

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags(), nil)
	}

	if cmd.Annotations[commands.AnnotationIssuesExit] != "" {
		w.Header(2, "Exit Codes")
		writeExitCodes(w, cmd)
	}
	return w.Bytes()
}

// writeCommand documents cmd and, one heading level down, its subcommands.
func writeCommand(w *MarkdownWriter, cmd *cobra.Command, level int) {
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(level, "Usage")
	w.CodeBlock("bash", usageLine(cmd))

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	local := cmd.LocalNonPersistentFlags()
	selection := selectionFlagSet(local)
	if local.HasAvailableFlags() && hasOtherFlags(local, selection) {
		w.Header(level, "Options")
		writeFlagsTable(w, local, selection)
	}
	if selection.HasFlags() {
		w.Header(level, "Rule Selection")
		w.Paragraph("With no selection flags the `recommended` tag is enabled. " +
			"`--rule` adds rules on top of the tags and `--exclude-rule` always wins. " +
			"Script rules take part in tag matching like built-ins, and naming an unknown code is an error.")
		writeFlagsTable(w, selection, nil)
	}

	if cmd.Example != "" {
		w.Header(level, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	for _, sub := range visibleCommands(cmd) {
		w.Header(level, sub.Name())
		writeCommand(w, sub, level+1)
	}
}

func usageLine(cmd *cobra.Command) string {
	if cmd.HasAvailableSubCommands() && !cmd.Runnable() {
		return cmd.CommandPath() + " <subcommand> [options]"
	}
	return cmd.UseLine()
}

func selectionFlagSet(flags *pflag.FlagSet) *pflag.FlagSet {
	set := pflag.NewFlagSet("selection", pflag.ContinueOnError)
	for _, name := range selectionFlags {
		if f := flags.Lookup(name); f != nil && !f.Hidden {
			set.AddFlag(f)
		}
	}
	return set
}

func hasOtherFlags(flags, skip *pflag.FlagSet) bool {
	found := false
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden && skip.Lookup(f.Name) == nil {
			found = true
		}
	})
	return found
}

// writeExitCodes lists status 1 causes from the commands annotated as
// returning commands.ErrIssuesFound.
func writeExitCodes(w *MarkdownWriter, cmd *cobra.Command) {
	rows := [][]string{{InlineCode("0"), "Success"}}

	var causes []string
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if reason := c.Annotations[commands.AnnotationIssuesExit]; reason != "" {
			causes = append(causes, fmt.Sprintf("%s: %s", InlineCode(c.Name()), reason))
		}
		for _, sub := range visibleCommands(c) {
			walk(sub)
		}
	}
	walk(cmd)

	causes = append(causes, "any other error, printed to stderr")
	rows = append(rows, []string{InlineCode("1"), strings.Join(causes, "; ")})
	w.Table([]string{"Code", "Meaning"}, rows)

	if len(causes) > 1 {
		w.Paragraph(fmt.Sprintf("Diagnostics go to stdout; the %q error itself is not printed, "+
			"so scripts can tell findings apart from failures by what reached stderr.",
			commands.ErrIssuesFound.Error()))
	}
}

// writeFlagsTable writes one row per visible flag in flags, skipping any
// also present in skip.
func writeFlagsTable(w *MarkdownWriter, flags, skip *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || (skip != nil && skip.Lookup(f.Name) != nil) {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, flagDefault(f), cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

func flagDefault(f *pflag.Flag) string {
	switch f.Value.Type() {
	case "bool":
		return f.DefValue
	case "stringSlice":
		if f.DefValue == "[]" {
			return ""
		}
	case "int":
		if f.DefValue == "0" {
			return ""
		}
	}
	if f.DefValue == "" {
		return ""
	}
	return InlineCode(f.DefValue)
}

// cleanExample removes the common leading indentation of cobra examples.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	if indent > 0 {
		for i, line := range lines {
			if len(line) >= indent {
				lines[i] = line[indent:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
