package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
	"github.com/leapstack-labs/leaplint/pkg/lint/script"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format  string // Output format: text, markdown, json, yaml
	Enabled bool   // Only list rules the configuration enables
	Docs    bool   // Include documentation in listings
}

// RuleListing describes one rule in rules command output.
type RuleListing struct {
	lint.RuleInfo `yaml:",inline"`
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	Source        string `json:"source" yaml:"source"`
}

// RulesOutput is the JSON and YAML document for rule listings.
type RulesOutput struct {
	Rules []RuleListing `json:"rules" yaml:"rules"`
	Count struct {
		Total   int `json:"total" yaml:"total"`
		Enabled int `json:"enabled" yaml:"enabled"`
	} `json:"count" yaml:"count"`
}

const sourceBuiltin = "builtin"

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [code]",
		Short: "List available lint rules",
		Long: `List the built-in rules and any configured Starlark rules.

Each rule shows its tags, its priority (rules run in ascending priority
order) and whether the current configuration enables it.

Output adapts to environment:
  - Terminal: Table
  - Piped/Scripted: Markdown table
  - JSON or YAML: Machine-readable format`,
		Example: `  # List all rules
  leaplint rules

  # Show details for a specific rule
  leaplint rules no-var

  # Only rules enabled by leaplint.yaml
  leaplint rules --enabled

  # Preview a selection
  leaplint rules --enabled --tag fresh --exclude-rule no-var

  # Output as YAML
  leaplint rules --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().BoolVar(&opts.Enabled, "enabled", false, "Only list enabled rules")
	cmd.Flags().BoolVarP(&opts.Docs, "docs", "V", false, "Include rule documentation")
	cmd.Flags().StringSlice("rule", nil, "Enable rules by code")
	cmd.Flags().StringSlice("exclude-rule", nil, "Disable rules by code")
	cmd.Flags().StringSlice("tag", nil, "Enable rules carrying any of these tags (default: recommended)")
	cmd.Flags().StringSlice("script", nil, "Load a Starlark rule file")

	return cmd
}

// collectRules returns every known rule, sorted by code, with enablement
// from the configuration.
func collectRules(cmdCtx *CommandContext) ([]RuleListing, error) {
	extra, err := cmdCtx.ScriptRules()
	if err != nil {
		return nil, err
	}
	selected, err := rules.Select(cmdCtx.selection(), extra...)
	if err != nil {
		return nil, err
	}
	enabled := make(map[string]bool, len(selected))
	for _, r := range selected {
		enabled[r.Code()] = true
	}

	var listings []RuleListing
	for _, r := range rules.All() {
		listings = append(listings, RuleListing{RuleInfo: lint.GetRuleInfo(r), Enabled: enabled[r.Code()], Source: sourceBuiltin})
	}
	for _, r := range extra {
		source := "script"
		if sr, ok := r.(*script.Rule); ok {
			source = sr.Path()
		}
		listings = append(listings, RuleListing{RuleInfo: lint.GetRuleInfo(r), Enabled: enabled[r.Code()], Source: source})
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].Code < listings[j].Code })
	return listings, nil
}

func rulesRenderer(cmd *cobra.Command, cmdCtx *CommandContext, format string) *output.Renderer {
	if format != "" {
		return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return cmdCtx.Renderer
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := rulesRenderer(cmd, cmdCtx, opts.Format)

	listings, err := collectRules(cmdCtx)
	if err != nil {
		return err
	}
	if opts.Enabled {
		filtered := listings[:0]
		for _, l := range listings {
			if l.Enabled {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	out := RulesOutput{Rules: listings}
	out.Count.Total = len(listings)
	for _, l := range listings {
		if l.Enabled {
			out.Count.Enabled++
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Lint Rules"))
		r.Println("")
		rulesTable(r, listings, opts.Docs).RenderMarkdown()
		r.Println("")
	default:
		r.Println(r.Styles().Header1.Render(fmt.Sprintf("Lint Rules (%d enabled of %d)", out.Count.Enabled, out.Count.Total)))
		rulesTable(r, listings, opts.Docs).Render()
		r.Println(r.Styles().Muted.Render("Use 'leaplint rules <code>' for detailed documentation"))
	}
	return nil
}

func rulesTable(r *output.Renderer, listings []RuleListing, docs bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	header := table.Row{"Code", "Tags", "Priority", "Enabled", "Source"}
	if docs {
		header = append(header, "Docs")
	}
	t.AppendHeader(header)
	for _, l := range listings {
		enabled := ""
		if l.Enabled {
			enabled = "yes"
		}
		row := table.Row{l.Code, strings.Join(l.Tags, ", "), l.Priority, enabled, l.Source}
		if docs {
			row = append(row, firstLine(l.Docs))
		}
		t.AppendRow(row)
	}
	return t
}

func showRule(cmd *cobra.Command, code string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := rulesRenderer(cmd, cmdCtx, opts.Format)

	listings, err := collectRules(cmdCtx)
	if err != nil {
		return err
	}
	var rule *RuleListing
	for i := range listings {
		if listings[i].Code == code {
			rule = &listings[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", code)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeYAML:
		return r.YAML(rule)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, rule.Code))
		r.Println("")
		r.Println(output.FormatKeyValue("Tags", strings.Join(rule.Tags, ", ")))
		r.Println(output.FormatKeyValue("Priority", fmt.Sprint(rule.Priority)))
		r.Println(output.FormatKeyValue("Enabled", fmt.Sprint(rule.Enabled)))
		r.Println(output.FormatKeyValue("Source", rule.Source))
		r.Println(output.FormatKeyValue("Docs", rule.DocURL))
		if rule.Docs != "" {
			r.Println("")
			r.Println(rule.Docs)
		}
	default:
		styles := r.Styles()
		r.Println(styles.Header1.Render(rule.Code))
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Tags"), strings.Join(rule.Tags, ", "))
		r.Printf("  %s: %d\n", styles.Bold.Render("Priority"), rule.Priority)
		r.Printf("  %s: %t\n", styles.Bold.Render("Enabled"), rule.Enabled)
		r.Printf("  %s: %s\n", styles.Bold.Render("Source"), rule.Source)
		r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), rule.DocURL)
		if rule.Docs != "" {
			r.Println("")
			for _, line := range strings.Split(rule.Docs, "\n") {
				r.Println("  " + line)
			}
		}
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
