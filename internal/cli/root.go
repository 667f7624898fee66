// Package cli provides the command-line interface for leaplint.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/leaplint/internal/cli/commands"
	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leaplint",
		Short: "leaplint - a pluggable JavaScript and TypeScript linter",
		Long: `leaplint checks JavaScript and TypeScript sources against a set of rules.

Rules come from the built-in catalog and from Starlark scripts. Findings can
be silenced in source with ignore directives:

  // leaplint-ignore-file [codes...]
  // leaplint-ignore [codes...] -- reason`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.DocsBaseURL != "" {
				lint.SetDocsBaseURL(cfg.DocsBaseURL)
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leaplint.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")
	rootCmd.PersistentFlags().Int("concurrency", 0, "Number of files linted at once (default: number of CPUs)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewLSPCommand())
	rootCmd.AddCommand(commands.NewCacheCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return run(NewRootCmd(), os.Stderr)
}

func run(rootCmd *cobra.Command, errOut io.Writer) error {
	if err := rootCmd.Execute(); err != nil {
		// Findings are already on stdout.
		if !errors.Is(err, commands.ErrIssuesFound) {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leaplint.

To load completions:

Bash:
  $ source <(leaplint completion bash)

Zsh:
  $ leaplint completion zsh > "${fpath[1]}/_leaplint"

Fish:
  $ leaplint completion fish | source

PowerShell:
  PS> leaplint completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
