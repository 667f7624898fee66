package commands

import (
	"os"

	"github.com/leapstack-labs/leaplint/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. It lints open
documents on every change with the rules selected by leaplint.yaml and
publishes the results as diagnostics. Quick fixes insert ignore directives.`,
		Example: `  # Start LSP server (usually called by an editor)
  leaplint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}
	// Editors commonly pass --stdio; stdio is the only transport.
	cmd.Flags().Bool("stdio", true, "Communicate over stdin/stdout")

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	linter, err := cmdCtx.BuildLinter()
	if err != nil {
		return err
	}
	server := lsp.NewServer(os.Stdin, os.Stdout, linter, cmdCtx.Logger)
	return server.Run(cmd.Context())
}
