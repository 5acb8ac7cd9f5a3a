package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/internal/cli/config"
	"github.com/leapstack-labs/avrlint/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for IDE integration.

The server communicates over stdin/stdout using JSON-RPC and publishes
avr-gcc diagnostics for C, C++ and Arduino documents. Settings are read
from the avrlint.yaml found at the client's workspace root (rootUri).`,
		Example: `  # Start LSP server (usually called by an IDE)
  avrlint lsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	logger := config.GetLogger(cmd.Context())
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, logger)
	return server.Run()
}
