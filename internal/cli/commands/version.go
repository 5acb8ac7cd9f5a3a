package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/internal/host"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display avrlint version and the compiler version it requires.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "avrlint v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Syntax checker for AVR C/C++ and Arduino sketches (avr-gcc %s)\n", host.VersionRequirement)
		},
	}
}
