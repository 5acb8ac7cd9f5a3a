package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/avrlint/internal/cli/config"
)

const (
	goodVersion = "avr-gcc (GCC) 7.3.0"
	oldVersion  = "avr-gcc (GCC) 3.4.6"

	pinModError = "<stdin>: In function 'void setup()':\n" +
		"<stdin>:4:3: error: 'pinMod' was not declared in this scope\n"
	unusedWarning = "<stdin>:2:7: warning: unused variable 'x' [-Wunused-variable]\n"
)

// execResult holds what a command wrote.
type execResult struct {
	Stdout string
	Stderr string
	Err    error
}

// execute runs cmd with the configuration found from dir, the way the root
// command would set it up.
func execute(t *testing.T, dir string, mutate func(*config.Config), cmd *cobra.Command, args ...string) execResult {
	t.Helper()

	cfg, err := config.LoadConfigFromDir(dir, "", nil)
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	// The root command silences these; a bare subcommand would append its
	// usage to stdout on every returned error.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(config.WithConfig(context.Background(), cfg))
	return execResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

func jsonOutput(cfg *config.Config) { cfg.OutputFormat = "json" }
