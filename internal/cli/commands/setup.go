package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/internal/cli/config"
	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/internal/host"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config loaded by the
// root command.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// Host returns an exec host for linting activeFile with the loaded settings.
func (c *CommandContext) Host(activeFile string) *host.Exec {
	return host.New(host.Options{
		Settings:    c.Cfg.Linter,
		ProjectFile: c.Cfg.ConfigFile,
		ActiveFile:  activeFile,
		Logger:      c.Logger,
	})
}

// getConfig returns the configuration loaded by the root command, loading
// it from the working directory when the command runs on its own.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.FromContext(cmd.Context()); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", nil)
}
