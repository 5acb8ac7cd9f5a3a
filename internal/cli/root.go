// Package cli provides the command-line interface for avrlint.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/internal/cli/commands"
	"github.com/leapstack-labs/avrlint/internal/cli/config"
	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/pkg/arduino"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// skipConfig lists commands that run without loading avrlint.yaml.
// init must be able to overwrite a broken file and lsp reads the config of
// the client's workspace instead of the working directory.
var skipConfig = map[string]bool{
	"help":             true,
	"completion":       true,
	"__complete":       true,
	"__completeNoDesc": true,
	"init":             true,
	"version":          true,
	"lsp":              true,
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "avrlint",
		Short: "avrlint - syntax checker for AVR C/C++ and Arduino sketches",
		Long: `avrlint checks C, C++ and Arduino sources with avr-gcc -fsyntax-only.

It builds the compiler command from the configured Arduino board, the
Arduino installation root and the libraries a sketch uses, then reports the
errors and warnings the compiler prints.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(cmd, verbose)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if skipConfig[cmd.Name()] {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(config.WithConfig(ctx, cfg))

			if cfg.Verbose {
				if cfg.ConfigFile != "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", cfg.ConfigFile)
				}
				logger.Debug("loaded configuration",
					"board", cfg.Linter.Board,
					"arduino_root", cfg.Linter.ArduinoRoot,
					"project_root", cfg.ProjectRoot)

				r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
				for _, w := range cfg.Warnings() {
					r.Warning(w)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Syntax checker for AVR C/C++ and Arduino sketches
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: nearest avrlint.yaml)")
	pf.String("arduino-root", "", "Arduino installation root (supports project_folder)")
	pf.StringP("board", "b", "", "Arduino board name (e.g. Uno, Mega2560, ProMini3V328)")
	pf.StringSlice("lib", nil, "Arduino library to add to the include path (repeatable)")
	pf.StringSliceP("include", "I", nil, "Extra include directory (repeatable, supports project_folder)")
	pf.String("extra-flags", "", "Extra compiler flags for every language")
	pf.String("extra-cflags", "", "Extra compiler flags for C")
	pf.String("extra-cxxflags", "", "Extra compiler flags for C++")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|table|json|markdown)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("board", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return arduino.BoardNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("lib", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		libs := arduino.Libraries()
		names := make([]string, 0, len(libs))
		for _, lib := range libs {
			names = append(names, string(lib.Library))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewCommandCommand())
	rootCmd.AddCommand(commands.NewBoardsCommand())
	rootCmd.AddCommand(commands.NewLibsCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewLSPCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger logs to stderr: debug and up when verbose, warnings otherwise.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for avrlint.

To load completions:

Bash:
  $ source <(avrlint completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ avrlint completion bash > /etc/bash_completion.d/avrlint
  # macOS:
  $ avrlint completion bash > $(brew --prefix)/etc/bash_completion.d/avrlint

Zsh:
  $ avrlint completion zsh > "${fpath[1]}/_avrlint"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ avrlint completion fish > ~/.config/fish/completions/avrlint.fish

PowerShell:
  PS> avrlint completion powershell | Out-String | Invoke-Expression
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
