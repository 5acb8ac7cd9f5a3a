package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// NewCommandCommand creates the command command.
func NewCommandCommand() *cobra.Command {
	var syntax string

	cmd := &cobra.Command{
		Use:   "command [file]",
		Short: "Print the avr-gcc command used to lint a file",
		Long: `Print the compiler command avrlint would run, without running it.

The language is taken from the file extension unless --syntax is given.
Without a file the command is built for C++.`,
		Example: `  avrlint command blink.ino
  avrlint command --syntax c --board Mega2560`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			file := ""
			if len(args) > 0 {
				file = args[0]
			}

			forced := linter.LanguageUnknown
			if syntax != "" {
				if forced = linter.ParseSyntax(syntax); forced == linter.LanguageUnknown {
					return fmt.Errorf("unknown syntax %q", syntax)
				}
			}
			lang := linter.LanguageCXX
			if file != "" || forced != linter.LanguageUnknown {
				if lang, err = sourceLanguage(file, forced); err != nil {
					return err
				}
			}

			l := linter.New(cmdCtx.Host(file), cmdCtx.Logger)
			cmdCtx.Renderer.Println(l.Command(lang))
			return nil
		},
	}

	cmd.Flags().StringVar(&syntax, "syntax", "", "Force the language: c, c++, cpp, arduino")
	return cmd
}
