package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/pkg/arduino"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// NewBoardsCommand creates the boards command.
func NewBoardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List supported boards and their compiler flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			boards := arduino.Boards()
			if r.EffectiveMode() == output.ModeJSON {
				infos := make([]output.BoardInfo, 0, len(boards))
				for _, b := range boards {
					infos = append(infos, output.BoardInfo{
						Name:    string(b.Board),
						MCU:     b.MCU,
						FCPU:    b.FCPU,
						Define:  b.Define,
						Variant: b.Variant,
						Flags:   arduino.FlagList(string(b.Board)),
					})
				}
				return r.JSON(infos)
			}

			rows := make([][]string, 0, len(boards))
			for _, b := range boards {
				name := string(b.Board)
				if name == cmdCtx.Cfg.Linter.Board {
					name += " *"
				}
				rows = append(rows, []string{name, b.MCU, b.FCPU, b.Define, b.Variant})
			}
			r.Table([]string{"Board", "MCU", "F_CPU", "Define", "Variant"}, rows)
			return nil
		},
	}
}

// NewLibsCommand creates the libs command.
func NewLibsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "libs",
		Short: "List bundled Arduino libraries and their include directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer
			root := linter.Expand(cmdCtx.Cfg.Linter.ArduinoRoot, linter.ProjectVars(cmdCtx.Host("").ProjectFolder()))

			libs := arduino.Libraries()
			infos := make([]output.LibraryInfo, 0, len(libs))
			for _, lib := range libs {
				dirs := arduino.IncludeDirs(root, "", []string{string(lib.Library)})
				// Drop the core directory that IncludeDirs always puts first
				infos = append(infos, output.LibraryInfo{Name: string(lib.Library), Paths: dirs[1:]})
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(infos)
			}

			var rows [][]string
			for _, info := range infos {
				for i, p := range info.Paths {
					name := info.Name
					if i > 0 {
						name = ""
					}
					rows = append(rows, []string{name, p})
				}
			}
			r.Table([]string{"Library", "Include directory"}, rows)
			return nil
		},
	}
}
