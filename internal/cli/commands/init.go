package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/avrlint/internal/cli/config"
	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/pkg/arduino"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// keyComments documents each key in the generated config.
var keyComments = map[string]string{
	"arduino_root":   "Arduino IDE installation; project_folder expands to this file's directory",
	"board":          "One of: " + boardList(),
	"arduino_libs":   "Bundled libraries to add to the include path: Wire, SPI, EEPROM",
	"include_dirs":   "Extra include directories, searched before the Arduino ones",
	"extra_flags":    "Flags for every language, placed before the board flags",
	"extra_cflags":   "Flags used only for C sources",
	"extra_cxxflags": "Flags used only for C++ and sketch sources",
}

func boardList() string {
	var buf bytes.Buffer
	for i, name := range arduino.BoardNames() {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(name)
	}
	return buf.String()
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter avrlint.yaml",
		Long: `Write an avrlint.yaml with every setting and its default value.

Values given with --board, --arduino-root and --lib are written instead
of the defaults.`,
		Example: `  # Initialize in current directory
  avrlint init

  # Initialize for a Mega with a local Arduino install
  avrlint init --board Mega2560 --arduino-root /opt/arduino-1.8.19

  # Force overwrite existing config
  avrlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			mode := output.ModeAuto
			if f := cmd.Flags().Lookup("output"); f != nil {
				mode = output.Mode(f.Value.String())
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, starterSettings(cmd), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// starterSettings returns the defaults overridden by explicitly set root flags.
func starterSettings(cmd *cobra.Command) linter.Settings {
	s := linter.DefaultSettings()
	flags := cmd.Flags()

	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("arduino-root") {
		s.ArduinoRoot, _ = flags.GetString("arduino-root")
	}
	if changed("board") {
		s.Board, _ = flags.GetString("board")
	}
	if changed("lib") {
		s.ArduinoLibs, _ = flags.GetStringSlice("lib")
	}
	if changed("include") {
		s.IncludeDirs, _ = flags.GetStringSlice("include")
	}
	return s
}

func runInit(r *output.Renderer, dir string, settings linter.Settings, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Check if config already exists
	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	content, err := renderStarterConfig(settings)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success("avrlint project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Set arduino_root to your Arduino installation")
	r.Println("  2. Run 'avrlint doctor' to check the compiler and paths")
	r.Println("  3. Run 'avrlint lint' to check your sketches")

	return nil
}

// renderStarterConfig encodes settings as YAML with a comment on every key.
func renderStarterConfig(settings linter.Settings) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(settings); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	node.HeadComment = "avrlint configuration"

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if c, ok := keyComments[key.Value]; ok {
			key.HeadComment = c
		}
		// Keep empty lists on one line
		if v := node.Content[i+1]; v.Kind == yaml.SequenceNode && len(v.Content) == 0 {
			v.Style = yaml.FlowStyle
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
