package linter

import (
	"github.com/leapstack-labs/avrlint/pkg/arduino"
)

// DefaultBoard is used when no board is configured.
const DefaultBoard = string(arduino.Uno)

// Settings is the per-invocation linter configuration.
type Settings struct {
	ArduinoRoot   string   `koanf:"arduino_root" yaml:"arduino_root" json:"arduino_root"`
	Board         string   `koanf:"board" yaml:"board" json:"board"`
	ArduinoLibs   []string `koanf:"arduino_libs" yaml:"arduino_libs" json:"arduino_libs"`
	IncludeDirs   []string `koanf:"include_dirs" yaml:"include_dirs" json:"include_dirs"`
	ExtraFlags    string   `koanf:"extra_flags" yaml:"extra_flags" json:"extra_flags"`
	ExtraCFlags   string   `koanf:"extra_cflags" yaml:"extra_cflags" json:"extra_cflags"`
	ExtraCXXFlags string   `koanf:"extra_cxxflags" yaml:"extra_cxxflags" json:"extra_cxxflags"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Board:       DefaultBoard,
		ArduinoLibs: []string{},
		IncludeDirs: []string{},
	}
}

// DefaultsMap returns DefaultSettings keyed by configuration key, for
// loading as the lowest precedence configuration layer.
func DefaultsMap() map[string]any {
	return map[string]any{
		"arduino_root":   "",
		"board":          DefaultBoard,
		"arduino_libs":   []string{},
		"include_dirs":   []string{},
		"extra_flags":    "",
		"extra_cflags":   "",
		"extra_cxxflags": "",
	}
}

// IncludePaths returns the user include directories followed by the board
// and library directories. The receiver is not modified.
func (s Settings) IncludePaths() []string {
	derived := arduino.IncludeDirs(s.ArduinoRoot, s.Board, s.ArduinoLibs)
	dirs := make([]string, 0, len(s.IncludeDirs)+len(derived))
	dirs = append(dirs, s.IncludeDirs...)
	return append(dirs, derived...)
}
