// Package config provides configuration management for the avrlint CLI.
//
// Linter settings come from pkg/linter; this package adds the CLI-only
// fields (verbosity, output format) and the layering of defaults, project
// file, environment and flags.
package config

import (
	intconfig "github.com/leapstack-labs/avrlint/internal/config"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// Config holds all CLI configuration options.
type Config struct {
	Linter       linter.Settings `koanf:"-"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`

	// ProjectRoot is the directory project_folder expands to.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=plain text
	EnvPrefix     = "AVRLINT_"
)

// Config file names, shared with the LSP loader.
const (
	ConfigFileName    = intconfig.ConfigFileName
	ConfigFileNameAlt = intconfig.ConfigFileNameAlt
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "table", "json", "markdown"}

// listKeys are the keys whose environment values are comma separated lists.
var listKeys = map[string]bool{
	"arduino_libs": true,
	"include_dirs": true,
}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"lib":     "arduino_libs",
	"include": "include_dirs",
}

func defaults() map[string]any {
	m := linter.DefaultsMap()
	m["verbose"] = false
	m["output"] = DefaultOutput
	return m
}
