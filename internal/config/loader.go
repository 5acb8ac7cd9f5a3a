// Package config finds and loads avrlint project configuration.
// It is decoupled from CLI concerns so the LSP can load the settings of a
// workspace without flags or environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "avrlint.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "avrlint.yml"

// MaxUpwardSearchLevels limits how far up the directory tree FindProjectRoot looks.
const MaxUpwardSearchLevels = 10

// Project is a loaded project configuration.
type Project struct {
	Root     string // directory containing File
	File     string // path of the config file
	Settings linter.Settings
}

// LoadFromDir loads the project configuration in dir.
// Returns nil, nil if no config file is found (not an error condition).
func LoadFromDir(dir string) (*Project, error) {
	path := FindConfigFile(dir)
	if path == "" {
		return nil, nil
	}

	settings, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Project{Root: filepath.Dir(path), File: path, Settings: settings}, nil
}

// LoadFile loads settings from a config file on top of the defaults.
func LoadFile(path string) (linter.Settings, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(linter.DefaultsMap(), "."), nil); err != nil {
		return linter.Settings{}, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return linter.Settings{}, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var s linter.Settings
	if err := k.Unmarshal("", &s); err != nil {
		return linter.Settings{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return s, nil
}

// FindConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to the nearest directory holding a
// config file, at most MaxUpwardSearchLevels levels.
// Returns empty string if not found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < MaxUpwardSearchLevels; i++ {
		if FindConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
	return ""
}

// LoadNearest loads the configuration of the project containing startDir.
// Returns nil, nil when startDir is not inside a project.
func LoadNearest(startDir string) (*Project, error) {
	root := FindProjectRoot(startDir)
	if root == "" {
		return nil, nil
	}
	return LoadFromDir(root)
}
