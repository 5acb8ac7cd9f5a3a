package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/avrlint/pkg/arduino"
)

// Validate checks if the configuration is valid.
// Unknown boards and libraries are not errors; see Warnings.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// Warnings lists settings the linter will silently ignore.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Linter.ArduinoRoot == "" {
		warnings = append(warnings, "arduino_root is not set; core include paths will be relative to /")
	}
	if _, ok := arduino.Lookup(c.Linter.Board); !ok {
		warnings = append(warnings, fmt.Sprintf("unknown board %q; only base flags will be used", c.Linter.Board))
	}
	for _, lib := range c.Linter.ArduinoLibs {
		if _, ok := arduino.LookupLibrary(lib); !ok {
			warnings = append(warnings, fmt.Sprintf("unknown library %q is ignored", lib))
		}
	}
	return warnings
}
