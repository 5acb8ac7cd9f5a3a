// Package main provides the avrlint command.
package main

import (
	"os"

	"github.com/leapstack-labs/avrlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
