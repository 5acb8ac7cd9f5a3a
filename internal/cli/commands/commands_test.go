// Package commands_test provides tests for CLI command creation.
package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/avrlint/internal/cli/config"
	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/internal/cli/testutil"
)

func TestNewCommandCommand(t *testing.T) {
	cmd := NewCommandCommand()

	assert.Equal(t, "command [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("syntax"), "--syntax flag should exist")
}

func TestCommand_PrintsCompilerCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	root := filepath.Join(dir, "arduino", "hardware", "arduino", "avr")

	res := execute(t, dir, nil, NewCommandCommand(), filepath.Join(dir, "src", "driver.c"))
	require.NoError(t, res.Err)

	want := "avr-gcc -fsyntax-only -Wall  -x c  -Os -DARDUINO_ARCH_AVR " +
		"-mmcu=atmega328p -DF_CPU=16000000L -DARDUINO_AVR_UNO " +
		"-I " + filepath.Join(root, "cores", "arduino") + " " +
		"-I " + filepath.Join(root, "variants", "standard") + " "
	assert.True(t, strings.HasPrefix(res.Stdout, want), "got %q", res.Stdout)
	assert.True(t, strings.HasSuffix(res.Stdout, " -\n"), "got %q", res.Stdout)
	assert.Contains(t, res.Stdout, filepath.Join(root, "libraries", "Wire", "src"))
}

func TestCommand_Syntax(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := execute(t, dir, nil, NewCommandCommand())
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, " -x c++ ", "C++ without a file")

	res = execute(t, dir, nil, NewCommandCommand(), "--syntax", "c", "blink.ino")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, " -x c ")

	res = execute(t, dir, nil, NewCommandCommand(), "--syntax", "fortran")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "unknown syntax")

	res = execute(t, dir, nil, NewCommandCommand(), "notes.txt")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "--syntax")

	res = execute(t, dir, nil, NewCommandCommand(), "--syntax", "arduino", "notes.txt")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, " -x c++ ")
}

func TestCommand_OverriddenBoard(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := execute(t, dir, func(c *config.Config) {
		c.Linter.Board = "Mega2560"
		c.Linter.ExtraCXXFlags = "-std=gnu++11"
	}, NewCommandCommand(), "blink.ino")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, " -x c++ -std=gnu++11 ")
	assert.Contains(t, res.Stdout, "-mmcu=atmega2560")
	assert.Contains(t, res.Stdout, filepath.Join("variants", "mega"))
}

func TestBoards_Table(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := execute(t, dir, func(c *config.Config) { c.OutputFormat = "table" }, NewBoardsCommand())
	require.NoError(t, res.Err)

	assert.Contains(t, res.Stdout, "BOARD")
	assert.Contains(t, res.Stdout, "Uno *")
	assert.Contains(t, res.Stdout, "Mega2560")
	assert.Contains(t, res.Stdout, "atmega2560")
}

func TestBoards_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := execute(t, dir, jsonOutput, NewBoardsCommand())
	require.NoError(t, res.Err)

	var boards []output.BoardInfo
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &boards))
	require.NotEmpty(t, boards)

	var uno *output.BoardInfo
	for i := range boards {
		if boards[i].Name == "Uno" {
			uno = &boards[i]
		}
	}
	require.NotNil(t, uno)
	assert.Equal(t, "atmega328p", uno.MCU)
	assert.Equal(t, []string{"-Os", "-DARDUINO_ARCH_AVR", "-mmcu=atmega328p", "-DF_CPU=16000000L", "-DARDUINO_AVR_UNO"}, uno.Flags)
}

func TestLibs_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	libRoot := filepath.Join(dir, "arduino", "hardware", "arduino", "avr", "libraries")

	res := execute(t, dir, jsonOutput, NewLibsCommand())
	require.NoError(t, res.Err)

	var libs []output.LibraryInfo
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &libs))

	byName := map[string][]string{}
	for _, l := range libs {
		byName[l.Name] = l.Paths
	}
	require.Contains(t, byName, "SPI")
	assert.Equal(t, []string{filepath.Join(libRoot, "SPI", "src")}, byName["SPI"])
	require.Contains(t, byName, "Wire")
	assert.Contains(t, byName["Wire"], filepath.Join(libRoot, "Wire", "src"))
}

func TestLibs_Text(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := execute(t, dir, nil, NewLibsCommand())
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "EEPROM")
	assert.Contains(t, res.Stdout, "INCLUDE DIRECTORY")
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	for _, flag := range []string{"exclude", "jobs", "severity"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewLSPCommand(t *testing.T) {
	cmd := NewLSPCommand()

	assert.Equal(t, "lsp", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}
