package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/avrlint/internal/cli/testutil"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRootCmd_Help(t *testing.T) {
	res := run(t, "--help")
	require.NoError(t, res.err)

	for _, name := range []string{"lint", "command", "boards", "libs", "doctor", "init", "watch", "lsp", "version"} {
		assert.Contains(t, res.stdout, name)
	}
	for _, flag := range []string{"--arduino-root", "--board", "--lib", "--include", "--extra-cxxflags", "--output"} {
		assert.Contains(t, res.stdout, flag)
	}
}

func TestRootCmd_ConfigFreeCommandsIgnoreBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "avrlint.yaml"), []byte("board: [broken"), 0o600))
	t.Chdir(dir)

	res := run(t, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "avrlint v"+Version)

	res = run(t, "boards")
	require.Error(t, res.err, "commands that need the config report it")

	res = run(t, "init", "--force", "--board", "Mega2560")
	require.NoError(t, res.err)
	content, err := os.ReadFile(filepath.Join(dir, "avrlint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "board: Mega2560")

	res = run(t, "boards")
	assert.NoError(t, res.err)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	res := run(t, "command", "blink.ino")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-mmcu=atmega328p")
	assert.Contains(t, res.stdout, filepath.Join("libraries", "Wire", "src"))

	res = run(t, "command", "-b", "Mega2560", "--lib", "SPI", "-I", "project_folder/include", "--extra-flags", "-DDEBUG", "blink.ino")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-mmcu=atmega2560")
	assert.Contains(t, res.stdout, " -DDEBUG ")
	assert.Contains(t, res.stdout, "-I "+filepath.Join(dir, "include")+" ")
	assert.Contains(t, res.stdout, filepath.Join("libraries", "SPI", "src"))
	assert.NotContains(t, res.stdout, filepath.Join("libraries", "Wire", "src"), "--lib replaces the configured list")
}

func TestRootCmd_EnvOverridesConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)
	t.Setenv("AVRLINT_BOARD", "ProMini3V168")
	t.Setenv("AVRLINT_ARDUINO_LIBS", "EEPROM,SPI")

	res := run(t, "command", "blink.ino")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-mmcu=atmega168 -DF_CPU=8000000L")
	assert.Contains(t, res.stdout, filepath.Join("libraries", "EEPROM", "src"))
	assert.Contains(t, res.stdout, filepath.Join("libraries", "SPI", "src"))

	// Flags still win over the environment.
	res = run(t, "command", "--board", "Uno", "blink.ino")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-mmcu=atmega328p")
}

func TestRootCmd_ExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "boards", "mega.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o750))
	require.NoError(t, os.WriteFile(cfgPath, []byte("board: Mega1280\n"), 0o600))
	t.Chdir(t.TempDir())

	res := run(t, "--config", cfgPath, "command")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-mmcu=atmega1280")

	res = run(t, "--config", filepath.Join(dir, "missing.yaml"), "command")
	assert.Error(t, res.err)
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	res := run(t, "-o", "yaml", "boards")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid output format")
}

func TestRootCmd_Verbose(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "avrlint.yaml"),
		[]byte("board: Nano\narduino_libs: [Servo]\n"), 0o600))
	t.Chdir(dir)

	res := run(t, "-v", "boards")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Using config file: "+filepath.Join(dir, "avrlint.yaml"))
	assert.Contains(t, res.stderr, `warning: unknown board "Nano"`)
	assert.Contains(t, res.stderr, `warning: unknown library "Servo"`)

	res = run(t, "boards")
	require.NoError(t, res.err)
	assert.Empty(t, res.stderr)
}

func TestRootCmd_JSONOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	res := run(t, "--output", "json", "boards")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "["), "got %q", res.stdout)
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			res := run(t, "completion", shell)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, "avrlint")
		})
	}

	res := run(t, "completion", "tcsh")
	assert.Error(t, res.err)
}
