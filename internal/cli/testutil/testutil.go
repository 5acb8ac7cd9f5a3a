// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/leapstack-labs/avrlint/internal/cli/output"
)

// BlinkSketch is a sketch that compiles cleanly.
const BlinkSketch = `void setup() {
  pinMode(13, OUTPUT);
}

void loop() {
  digitalWrite(13, HIGH);
}
`

// SetupTestProject creates a temporary project with an avrlint.yaml,
// a sketch and a library source.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := []string{
		filepath.Join(tmpDir, "src"),
		filepath.Join(tmpDir, "arduino", "hardware", "arduino", "avr", "cores", "arduino"),
		filepath.Join(tmpDir, ".git"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	files := map[string]string{
		"avrlint.yaml": `arduino_root: project_folder/arduino
board: Uno
arduino_libs: [Wire]
`,
		"blink.ino":        BlinkSketch,
		"src/driver.c":     "int driver_init(void) { return 0; }\n",
		"src/README.md":    "not a source file\n",
		".git/hooks.c":     "int hidden;\n",
		"src/generated.pb": "binary\n",
	}
	for name, content := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// InstallFakeCompiler puts an avr-gcc script on PATH that drains stdin,
// prints output and exits with exitCode. "avr-gcc --version" prints version.
// Tests using it are skipped where no POSIX shell is available.
func InstallFakeCompiler(t *testing.T, version, compilerOutput string, exitCode int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake compiler needs a POSIX shell")
	}

	binDir := t.TempDir()
	outFile := filepath.Join(binDir, "output.txt")
	if err := os.WriteFile(outFile, []byte(compilerOutput), 0o600); err != nil {
		t.Fatalf("failed to write compiler output: %v", err)
	}

	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
  echo '%s'
  exit 0
fi
cat > /dev/null
cat '%s' 1>&2
exit %d
`, version, outFile, exitCode)

	path := filepath.Join(binDir, "avr-gcc")
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil { //nolint:gosec // must be executable
		t.Fatalf("failed to write fake compiler: %v", err)
	}

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
