// Package host runs avr-gcc for the linter as a local subprocess.
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/google/shlex"

	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// ErrExecutableNotFound is returned when the compiler is not on PATH.
var ErrExecutableNotFound = errors.New("executable not found")

// Options configures an Exec host.
type Options struct {
	Settings linter.Settings
	// ProjectFile is the project configuration file, when there is one.
	ProjectFile string
	// ActiveFile is the file being linted, when it exists on disk.
	ActiveFile string
	Logger     *slog.Logger
}

// Exec is a linter.Host that runs commands with os/exec.
type Exec struct {
	settings    linter.Settings
	projectFile string
	activeFile  string
	logger      *slog.Logger
}

// New creates an Exec host.
func New(opts Options) *Exec {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exec{
		settings:    opts.Settings,
		projectFile: opts.ProjectFile,
		activeFile:  opts.ActiveFile,
		logger:      logger,
	}
}

// ForFile returns a copy of the host whose active file is path.
func (h *Exec) ForFile(path string) *Exec {
	c := *h
	c.activeFile = path
	return &c
}

// Settings implements linter.Host.
func (h *Exec) Settings() linter.Settings {
	return h.settings
}

// ProjectFolder implements linter.Host.
func (h *Exec) ProjectFolder() string {
	return linter.ResolveProjectFolder(h.projectFile, h.activeFile)
}

// RunSubprocess implements linter.Host. The command is split with shell
// quoting rules and run in the project folder. Standard output and standard
// error are returned together. A non-zero exit status is reported as a
// *linter.ExitError together with the output, since the compiler exits 1
// whenever it reports an error.
func (h *Exec) RunSubprocess(ctx context.Context, command string, stdin io.Reader) (string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("failed to split command: %w", err)
	}
	if len(args) == 0 {
		return "", errors.New("empty command")
	}

	path, err := LookPath(args[0])
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.Dir = h.ProjectFolder()
	cmd.Stdin = stdin
	cmd.Stdout = &out
	cmd.Stderr = &out

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out.String(), ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		h.logger.Debug("compiler exited", "code", exitErr.ExitCode())
		return out.String(), &linter.ExitError{Code: exitErr.ExitCode()}
	}
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return out.String(), nil
}

// LookPath resolves an executable on PATH.
func LookPath(executable string) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, executable)
	}
	return path, nil
}
