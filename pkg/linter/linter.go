// Package linter builds avr-gcc syntax-check commands from linter settings
// and turns the compiler's output into diagnostics.
//
// Everything that touches the outside world (settings lookup, the active
// project, running the compiler) goes through a Host so the command building
// can be exercised without an editor or a compiler installed.
package linter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/avrlint/pkg/gccdiag"
)

// Host supplies configuration and process execution to the Linter.
type Host interface {
	// Settings returns the configuration for the current invocation.
	Settings() Settings
	// ProjectFolder returns the folder substituted for project_folder.
	ProjectFolder() string
	// RunSubprocess runs command with stdin attached and returns everything
	// the process wrote to stdout and stderr.
	RunSubprocess(ctx context.Context, command string, stdin io.Reader) (string, error)
}

// Result is the outcome of one lint pass.
type Result struct {
	Command     string
	Output      string
	Diagnostics []gccdiag.Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == gccdiag.SeverityError {
			return true
		}
	}
	return false
}

// Linter checks sources with avr-gcc through a Host.
type Linter struct {
	host   Host
	logger *slog.Logger
}

// New creates a Linter. A nil logger discards log output.
func New(host Host, logger *slog.Logger) *Linter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Linter{host: host, logger: logger}
}

// Command returns the command line the host should run for lang.
func (l *Linter) Command(lang Language) string {
	return BuildCommand(l.host.Settings(), lang, l.host.ProjectFolder())
}

// Lint runs the compiler on source and parses its output. Compile errors
// are reported as diagnostics, not as an error. The error is set when the
// host could not run the command, or when the compiler failed without
// printing an error diagnostic (*CompilerError).
func (l *Linter) Lint(ctx context.Context, lang Language, source io.Reader) (*Result, error) {
	cmd := l.Command(lang)
	l.logger.Debug("running compiler", "command", cmd, "language", lang.String())

	out, err := l.host.RunSubprocess(ctx, cmd, source)
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("failed to run %s: %w", Executable, err)
	}

	res := &Result{
		Command:     cmd,
		Output:      out,
		Diagnostics: gccdiag.Parse(out),
	}
	l.logger.Debug("parsed compiler output", "diagnostics", len(res.Diagnostics), "bytes", len(out))

	if exitErr != nil && !res.HasErrors() {
		return nil, &CompilerError{Command: cmd, Code: exitErr.Code, Output: out}
	}
	return res, nil
}
