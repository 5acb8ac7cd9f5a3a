package linter

import (
	"fmt"
	"strings"
)

// ExitError is returned by a Host when the command ran to completion but
// exited with a non-zero status. The output is still returned alongside it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// CompilerError reports a compiler run that failed without printing an
// error diagnostic, typically because the command line itself was rejected
// (unknown option, bad -mmcu, missing include root).
type CompilerError struct {
	Command string
	Code    int
	Output  string
}

func (e *CompilerError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s exited with status %d and no diagnostics", Executable, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", Executable, e.Code, out)
}
