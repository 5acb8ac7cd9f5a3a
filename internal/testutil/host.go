package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// FakeHost is a linter.Host that records the commands it is asked to run
// and answers with canned compiler output.
type FakeHost struct {
	Config linter.Settings
	Folder string
	Output string
	// ExitCode, when non-zero, is reported as a *linter.ExitError along
	// with Output.
	ExitCode int
	Err      error

	mu       sync.Mutex
	commands []string
	stdins   []string
}

// NewFakeHost returns a FakeHost with default settings rooted at folder.
func NewFakeHost(folder string) *FakeHost {
	return &FakeHost{Config: linter.DefaultSettings(), Folder: folder}
}

// Settings implements linter.Host.
func (h *FakeHost) Settings() linter.Settings { return h.Config }

// ProjectFolder implements linter.Host.
func (h *FakeHost) ProjectFolder() string { return h.Folder }

// RunSubprocess implements linter.Host.
func (h *FakeHost) RunSubprocess(_ context.Context, command string, stdin io.Reader) (string, error) {
	var in []byte
	if stdin != nil {
		in, _ = io.ReadAll(stdin)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, command)
	h.stdins = append(h.stdins, string(in))

	if h.Err != nil {
		return "", h.Err
	}
	if h.ExitCode != 0 {
		return h.Output, &linter.ExitError{Code: h.ExitCode}
	}
	return h.Output, nil
}

// Commands returns the commands run so far.
func (h *FakeHost) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.commands...)
}

// Stdins returns what each command received on standard input.
func (h *FakeHost) Stdins() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.stdins...)
}
