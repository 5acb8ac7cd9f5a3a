package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/avrlint/internal/testutil"
)

type collector struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *collector) add(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, paths)
}

func (c *collector) seen() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]bool)
	for _, b := range c.batches {
		for _, p := range b {
			out[p] = true
		}
	}
	return out
}

func startWatcher(t *testing.T, opts Options) *collector {
	t.Helper()

	w, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	c := &collector{}
	go func() { done <- w.Run(ctx, c.add) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return c
}

func TestWatcher_ReportsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	c := startWatcher(t, Options{
		Dirs:     []string{dir},
		Debounce: 50 * time.Millisecond,
		Filter:   func(p string) bool { return strings.HasSuffix(p, ".ino") },
		Logger:   testutil.NewTestLogger(t),
	})

	sketch := filepath.Join(dir, "blink.ino")
	require.NoError(t, os.WriteFile(sketch, []byte("void setup() {}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	assert.Eventually(t, func() bool { return c.seen()[sketch] }, 5*time.Second, 20*time.Millisecond)
	assert.False(t, c.seen()[filepath.Join(dir, "notes.txt")])
}

func TestWatcher_WatchesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	c := startWatcher(t, Options{Dirs: []string{dir}, Debounce: 20 * time.Millisecond})

	sub := filepath.Join(dir, "lib")
	require.NoError(t, os.Mkdir(sub, 0o750))

	file := filepath.Join(sub, "pins.h")
	assert.Eventually(t, func() bool {
		// Keep touching the file until the new directory is being watched
		_ = os.WriteFile(file, []byte("#pragma once\n"), 0o600)
		return c.seen()[file]
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatcher_SkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".git")
	require.NoError(t, os.Mkdir(hidden, 0o750))

	w, err := New(Options{Dirs: []string{dir}})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	assert.ElementsMatch(t, []string{dir}, w.fs.WatchList())
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(Options{Dirs: []string{filepath.Join(t.TempDir(), "missing")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
