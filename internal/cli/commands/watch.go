package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/avrlint/internal/watch"
	"github.com/leapstack-labs/avrlint/pkg/gccdiag"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Exclude  []string
	Jobs     int
	Severity string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Lint sources again whenever they change",
		Long: `Lint every source in the directory, then watch it and lint changed
files as they are saved. Press Ctrl+C to stop.`,
		Example: `  avrlint watch
  avrlint watch firmware --exclude 'vendor/**'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, dir, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Glob patterns of files to skip")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.NumCPU(), "Number of concurrent compilers")
	cmd.Flags().StringVar(&opts.Severity, "severity", "note", "Minimum severity: note, warning, error")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, dir string, opts *WatchOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	minSeverity, ok := gccdiag.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q (want note, warning or error)", opts.Severity)
	}
	exclude, err := compileExcludes(opts.Exclude)
	if err != nil {
		return err
	}

	lintAndRender := func(files []string) {
		results, err := lintFiles(ctx, cmdCtx, files, linter.LanguageUnknown, opts.Jobs)
		if err != nil {
			if ctx.Err() == nil {
				r.Error(err.Error())
			}
			return
		}
		renderLintResults(r, filterBySeverity(results, minSeverity))
	}

	files, err := resolveSources([]string{dir}, exclude)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		lintAndRender(files)
	}

	w, err := watch.New(watch.Options{
		Dirs:   []string{dir},
		Filter: func(path string) bool { return linter.IsSource(path) && !exclude.Match(path) },
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	r.Println(r.Styles().Muted.Render(fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.", dir)))

	return w.Run(ctx, func(changed []string) {
		var existing []string
		for _, p := range changed {
			if _, err := os.Stat(p); err == nil {
				existing = append(existing, p)
			}
		}
		if len(existing) == 0 {
			return
		}
		r.Println("")
		r.Header(2, fmt.Sprintf("Changed: %d files", len(existing)))
		lintAndRender(existing)
	})
}
