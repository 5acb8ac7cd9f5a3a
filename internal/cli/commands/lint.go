package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/internal/host"
	"github.com/leapstack-labs/avrlint/pkg/gccdiag"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// errLintIssues makes the process exit 1 when errors were reported.
var errLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Exclude          []string // Glob patterns of files to skip
	Jobs             int      // Concurrent compilers
	Format           string   // Output format override
	Severity         string   // Minimum severity: error, warning, note
	Syntax           string   // Force the language instead of using extensions
	StdinFilename    string   // Lint stdin as if it were this file
	SkipVersionCheck bool
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Check C, C++ and Arduino sources with avr-gcc",
		Long: `Run avr-gcc in syntax-only mode on each source and report its diagnostics.

Directories are searched for .c, .cpp, .ino and header files. The board,
core libraries and extra flags come from avrlint.yaml, AVRLINT_* environment
variables or flags.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain compiler-style lines
  - JSON: Machine-readable format`,
		Example: `  # Lint every source below the current directory
  avrlint lint

  # Lint one sketch for a Mega
  avrlint lint --board Mega2560 blink.ino

  # Lint an unsaved editor buffer
  avrlint lint --stdin-filename blink.ino < blink.ino

  # Only report errors
  avrlint lint --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Glob patterns of files to skip")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.NumCPU(), "Number of concurrent compilers")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, table, json, markdown")
	cmd.Flags().StringVar(&opts.Severity, "severity", "note", "Minimum severity: note, warning, error")
	cmd.Flags().StringVar(&opts.Syntax, "syntax", "", "Force the language: c, c++, cpp, arduino")
	cmd.Flags().StringVar(&opts.StdinFilename, "stdin-filename", "", "Read the source from stdin and report it under this name")
	cmd.Flags().BoolVar(&opts.SkipVersionCheck, "skip-version-check", false, "Do not check the avr-gcc version")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"note", "warning", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Command     string
	Diagnostics []gccdiag.Diagnostic
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	minSeverity, ok := gccdiag.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q (want note, warning or error)", opts.Severity)
	}

	forced := linter.LanguageUnknown
	if opts.Syntax != "" {
		if forced = linter.ParseSyntax(opts.Syntax); forced == linter.LanguageUnknown {
			return fmt.Errorf("unknown syntax %q", opts.Syntax)
		}
	}

	ctx := cmd.Context()
	if !opts.SkipVersionCheck {
		v, err := host.CheckVersion(ctx, linter.Executable)
		if err != nil {
			return err
		}
		cmdCtx.Logger.Debug("compiler version ok", "version", v.String())
	}

	var results []lintFileResult
	if opts.StdinFilename != "" {
		res, err := lintStdin(ctx, cmdCtx, cmd.InOrStdin(), opts.StdinFilename, forced)
		if err != nil {
			return err
		}
		results = []lintFileResult{res}
	} else {
		exclude, err := compileExcludes(opts.Exclude)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = []string{"."}
		}
		files, err := resolveSources(args, exclude)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			r.Warning("no C, C++ or Arduino sources found")
			return nil
		}
		results, err = lintFiles(ctx, cmdCtx, files, forced, opts.Jobs)
		if err != nil {
			return err
		}
	}

	results = filterBySeverity(results, minSeverity)
	if renderLintResults(r, results) {
		return errLintIssues
	}
	return nil
}

func lintStdin(ctx context.Context, cmdCtx *CommandContext, stdin io.Reader, name string, forced linter.Language) (lintFileResult, error) {
	lang, err := sourceLanguage(name, forced)
	if err != nil {
		return lintFileResult{}, err
	}

	// The file named on the command line may not exist yet; only use it to
	// pick the project folder when it does.
	active := ""
	if _, err := os.Stat(name); err == nil {
		active = name
	}

	res, err := linter.New(cmdCtx.Host(active), cmdCtx.Logger).Lint(ctx, lang, stdin)
	if err != nil {
		return lintFileResult{}, err
	}
	return lintFileResult{Path: name, Command: res.Command, Diagnostics: res.Diagnostics}, nil
}

// lintFiles lints files with at most jobs compilers running at once.
// Results keep the order of files.
func lintFiles(ctx context.Context, cmdCtx *CommandContext, files []string, forced linter.Language, jobs int) ([]lintFileResult, error) {
	if jobs < 1 {
		jobs = 1
	}

	langs := make([]linter.Language, len(files))
	for i, path := range files {
		lang, err := sourceLanguage(path, forced)
		if err != nil {
			return nil, err
		}
		langs[i] = lang
	}

	base := cmdCtx.Host("")
	results := make([]lintFileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			res, err := linter.New(base.ForFile(path), cmdCtx.Logger).Lint(ctx, langs[i], bytes.NewReader(src))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = lintFileResult{Path: path, Command: res.Command, Diagnostics: res.Diagnostics}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func filterBySeverity(results []lintFileResult, minimum gccdiag.Severity) []lintFileResult {
	filtered := make([]lintFileResult, 0, len(results))
	for _, res := range results {
		var diags []gccdiag.Diagnostic
		for _, d := range res.Diagnostics {
			if d.Severity.AtLeast(minimum) {
				diags = append(diags, d)
			}
		}
		res.Diagnostics = diags
		filtered = append(filtered, res)
	}
	return filtered
}

func summarize(results []lintFileResult) output.LintSummary {
	summary := output.LintSummary{FilesChecked: len(results)}
	for _, res := range results {
		if len(res.Diagnostics) > 0 {
			summary.FilesFailed++
		}
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case gccdiag.SeverityError:
				summary.Errors++
			case gccdiag.SeverityWarning:
				summary.Warnings++
			case gccdiag.SeverityNote:
				summary.Notes++
			}
		}
	}
	return summary
}

// renderLintResults prints results and reports whether any error was found.
func renderLintResults(r *output.Renderer, results []lintFileResult) bool {
	summary := summarize(results)
	hasErrors := summary.Errors > 0

	switch r.EffectiveMode() {
	case output.ModeJSON:
		jsonOutput := output.LintOutput{Summary: summary, Files: []output.LintFileResult{}}
		for _, res := range results {
			fileResult := output.LintFileResult{
				Path:        res.Path,
				Command:     res.Command,
				Diagnostics: []output.LintDiagnostic{},
			}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					Line:     d.Line,
					Column:   d.Column,
					Severity: d.Severity.String(),
					Message:  d.Message,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return hasErrors

	case output.ModeTable, output.ModeMarkdown:
		if summary.TotalIssues == 0 {
			r.Success(fmt.Sprintf("No issues found in %d files", summary.FilesChecked))
			return false
		}
		rows := make([][]string, 0, summary.TotalIssues)
		for _, res := range results {
			for _, d := range res.Diagnostics {
				rows = append(rows, []string{res.Path, location(d), d.Severity.String(), d.Message})
			}
		}
		r.Table([]string{"File", "Location", "Severity", "Message"}, rows)

	default:
		if summary.TotalIssues == 0 {
			r.Success(fmt.Sprintf("No issues found in %d files", summary.FilesChecked))
			return false
		}
		for _, res := range results {
			for _, d := range res.Diagnostics {
				// Same shape as the compiler's own messages so editors can jump to them
				r.Printf("%s:%s: %s: %s\n",
					r.Styles().Path.Render(res.Path),
					location(d),
					severityStyle(r, d.Severity),
					d.Message,
				)
			}
		}
	}

	r.Println("")
	r.Printf("Summary: %s in %d of %d files\n", summaryLine(summary), summary.FilesFailed, summary.FilesChecked)
	return hasErrors
}

func location(d gccdiag.Diagnostic) string {
	if d.HasColumn() {
		return fmt.Sprintf("%d:%d", d.Line, *d.Column)
	}
	return fmt.Sprintf("%d", d.Line)
}

func summaryLine(s output.LintSummary) string {
	titleCaser := cases.Title(language.English)
	parts := []string{fmt.Sprintf("%d issues", s.TotalIssues)}
	for _, c := range []struct {
		n    int
		name string
	}{
		{s.Errors, "errors"},
		{s.Warnings, "warnings"},
		{s.Notes, "notes"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", titleCaser.String(c.name), c.n))
		}
	}
	return strings.Join(parts, ", ")
}

func severityStyle(r *output.Renderer, sev gccdiag.Severity) string {
	switch sev {
	case gccdiag.SeverityError:
		return r.Styles().Error.Render("error")
	case gccdiag.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case gccdiag.SeverityNote:
		return r.Styles().Info.Render("note")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
