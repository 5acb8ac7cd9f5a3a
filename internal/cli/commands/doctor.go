package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/avrlint/internal/cli/config"
	"github.com/leapstack-labs/avrlint/internal/cli/output"
	"github.com/leapstack-labs/avrlint/internal/host"
	"github.com/leapstack-labs/avrlint/pkg/arduino"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// Doctor check statuses.
const (
	statusPass = "pass"
	statusWarn = "warn"
	statusFail = "fail"
	statusSkip = "skip"
)

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks      []output.CheckResult `json:"checks"`
	IncludeDirs []string             `json:"include_dirs"`
	Command     string               `json:"command"`
	Failures    int                  `json:"failures"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the compiler and Arduino installation",
		Long: `Verify that avrlint can lint in this project.

The doctor command reports:
- The configuration file in use
- Whether avr-gcc is on PATH and new enough
- Whether the board and libraries are known
- Whether the Arduino root and include directories exist`,
		Example: `  avrlint doctor
  avrlint doctor -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	out := buildDoctorOutput(cmd, cmdCtx)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}

	if out.Failures > 0 {
		return fmt.Errorf("%d doctor checks failed", out.Failures)
	}
	return nil
}

func buildDoctorOutput(cmd *cobra.Command, cmdCtx *CommandContext) *DoctorOutput {
	cfg := cmdCtx.Cfg
	h := cmdCtx.Host("")
	vars := linter.ProjectVars(h.ProjectFolder())

	var checks []output.CheckResult
	add := func(name, status, detail string) {
		checks = append(checks, output.CheckResult{Name: name, Status: status, Detail: detail})
	}

	// Config file
	if cfg.ConfigFile != "" {
		add("config", statusPass, cfg.ConfigFile)
	} else {
		add("config", statusWarn, "no "+config.ConfigFileName+" found, using defaults")
	}

	// Compiler
	if path, err := host.LookPath(linter.Executable); err != nil {
		add("compiler", statusFail, err.Error())
		add("version", statusSkip, "compiler not found")
	} else {
		add("compiler", statusPass, path)
		v, err := host.CheckVersion(cmd.Context(), linter.Executable)
		var verr *host.VersionError
		switch {
		case errors.As(err, &verr):
			add("version", statusFail, verr.Error())
		case err != nil:
			add("version", statusWarn, err.Error())
		default:
			add("version", statusPass, fmt.Sprintf("%s (%s)", v, host.VersionRequirement))
		}
	}

	// Board and libraries
	if spec, ok := arduino.Lookup(cfg.Linter.Board); ok {
		add("board", statusPass, fmt.Sprintf("%s (%s @ %s)", spec.Board, spec.MCU, spec.FCPU))
	} else {
		add("board", statusWarn, fmt.Sprintf("unknown board %q, only base flags are used", cfg.Linter.Board))
	}
	for _, lib := range cfg.Linter.ArduinoLibs {
		if _, ok := arduino.LookupLibrary(lib); !ok {
			add("library "+lib, statusWarn, "unknown library, ignored")
		}
	}

	// Arduino root
	root := linter.Expand(cfg.Linter.ArduinoRoot, vars)
	switch {
	case root == "":
		add("arduino_root", statusWarn, "not set, core headers will not be found")
	case !dirExists(root):
		add("arduino_root", statusFail, root+" does not exist")
	default:
		add("arduino_root", statusPass, root)
	}

	// Include directories
	dirs := cfg.Linter.IncludePaths()
	expanded := make([]string, len(dirs))
	missing := 0
	for i, d := range dirs {
		expanded[i] = linter.Expand(d, vars)
		if !dirExists(expanded[i]) {
			missing++
		}
	}
	if missing > 0 {
		add("include_dirs", statusWarn, fmt.Sprintf("%d of %d directories do not exist", missing, len(dirs)))
	} else {
		add("include_dirs", statusPass, fmt.Sprintf("%d directories", len(dirs)))
	}

	failures := 0
	for _, c := range checks {
		if c.Status == statusFail {
			failures++
		}
	}

	return &DoctorOutput{
		Checks:      checks,
		IncludeDirs: expanded,
		Command:     linter.New(h, cmdCtx.Logger).Command(linter.LanguageCXX),
		Failures:    failures,
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("avrlint doctor"))
	r.Println("")

	for _, c := range out.Checks {
		switch c.Status {
		case statusPass:
			r.StatusLine(c.Name, "success", c.Detail)
		case statusFail:
			r.StatusLine(c.Name, "failed", c.Detail)
		case statusSkip:
			r.StatusLine(c.Name, "skipped", c.Detail)
		default:
			r.StatusLine(c.Name, "warn", c.Detail)
		}
	}
	r.Println("")

	r.Println(styles.Header2.Render("Include directories"))
	for _, d := range out.IncludeDirs {
		r.Println(styles.Muted.Render("   " + d))
	}
	r.Println("")

	r.Println(styles.Header2.Render("Command"))
	r.Println("   " + out.Command)
	r.Println("")
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println(output.FormatHeader(1, "avrlint doctor"))
	r.Println("")

	titleCaser := cases.Upper(language.English)
	for _, c := range out.Checks {
		r.Printf("- **[%s]** %s", titleCaser.String(c.Status), c.Name)
		if c.Detail != "" {
			r.Printf(": %s", c.Detail)
		}
		r.Println("")
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Include directories"))
	r.Println("")
	for _, d := range out.IncludeDirs {
		r.Printf("- `%s`\n", d)
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Command"))
	r.Println("")
	r.Println("```sh")
	r.Println(out.Command)
	r.Println("```")
}
