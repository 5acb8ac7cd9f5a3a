package output

// LintOutput is the JSON output of the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintSummary counts lint results.
type LintSummary struct {
	FilesChecked int `json:"files_checked"`
	FilesFailed  int `json:"files_failed"`
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Notes        int `json:"notes"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Command     string           `json:"command,omitempty"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one compiler diagnostic.
type LintDiagnostic struct {
	Line     int    `json:"line"`
	Column   *int   `json:"column,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// BoardInfo describes a supported board.
type BoardInfo struct {
	Name    string   `json:"name"`
	MCU     string   `json:"mcu"`
	FCPU    string   `json:"f_cpu"`
	Define  string   `json:"define"`
	Variant string   `json:"variant"`
	Flags   []string `json:"flags"`
}

// LibraryInfo describes a bundled library.
type LibraryInfo struct {
	Name  string   `json:"name"`
	Paths []string `json:"paths"`
}

// CheckResult is one doctor check.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "fail"
	Detail string `json:"detail,omitempty"`
}
