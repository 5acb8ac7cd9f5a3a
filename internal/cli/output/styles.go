package output

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusSkipped lipgloss.Style
	StatusPending lipgloss.Style
}

var (
	colorRed    = lipgloss.Color("9")
	colorYellow = lipgloss.Color("11")
	colorGreen  = lipgloss.Color("10")
	colorCyan   = lipgloss.Color("14")
	colorGray   = lipgloss.Color("8")
	colorBlue   = lipgloss.Color("12")
)

// DefaultStyles returns colored styles for terminals.
func DefaultStyles() *Styles {
	return &Styles{
		Header1: lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
		Header2: lipgloss.NewStyle().Bold(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorGray),
		Path:    lipgloss.NewStyle().Bold(true).Underline(true),

		Success: lipgloss.NewStyle().Foreground(colorGreen),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		Warning: lipgloss.NewStyle().Foreground(colorYellow),
		Info:    lipgloss.NewStyle().Foreground(colorCyan),

		StatusSuccess: lipgloss.NewStyle().Foreground(colorGreen).SetString("✓"),
		StatusFailed:  lipgloss.NewStyle().Foreground(colorRed).SetString("✗"),
		StatusSkipped: lipgloss.NewStyle().Foreground(colorGray).SetString("-"),
		StatusPending: lipgloss.NewStyle().Foreground(colorYellow).SetString("•"),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header1: plain,
		Header2: plain,
		Bold:    plain,
		Muted:   plain,
		Path:    plain,

		Success: plain,
		Error:   plain,
		Warning: plain,
		Info:    plain,

		StatusSuccess: plain.SetString("✓"),
		StatusFailed:  plain.SetString("✗"),
		StatusSkipped: plain.SetString("-"),
		StatusPending: plain.SetString("•"),
	}
}
