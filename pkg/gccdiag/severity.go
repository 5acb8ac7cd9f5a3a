package gccdiag

import (
	"fmt"
	"strings"
)

// Severity classifies a compiler diagnostic.
type Severity int

// Severity levels, most severe first.
const (
	// SeverityError is a hard compile error.
	SeverityError Severity = iota
	// SeverityWarning is a compiler warning.
	SeverityWarning
	// SeverityNote is supporting information attached to another diagnostic.
	SeverityNote
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "note":
		return SeverityNote, true
	default:
		return SeverityWarning, false
	}
}

// AtLeast reports whether s is as severe as, or more severe than, min.
func (s Severity) AtLeast(minimum Severity) bool {
	return s <= minimum
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = v
	return nil
}
