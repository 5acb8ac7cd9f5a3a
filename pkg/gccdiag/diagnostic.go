// Package gccdiag extracts diagnostics from the text avr-gcc prints when it
// checks a translation unit read from standard input.
package gccdiag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PatternSource is the diagnostic regular expression. Named groups:
// line, col, error, warning and message.
//
// The column and its trailing ": " only appear in the single line form.
// Backtrace lines ("In function ...", "required from here") are skipped
// lazily until the first error/warning/note token, so one match never
// swallows the next diagnostic.
const PatternSource = `<stdin>:(?P<line>\d+):` +
	`((?P<col>\d*): )?` +
	`(.*?((?P<error>error)|(?P<warning>warning|note)|\r?\n))+?` +
	`: (?P<message>.+)`

// Pattern is the compiled PatternSource.
var Pattern = regexp.MustCompile(PatternSource)

var (
	lineGroup    = Pattern.SubexpIndex("line")
	colGroup     = Pattern.SubexpIndex("col")
	errorGroup   = Pattern.SubexpIndex("error")
	warningGroup = Pattern.SubexpIndex("warning")
	messageGroup = Pattern.SubexpIndex("message")
)

// Diagnostic is one parsed compiler message. Line and Column are one-based
// as printed by the compiler; Column is nil when the compiler gave none.
type Diagnostic struct {
	Line     int      `json:"line"`
	Column   *int     `json:"column,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// HasColumn reports whether the compiler printed a column.
func (d Diagnostic) HasColumn() bool {
	return d.Column != nil
}

// String formats the diagnostic the way gcc does, without the file name.
func (d Diagnostic) String() string {
	if d.Column != nil {
		return fmt.Sprintf("%d:%d: %s: %s", d.Line, *d.Column, d.Severity, d.Message)
	}
	return fmt.Sprintf("%d: %s: %s", d.Line, d.Severity, d.Message)
}

// Parse returns every diagnostic found in output, in output order.
func Parse(output string) []Diagnostic {
	matches := Pattern.FindAllStringSubmatchIndex(output, -1)
	diags := make([]Diagnostic, 0, len(matches))
	for _, loc := range matches {
		if d, ok := fromMatch(output, loc); ok {
			diags = append(diags, d)
		}
	}
	return diags
}

// ParseOne parses the first diagnostic in output.
func ParseOne(output string) (Diagnostic, bool) {
	loc := Pattern.FindStringSubmatchIndex(output)
	if loc == nil {
		return Diagnostic{}, false
	}
	return fromMatch(output, loc)
}

func group(s string, loc []int, idx int) (string, bool) {
	start, end := loc[2*idx], loc[2*idx+1]
	if start < 0 {
		return "", false
	}
	return s[start:end], true
}

func fromMatch(s string, loc []int) (Diagnostic, bool) {
	lineText, _ := group(s, loc, lineGroup)
	line, err := strconv.Atoi(lineText)
	if err != nil {
		return Diagnostic{}, false
	}

	d := Diagnostic{Line: line}

	// An empty col group ("<stdin>:3:: ...") carries no column.
	if colText, ok := group(s, loc, colGroup); ok && colText != "" {
		if col, err := strconv.Atoi(colText); err == nil {
			d.Column = &col
		}
	}

	// error wins when a backtrace contained both tokens.
	switch {
	case isSet(loc, errorGroup):
		d.Severity = SeverityError
	case isSet(loc, warningGroup):
		word, _ := group(s, loc, warningGroup)
		d.Severity, _ = ParseSeverity(word)
	default:
		return Diagnostic{}, false
	}

	msg, _ := group(s, loc, messageGroup)
	d.Message = strings.TrimRight(msg, "\r")
	return d, true
}

func isSet(loc []int, idx int) bool {
	return loc[2*idx] >= 0
}
