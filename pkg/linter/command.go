package linter

import (
	"strings"

	"github.com/alessio/shellescape"

	"github.com/leapstack-labs/avrlint/pkg/arduino"
)

// Executable is the compiler the command runs.
const Executable = "avr-gcc"

// BaseCommand starts every command line.
const BaseCommand = Executable + " -fsyntax-only -Wall "

// BuildCommand assembles the syntax-check command line for settings and
// lang. The source is read from standard input (the trailing "-").
//
// Layout:
//
//	avr-gcc -fsyntax-only -Wall  -x <lang> <extra_c[xx]flags> <extra_flags> <board flags> -I <dir>... -
//
// project_folder placeholders in extra_flags and include directories are
// replaced with projectFolder; include directories are shell quoted.
// Nothing is validated: an empty configuration still yields a command and
// the compiler reports what is wrong with it.
func BuildCommand(s Settings, lang Language, projectFolder string) string {
	vars := ProjectVars(projectFolder)

	var b strings.Builder
	b.WriteString(BaseCommand)

	switch lang {
	case LanguageC:
		b.WriteString(" -x c " + s.ExtraCFlags + " ")
	case LanguageCXX:
		b.WriteString(" -x c++ " + s.ExtraCXXFlags + " ")
	}

	flags := arduino.Flags(s.Board)
	if extra := strings.TrimSpace(s.ExtraFlags); extra != "" {
		flags = extra + " " + flags
	}
	b.WriteString(Expand(flags, vars))
	b.WriteString(" ")

	for _, dir := range s.IncludePaths() {
		b.WriteString("-I ")
		b.WriteString(shellescape.Quote(Expand(dir, vars)))
		b.WriteString(" ")
	}

	b.WriteString("-")
	return b.String()
}
