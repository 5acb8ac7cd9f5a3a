package linter

import (
	"path/filepath"
	"strings"
)

// Language is the source language the compiler is told to expect.
type Language int

// Languages understood by the command builder.
const (
	LanguageUnknown Language = iota
	LanguageC
	LanguageCXX
)

// String returns the -x argument for the language, or "" when unknown.
func (l Language) String() string {
	switch l {
	case LanguageC:
		return "c"
	case LanguageCXX:
		return "c++"
	default:
		return ""
	}
}

// ParseSyntax maps an editor syntax or LSP language id to a Language.
func ParseSyntax(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c", "c improved":
		return LanguageC
	case "c++", "c++11", "cpp", "arduino":
		return LanguageCXX
	default:
		return LanguageUnknown
	}
}

// LanguageForPath guesses the language from a file extension. Headers are
// treated as C++ since Arduino code is C++.
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c":
		return LanguageC
	case ".cpp", ".cc", ".cxx", ".c++", ".ino", ".pde", ".hpp", ".hh", ".h":
		return LanguageCXX
	default:
		return LanguageUnknown
	}
}

// IsSource reports whether path has an extension the linter can check.
func IsSource(path string) bool {
	return LanguageForPath(path) != LanguageUnknown
}
