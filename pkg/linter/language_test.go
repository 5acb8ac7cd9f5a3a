package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSyntax(t *testing.T) {
	tests := map[string]Language{
		"c":          LanguageC,
		"C Improved": LanguageC,
		"c++":        LanguageCXX,
		"c++11":      LanguageCXX,
		"cpp":        LanguageCXX,
		"arduino":    LanguageCXX,
		"python":     LanguageUnknown,
		"":           LanguageUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSyntax(in), "ParseSyntax(%q)", in)
	}
}

func TestLanguageForPath(t *testing.T) {
	tests := map[string]Language{
		"blink.c":          LanguageC,
		"sketch.ino":       LanguageCXX,
		"Sketch.INO":       LanguageCXX,
		"lib/driver.cpp":   LanguageCXX,
		"include/pins.h":   LanguageCXX,
		"old.pde":          LanguageCXX,
		"README.md":        LanguageUnknown,
		"Makefile":         LanguageUnknown,
		"archive.tar.c.gz": LanguageUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, LanguageForPath(in), "LanguageForPath(%q)", in)
	}
	assert.True(t, IsSource("a.cc"))
	assert.False(t, IsSource("a.o"))
}

func TestLanguage_String(t *testing.T) {
	assert.Equal(t, "c", LanguageC.String())
	assert.Equal(t, "c++", LanguageCXX.String())
	assert.Equal(t, "", LanguageUnknown.String())
}
