package linter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCommand_UnoC(t *testing.T) {
	s := DefaultSettings()
	s.ArduinoRoot = "/opt/arduino"

	got := BuildCommand(s, LanguageC, "/home/x/proj")

	assert.True(t, strings.HasPrefix(got,
		"avr-gcc -fsyntax-only -Wall  -x c  -Os -DARDUINO_ARCH_AVR -mmcu=atmega328p -DF_CPU=16000000L -DARDUINO_AVR_UNO "),
		"got %q", got)
	assert.True(t, strings.HasSuffix(got,
		" -I /opt/arduino/hardware/arduino/avr/cores/arduino -I /opt/arduino/hardware/arduino/avr/variants/standard -"),
		"got %q", got)
}

func TestBuildCommand(t *testing.T) {
	const core = "/hardware/arduino/avr/cores/arduino"

	tests := []struct {
		name     string
		settings Settings
		lang     Language
		folder   string
		want     string
	}{
		{
			name:     "empty configuration still yields a command",
			settings: Settings{},
			lang:     LanguageUnknown,
			want:     "avr-gcc -fsyntax-only -Wall -Os -DARDUINO_ARCH_AVR -I " + core + " -",
		},
		{
			name:     "c++ with extra cxxflags",
			settings: Settings{Board: "Mega2560", ExtraCXXFlags: "-std=gnu++11"},
			lang:     LanguageCXX,
			want: "avr-gcc -fsyntax-only -Wall  -x c++ -std=gnu++11 " +
				"-Os -DARDUINO_ARCH_AVR -mmcu=atmega2560 -DF_CPU=16000000L -DARDUINO_AVR_MEGA2560 " +
				"-I " + core + " -I /hardware/arduino/avr/variants/mega -",
		},
		{
			name:     "c flags are not used for c++",
			settings: Settings{Board: "nope", ExtraCFlags: "-std=c99", ExtraCXXFlags: ""},
			lang:     LanguageCXX,
			want:     "avr-gcc -fsyntax-only -Wall  -x c++  -Os -DARDUINO_ARCH_AVR -I " + core + " -",
		},
		{
			name:     "extra flags come before board flags and are templated",
			settings: Settings{Board: "nope", ExtraFlags: "-I project_folder/include -DDEBUG"},
			lang:     LanguageUnknown,
			folder:   "/home/x/proj",
			want: "avr-gcc -fsyntax-only -Wall -I /home/x/proj/include -DDEBUG -Os -DARDUINO_ARCH_AVR " +
				"-I " + core + " -",
		},
		{
			name: "user include dirs first, templated and quoted",
			settings: Settings{
				ArduinoRoot: "/opt/arduino",
				Board:       "nope",
				IncludeDirs: []string{"${project_folder}/lib", "$project_folder/my libs", "${nope}/x"},
				ArduinoLibs: []string{"SPI"},
			},
			lang:   LanguageUnknown,
			folder: "/home/x/proj",
			want: "avr-gcc -fsyntax-only -Wall -Os -DARDUINO_ARCH_AVR " +
				"-I /home/x/proj/lib -I '/home/x/proj/my libs' -I '${nope}/x' " +
				"-I /opt/arduino" + core + " -I /opt/arduino/hardware/arduino/avr/libraries/SPI/src -",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCommand(tt.settings, tt.lang, tt.folder))
		})
	}
}

func TestBuildCommand_DoesNotMutateSettings(t *testing.T) {
	s := Settings{Board: "Uno", IncludeDirs: make([]string, 1, 8)}
	s.IncludeDirs[0] = "/usr/include/extra"

	first := BuildCommand(s, LanguageC, ".")
	second := BuildCommand(s, LanguageC, ".")

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"/usr/include/extra"}, s.IncludeDirs)
}

func TestIncludePaths(t *testing.T) {
	s := Settings{ArduinoRoot: "/a", Board: "Uno", IncludeDirs: []string{"/mine"}, ArduinoLibs: []string{"EEPROM"}}
	assert.Equal(t, []string{
		"/mine",
		"/a/hardware/arduino/avr/cores/arduino",
		"/a/hardware/arduino/avr/variants/standard",
		"/a/hardware/arduino/avr/libraries/EEPROM/src",
	}, s.IncludePaths())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "Uno", s.Board)
	assert.Empty(t, s.ArduinoRoot)
	assert.Empty(t, s.ArduinoLibs)
	assert.Empty(t, s.IncludeDirs)
	assert.Equal(t, "Uno", DefaultsMap()["board"])
}
