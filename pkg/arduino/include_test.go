package arduino

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncludeDirs(t *testing.T) {
	const root = "/opt/arduino"
	core := root + "/hardware/arduino/avr/cores/arduino"

	tests := []struct {
		name  string
		board string
		libs  []string
		want  []string
	}{
		{
			name:  "uno",
			board: "Uno",
			want:  []string{core, root + "/hardware/arduino/avr/variants/standard"},
		},
		{
			name:  "pro mini uses eight analog inputs",
			board: "ProMini3V168",
			want:  []string{core, root + "/hardware/arduino/avr/variants/eightanaloginputs"},
		},
		{
			name:  "mega",
			board: "Mega2560",
			want:  []string{core, root + "/hardware/arduino/avr/variants/mega"},
		},
		{
			name:  "unknown board has no variant",
			board: "Leonardo",
			want:  []string{core},
		},
		{
			name:  "libraries keep request order",
			board: "Uno",
			libs:  []string{"SPI", "Wire", "EEPROM"},
			want: []string{
				core,
				root + "/hardware/arduino/avr/variants/standard",
				root + "/hardware/arduino/avr/libraries/SPI/src",
				root + "/hardware/arduino/avr/libraries/Wire/src",
				root + "/hardware/arduino/avr/libraries/Wire/src/utility",
				root + "/hardware/arduino/avr/libraries/EEPROM/src",
			},
		},
		{
			name:  "duplicates are kept",
			board: "",
			libs:  []string{"Wire", "Wire"},
			want: []string{
				core,
				root + "/hardware/arduino/avr/libraries/Wire/src",
				root + "/hardware/arduino/avr/libraries/Wire/src/utility",
				root + "/hardware/arduino/avr/libraries/Wire/src",
				root + "/hardware/arduino/avr/libraries/Wire/src/utility",
			},
		},
		{
			name:  "unknown libraries are skipped",
			board: "Mega1280",
			libs:  []string{"Servo", "SPI", "wire"},
			want: []string{
				core,
				root + "/hardware/arduino/avr/variants/mega",
				root + "/hardware/arduino/avr/libraries/SPI/src",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IncludeDirs(root, tt.board, tt.libs))
		})
	}
}

func TestIncludeDirs_EmptyRoot(t *testing.T) {
	assert.Equal(t, []string{"/hardware/arduino/avr/cores/arduino"}, IncludeDirs("", "nope", nil))
}

func TestLibraries(t *testing.T) {
	libs := Libraries()
	assert.Len(t, libs, 3)

	libs[0].Paths[0] = "changed"
	wire, ok := LookupLibrary("Wire")
	assert.True(t, ok)
	assert.Equal(t, "libraries/Wire/src", wire.Paths[0])
}
