package arduino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	tests := []struct {
		board string
		want  string
	}{
		{"Uno", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega328p -DF_CPU=16000000L -DARDUINO_AVR_UNO"},
		{"ProMini5V328", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega328p -DF_CPU=16000000L -DARDUINO_AVR_PRO"},
		{"ProMini5V168", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega168 -DF_CPU=16000000L -DARDUINO_AVR_PRO"},
		{"ProMini3V328", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega328p -DF_CPU=8000000L -DARDUINO_AVR_PRO"},
		{"ProMini3V168", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega168 -DF_CPU=8000000L -DARDUINO_AVR_PRO"},
		{"Mega1280", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega1280 -DF_CPU=16000000L -DARDUINO_AVR_MEGA"},
		{"Mega2560", "-Os -DARDUINO_ARCH_AVR -mmcu=atmega2560 -DF_CPU=16000000L -DARDUINO_AVR_MEGA2560"},
	}

	for _, tt := range tests {
		t.Run(tt.board, func(t *testing.T) {
			assert.Equal(t, tt.want, Flags(tt.board))
		})
	}
}

func TestFlags_UnknownBoard(t *testing.T) {
	for _, board := range []string{"", "Leonardo", "uno", "Mega"} {
		assert.Equal(t, "-Os -DARDUINO_ARCH_AVR", Flags(board), "board %q", board)
	}
}

func TestFlagList_DoesNotAliasBaseFlags(t *testing.T) {
	first := FlagList("Uno")
	first[0] = "-O0"

	assert.Equal(t, "-Os", BaseFlags[0])
	assert.Equal(t, "-Os", FlagList("Uno")[0])
}

func TestBoards(t *testing.T) {
	specs := Boards()
	require.Len(t, specs, 7)
	assert.Equal(t, Uno, specs[0].Board)
	assert.Equal(t, Mega2560, specs[len(specs)-1].Board)

	// Mutating the returned slice must not change the table.
	specs[0].MCU = "changed"
	spec, ok := Lookup("Uno")
	require.True(t, ok)
	assert.Equal(t, "atmega328p", spec.MCU)
}

func TestBoardNames(t *testing.T) {
	assert.Equal(t, []string{
		"Uno", "ProMini5V328", "ProMini5V168", "ProMini3V328", "ProMini3V168", "Mega1280", "Mega2560",
	}, BoardNames())
}

func TestLookup(t *testing.T) {
	spec, ok := Lookup("Mega1280")
	require.True(t, ok)
	assert.Equal(t, VariantMega, spec.Variant)
	assert.Equal(t, []string{"-mmcu=atmega1280", "-DF_CPU=16000000L", "-DARDUINO_AVR_MEGA"}, spec.Flags())

	_, ok = Lookup("mega1280")
	assert.False(t, ok, "lookup is case sensitive")
}
