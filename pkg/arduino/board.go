package arduino

import "strings"

// Board identifies an Arduino AVR board.
type Board string

// Supported boards.
const (
	Uno          Board = "Uno"
	ProMini5V328 Board = "ProMini5V328"
	ProMini5V168 Board = "ProMini5V168"
	ProMini3V328 Board = "ProMini3V328"
	ProMini3V168 Board = "ProMini3V168"
	Mega1280     Board = "Mega1280"
	Mega2560     Board = "Mega2560"
)

// Board variant directories under hardware/arduino/avr/variants.
const (
	VariantStandard          = "standard"
	VariantEightAnalogInputs = "eightanaloginputs"
	VariantMega              = "mega"
)

// BaseFlags are passed to the compiler for every board, known or not.
var BaseFlags = []string{"-Os", "-DARDUINO_ARCH_AVR"}

// BoardSpec describes the hardware of a board.
type BoardSpec struct {
	Board   Board
	MCU     string // value of -mmcu
	FCPU    string // value of -DF_CPU
	Define  string // ARDUINO_AVR_* board define
	Variant string // variants/ subdirectory
}

// Flags returns the board specific compiler flags in command line order.
func (s BoardSpec) Flags() []string {
	return []string{
		"-mmcu=" + s.MCU,
		"-DF_CPU=" + s.FCPU,
		"-D" + s.Define,
	}
}

var boards = []BoardSpec{
	{Board: Uno, MCU: "atmega328p", FCPU: "16000000L", Define: "ARDUINO_AVR_UNO", Variant: VariantStandard},
	{Board: ProMini5V328, MCU: "atmega328p", FCPU: "16000000L", Define: "ARDUINO_AVR_PRO", Variant: VariantEightAnalogInputs},
	{Board: ProMini5V168, MCU: "atmega168", FCPU: "16000000L", Define: "ARDUINO_AVR_PRO", Variant: VariantEightAnalogInputs},
	{Board: ProMini3V328, MCU: "atmega328p", FCPU: "8000000L", Define: "ARDUINO_AVR_PRO", Variant: VariantEightAnalogInputs},
	{Board: ProMini3V168, MCU: "atmega168", FCPU: "8000000L", Define: "ARDUINO_AVR_PRO", Variant: VariantEightAnalogInputs},
	{Board: Mega1280, MCU: "atmega1280", FCPU: "16000000L", Define: "ARDUINO_AVR_MEGA", Variant: VariantMega},
	{Board: Mega2560, MCU: "atmega2560", FCPU: "16000000L", Define: "ARDUINO_AVR_MEGA2560", Variant: VariantMega},
}

var boardIndex = func() map[Board]BoardSpec {
	m := make(map[Board]BoardSpec, len(boards))
	for _, b := range boards {
		m[b.Board] = b
	}
	return m
}()

// Boards returns every known board in table order.
func Boards() []BoardSpec {
	out := make([]BoardSpec, len(boards))
	copy(out, boards)
	return out
}

// Lookup returns the spec for a board name. Names are case sensitive.
func Lookup(name string) (BoardSpec, bool) {
	spec, ok := boardIndex[Board(name)]
	return spec, ok
}

// BoardNames returns the names of all known boards in table order.
func BoardNames() []string {
	names := make([]string, 0, len(boards))
	for _, b := range boards {
		names = append(names, string(b.Board))
	}
	return names
}

// FlagList returns the compiler flags for a board: the base flags followed,
// for a known board, by the MCU, F_CPU and board defines.
func FlagList(board string) []string {
	flags := append([]string(nil), BaseFlags...)
	if spec, ok := Lookup(board); ok {
		flags = append(flags, spec.Flags()...)
	}
	return flags
}

// Flags returns FlagList joined with single spaces.
//
//	Flags("Uno") == "-Os -DARDUINO_ARCH_AVR -mmcu=atmega328p -DF_CPU=16000000L -DARDUINO_AVR_UNO"
func Flags(board string) string {
	return strings.Join(FlagList(board), " ")
}
