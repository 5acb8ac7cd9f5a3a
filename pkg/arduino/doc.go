// Package arduino maps Arduino AVR boards and bundled core libraries to the
// compiler flags and include directories avr-gcc needs to check a sketch.
//
// The tables are fixed by the board hardware and the layout of an Arduino
// installation:
//
//	{root}/hardware/arduino/avr/cores/arduino
//	{root}/hardware/arduino/avr/variants/<variant>
//	{root}/hardware/arduino/avr/libraries/<lib>/src
//
// Unknown boards and libraries are not errors; they simply contribute
// nothing beyond the unconditional flags and the core include directory.
package arduino
