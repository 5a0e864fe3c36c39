// Package joypad models the Game Boy's single joypad port at 0xFF00.
package joypad

import "fmt"

const (
	lowNibbleMask = 0x0F
	columnMask    = 0x30

	// ColumnButtons selects the A/B/Select/Start keys (P15 low).
	ColumnButtons = 0x10
	// ColumnDirections selects the d-pad keys (P14 low).
	ColumnDirections = 0x20
)

// Joypad holds the eight button latches and the column selection written
// by the CPU. The host sets the booleans; the CPU sees a bit-inverted
// nibble for whichever column is selected.
type Joypad struct {
	selectedColumn uint8

	A      bool
	B      bool
	Start  bool
	Select bool
	Right  bool
	Left   bool
	Up     bool
	Down   bool
}

// New returns a Joypad with no column selected and all buttons released.
func New() *Joypad {
	return &Joypad{}
}

// directionBits builds the d-pad nibble: 0 = pressed.
func (j *Joypad) directionBits() uint8 {
	bits := uint8(lowNibbleMask)
	if j.Down {
		bits &= 0b0111
	}
	if j.Up {
		bits &= 0b1011
	}
	if j.Left {
		bits &= 0b1101
	}
	if j.Right {
		bits &= 0b1110
	}
	return bits
}

// buttonBits builds the action-key nibble: 0 = pressed.
func (j *Joypad) buttonBits() uint8 {
	bits := uint8(lowNibbleMask)
	if j.Start {
		bits &= 0b0111
	}
	if j.Select {
		bits &= 0b1011
	}
	if j.B {
		bits &= 0b1101
	}
	if j.A {
		bits &= 0b1110
	}
	return bits
}

// Read8 returns the joypad register. Bits 7-6 always read 1, bits 5-4
// echo the selected column, and the low nibble reflects the selected
// keys. With neither column selected the low nibble reads all-released.
func (j *Joypad) Read8(addr uint16) uint8 {
	if addr != 0xFF00 {
		panic(fmt.Sprintf("attempted to access [RD] joypad from an invalid address: 0x%04X", addr))
	}

	switch j.selectedColumn {
	case ColumnButtons:
		return 0xC0 | j.selectedColumn | j.buttonBits()
	case ColumnDirections:
		return 0xC0 | j.selectedColumn | j.directionBits()
	default:
		return 0xC0 | j.selectedColumn | lowNibbleMask
	}
}

// Write8 stores the column selection; only bits 5-4 are retained.
func (j *Joypad) Write8(addr uint16, value uint8) {
	if addr != 0xFF00 {
		panic(fmt.Sprintf("attempted to access [WR] joypad from an invalid address: 0x%04X", addr))
	}
	j.selectedColumn = value & columnMask
}
