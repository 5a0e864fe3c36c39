package cpu

// Flags is the CPU flag register. Only the upper nibble is defined;
// stores truncate the rest away.
type Flags uint8

// Flag register bits.
const (
	FlagZ Flags = 0b1000_0000 // zero
	FlagN Flags = 0b0100_0000 // subtract
	FlagH Flags = 0b0010_0000 // half-carry
	FlagC Flags = 0b0001_0000 // carry
)

const flagMask = FlagZ | FlagN | FlagH | FlagC

// Contains reports whether all bits of flag are set.
func (f Flags) Contains(flag Flags) bool {
	return f&flag == flag
}

// Set turns the given flag bits on.
func (f *Flags) Set(flag Flags) {
	*f |= flag & flagMask
}

// Clear turns the given flag bits off.
func (f *Flags) Clear(flag Flags) {
	*f &^= flag
}

// Toggle inverts the given flag bits.
func (f *Flags) Toggle(flag Flags) {
	*f = (*f ^ flag) & flagMask
}

// SetTo sets or clears the given flag bits from a boolean.
func (f *Flags) SetTo(flag Flags, value bool) {
	if value {
		f.Set(flag)
	} else {
		f.Clear(flag)
	}
}

// Registers is the LR35902 register file: eight 8-bit cells viewable as
// four 16-bit pairs, plus PC and SP.
type Registers struct {
	A uint8
	F Flags
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	SP uint16
	PC uint16
}

// Reset sets the post-boot register state, as if the boot ROM had just
// handed execution to the game.
func (r *Registers) Reset() {
	r.A = 0x01
	r.F = FlagZ | FlagH | FlagC
	r.B = 0x00
	r.C = 0x13
	r.D = 0x00
	r.E = 0xD8
	r.H = 0x01
	r.L = 0x4D
	r.SP = 0xFFFE
	r.PC = 0x0100
}

// AF returns the combined AF register pair.
func (r *Registers) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.F)
}

// BC returns the combined BC register pair.
func (r *Registers) BC() uint16 {
	return uint16(r.B)<<8 | uint16(r.C)
}

// DE returns the combined DE register pair.
func (r *Registers) DE() uint16 {
	return uint16(r.D)<<8 | uint16(r.E)
}

// HL returns the combined HL register pair.
func (r *Registers) HL() uint16 {
	return uint16(r.H)<<8 | uint16(r.L)
}

// SetAF stores a 16-bit value into AF, truncating the flag byte to its
// defined bits.
func (r *Registers) SetAF(value uint16) {
	r.A = uint8(value >> 8)
	r.F = Flags(value) & flagMask
}

// SetBC stores a 16-bit value into BC.
func (r *Registers) SetBC(value uint16) {
	r.B = uint8(value >> 8)
	r.C = uint8(value)
}

// SetDE stores a 16-bit value into DE.
func (r *Registers) SetDE(value uint16) {
	r.D = uint8(value >> 8)
	r.E = uint8(value)
}

// SetHL stores a 16-bit value into HL.
func (r *Registers) SetHL(value uint16) {
	r.H = uint8(value >> 8)
	r.L = uint8(value)
}
