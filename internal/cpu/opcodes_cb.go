package cpu

// executeCB decodes and runs one CB-prefixed opcode. The page is
// regular: bits 7-6 select the operation family, bits 5-3 the rotate
// kind or bit index, bits 2-0 the operand register ((HL) when 6).
func (c *CPU) executeCB(opcode uint8) uint8 {
	operandIsHL := opcode&0x07 == 6

	readOperand := func() uint8 {
		if operandIsHL {
			return c.Memory.Read8(c.Registers.HL())
		}
		return *c.operandRegister(opcode)
	}

	writeOperand := func(value uint8) {
		if operandIsHL {
			c.Memory.Write8(c.Registers.HL(), value)
		} else {
			*c.operandRegister(opcode) = value
		}
	}

	operation := opcode >> 6
	bitIndex := (opcode >> 3) & 0x07

	cycles := uint8(8)
	if operandIsHL {
		if operation == 1 { // BIT only reads
			cycles = 12
		} else {
			cycles = 16
		}
	}

	switch operation {
	case 0: // rotates, shifts, swap
		value := readOperand()
		var result uint8

		switch bitIndex {
		case 0: // RLC
			result = c.rlc(value)
		case 1: // RRC
			result = c.rrc(value)
		case 2: // RL
			result = c.rl(value)
		case 3: // RR
			result = c.rr(value)
		case 4: // SLA
			result = c.sla(value)
		case 5: // SRA
			result = c.sra(value)
		case 6: // SWAP
			result = c.swap(value)
		case 7: // SRL
			result = c.srl(value)
		}

		writeOperand(result)

	case 1: // BIT n, r
		c.bit(readOperand(), bitIndex)

	case 2: // RES n, r
		writeOperand(readOperand() &^ (1 << bitIndex))

	case 3: // SET n, r
		writeOperand(readOperand() | 1<<bitIndex)
	}

	return cycles
}

// operandRegister maps the low three opcode bits to an 8-bit register.
// The (HL) encoding (6) never reaches here.
func (c *CPU) operandRegister(opcode uint8) *uint8 {
	switch opcode & 0x07 {
	case 0:
		return &c.Registers.B
	case 1:
		return &c.Registers.C
	case 2:
		return &c.Registers.D
	case 3:
		return &c.Registers.E
	case 4:
		return &c.Registers.H
	case 5:
		return &c.Registers.L
	default:
		return &c.Registers.A
	}
}
