// Package emulator ties the CPU, MMU, PPU, joypad, and cartridge into a
// frame-stepped machine with PC and memory breakpoints.
package emulator

import (
	"fmt"
	"slices"

	"github.com/Palmr/lameboy-sub000/internal/cart"
	"github.com/Palmr/lameboy-sub000/internal/cpu"
	"github.com/Palmr/lameboy-sub000/internal/joypad"
	"github.com/Palmr/lameboy-sub000/internal/mmu"
	"github.com/Palmr/lameboy-sub000/internal/ppu"
)

// CyclesPerFrame is the number of CPU cycles in one emulated frame
// (154 scanlines of 456 cycles, ~59.7 Hz).
const CyclesPerFrame = 70224

// Emulator is the orchestration layer: it advances the CPU one
// instruction at a time, feeds the elapsed cycles to the PPU, and folds
// PPU interrupt bits into the IF register.
type Emulator struct {
	CPU    *cpu.CPU
	MMU    *mmu.MMU
	PPU    *ppu.PPU
	Joypad *joypad.Joypad
	Cart   *cart.Cart

	// Breakpoints lists PC values that pause RunFrame before executing.
	Breakpoints []uint16

	// MemoryBreakpoints lists bus addresses whose access pauses
	// RunFrame; they are pushed into the MMU each step.
	MemoryBreakpoints []uint16
}

// New builds a machine around the given ROM image and resets it to the
// post-boot state.
func New(rom []byte) (*Emulator, error) {
	c, err := cart.New(rom)
	if err != nil {
		return nil, fmt.Errorf("failed to load cartridge: %w", err)
	}

	p := ppu.New()
	j := joypad.New()
	m := mmu.New(c, p, j)

	e := &Emulator{
		CPU:    cpu.New(m),
		MMU:    m,
		PPU:    p,
		Joypad: j,
		Cart:   c,
	}
	e.Reset()

	return e, nil
}

// Reset restores the post-boot state of every component.
func (e *Emulator) Reset() {
	e.PPU.Reset()
	e.CPU.Reset()
	e.MMU.Reset()
}

// Step executes one instruction, advances the PPU by its duration, and
// ORs any PPU interrupt bits into the IF register. Returns the cycles
// consumed.
func (e *Emulator) Step() uint8 {
	duration := e.CPU.Cycle()

	intFlags := e.MMU.Read8(0xFF0F)
	ppuFlags := e.PPU.Cycle(duration)
	e.MMU.Write8(0xFF0F, intFlags|ppuFlags)

	return duration
}

// RunFrame advances the machine by one frame's worth of cycles. It
// returns false if a PC or memory breakpoint paused execution early;
// the caller decides whether to resume.
func (e *Emulator) RunFrame() bool {
	var clock uint32
	for clock < CyclesPerFrame {
		if slices.Contains(e.Breakpoints, e.CPU.Registers.PC) {
			return false
		}

		if e.MMU.BreakpointHit != 0 {
			e.MMU.BreakpointHit = 0
			return false
		}

		e.MMU.MemoryBreakpoints = e.MemoryBreakpoints

		clock += uint32(e.Step())
	}

	return true
}
