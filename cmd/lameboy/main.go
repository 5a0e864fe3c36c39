// Package main provides the lameboy CLI application.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Palmr/lameboy-sub000/internal/cart"
	"github.com/Palmr/lameboy-sub000/internal/dis"
	"github.com/Palmr/lameboy-sub000/internal/emulator"
	"github.com/Palmr/lameboy-sub000/internal/ppu"
)

// ErrInvalidScale indicates the scale factor is out of valid range.
var ErrInvalidScale = errors.New("scale must be between 1 and 10")

// CLI is the command-line interface structure.
type CLI struct {
	Info  InfoCmd  `cmd:"" help:"Display cartridge information."`
	Run   RunCmd   `cmd:"" help:"Run a Game Boy ROM."`
	Debug DebugCmd `cmd:"" help:"Run a ROM headless until a breakpoint fires."`
}

// InfoCmd displays cartridge header information.
type InfoCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to ROM file."`
}

// Run executes the info command.
func (c *InfoCmd) Run() error {
	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	loaded, err := cart.New(data)
	if err != nil {
		return fmt.Errorf("failed to load cartridge: %w", err)
	}

	fmt.Printf("ROM Information:\n")
	fmt.Printf("  Title:          %s\n", loaded.Title)
	fmt.Printf("  Cartridge Type: 0x%02X\n", loaded.Type)
	fmt.Printf("  ROM Size Byte:  0x%02X\n", loaded.ROMSize)
	fmt.Printf("  RAM Size Byte:  0x%02X\n", loaded.RAMSize)
	fmt.Printf("  Checksum Valid: %v\n", loaded.ValidChecksum)

	return nil
}

// RunCmd runs a Game Boy ROM in a window.
type RunCmd struct {
	ROM   string `arg:"" type:"existingfile" help:"Path to ROM file."`
	Scale int    `help:"Display scale factor (1-10)." default:"3"`
}

// Run executes the run command.
func (c *RunCmd) Run() error {
	if c.Scale < 1 || c.Scale > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidScale, c.Scale)
	}

	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	emu, err := emulator.New(data)
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}

	display := NewDisplay(emu)

	ebiten.SetWindowTitle(fmt.Sprintf("lameboy - %s", emu.Cart.Title))
	ebiten.SetWindowSize(ppu.ScreenWidth*c.Scale, ppu.ScreenHeight*c.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60) // close enough to the hardware's ~59.73 Hz

	if err := ebiten.RunGame(display); err != nil {
		return fmt.Errorf("emulator error: %w", err)
	}

	return nil
}

// DebugCmd runs frames headless and reports machine state when a
// breakpoint pauses execution.
type DebugCmd struct {
	ROM       string   `arg:"" type:"existingfile" help:"Path to ROM file."`
	Break     []string `short:"b" help:"PC breakpoints (hex, e.g. 0x0150)."`
	MemBreak  []string `short:"m" help:"Memory breakpoints (hex addresses)."`
	MaxFrames int      `default:"600" help:"Give up after this many frames."`
	History   int      `default:"8" help:"Recent PC values to print on break."`
}

// Run executes the debug command.
func (c *DebugCmd) Run() error {
	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	emu, err := emulator.New(data)
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}

	if emu.Breakpoints, err = parseAddresses(c.Break); err != nil {
		return err
	}
	if emu.MemoryBreakpoints, err = parseAddresses(c.MemBreak); err != nil {
		return err
	}

	for frame := 0; frame < c.MaxFrames; frame++ {
		if emu.RunFrame() {
			continue
		}

		fmt.Printf("breakpoint hit during frame %d\n\n", frame)
		printMachineState(emu, c.History)
		return nil
	}

	fmt.Printf("no breakpoint hit after %d frames\n", c.MaxFrames)
	return nil
}

// parseAddresses converts hex address strings into bus addresses.
func parseAddresses(values []string) ([]uint16, error) {
	addrs := make([]uint16, 0, len(values))
	for _, value := range values {
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", value, err)
		}
		addrs = append(addrs, uint16(addr))
	}
	return addrs, nil
}

// printMachineState dumps registers, recent PCs, and a disassembly of
// the eight instructions starting at the current PC.
func printMachineState(emu *emulator.Emulator, historyLen int) {
	r := &emu.CPU.Registers
	fmt.Printf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X\n",
		r.A, uint8(r.F), r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)

	history := emu.CPU.PCHistory()
	if historyLen > 0 && historyLen < len(history) {
		history = history[len(history)-historyLen:]
	}
	fmt.Printf("recent PCs: ")
	for _, pc := range history {
		fmt.Printf("%04X ", pc)
	}
	fmt.Println()

	fmt.Println("disassembly:")
	addr := r.PC
	for i := 0; i < 8; i++ {
		fmt.Printf("  %s\n", dis.Disassemble(addr, emu.MMU))
		opcode := emu.MMU.Read8Safe(addr)
		length := dis.Decode(opcode).Length()
		if opcode == 0xCB {
			length = 2
		}
		addr += uint16(length)
	}
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("lameboy"),
		kong.Description("A Game Boy (DMG) emulator written in Go."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
