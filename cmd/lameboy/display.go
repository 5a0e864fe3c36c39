package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Palmr/lameboy-sub000/internal/emulator"
	"github.com/Palmr/lameboy-sub000/internal/ppu"
)

// dmgPalette maps the PPU's four shade indices to the classic Game Boy
// green tones.
var dmgPalette = [4]color.RGBA{
	{0xE0, 0xF8, 0xD0, 0xFF}, // lightest
	{0x88, 0xC0, 0x70, 0xFF},
	{0x34, 0x68, 0x56, 0xFF},
	{0x08, 0x18, 0x20, 0xFF}, // darkest
}

// Display implements the ebiten game interface around the emulator.
type Display struct {
	emulator *emulator.Emulator
	screen   *ebiten.Image
	pixels   []byte // pre-allocated RGBA buffer, reused every frame
}

// NewDisplay wraps an emulator in a window-ready display.
func NewDisplay(emu *emulator.Emulator) *Display {
	return &Display{
		emulator: emu,
		screen:   ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
		pixels:   make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4),
	}
}

// Update runs one emulated frame. Called 60 times per second by ebiten.
func (d *Display) Update() error {
	d.handleInput()
	d.emulator.RunFrame()
	return nil
}

// handleInput latches keyboard state into the joypad booleans.
func (d *Display) handleInput() {
	j := d.emulator.Joypad

	j.Up = ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	j.Down = ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	j.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	j.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	j.A = ebiten.IsKeyPressed(ebiten.KeyZ)
	j.B = ebiten.IsKeyPressed(ebiten.KeyX)
	j.Start = ebiten.IsKeyPressed(ebiten.KeyEnter)
	j.Select = ebiten.IsKeyPressed(ebiten.KeyShift)
}

// Draw maps the palette-index framebuffer to RGBA and blits it.
func (d *Display) Draw(screen *ebiten.Image) {
	framebuffer := d.emulator.PPU.Framebuffer()

	for i, shade := range framebuffer {
		c := dmgPalette[shade&0x03]

		offset := i * 4
		d.pixels[offset] = c.R
		d.pixels[offset+1] = c.G
		d.pixels[offset+2] = c.B
		d.pixels[offset+3] = c.A
	}

	d.screen.WritePixels(d.pixels)
	screen.DrawImage(d.screen, nil)
}

// Layout returns the native screen size; ebiten scales it to the window.
func (d *Display) Layout(_, _ int) (int, int) {
	return ppu.ScreenWidth, ppu.ScreenHeight
}
