package ppu

import "testing"

// identityPalette maps each colour index to itself.
const identityPalette = 0b11100100

// solidTile fills tile data at the given VRAM offset with a single
// colour (0-3) across all 8 rows.
func solidTile(p *PPU, tileAddr uint16, colour uint8) {
	var low, high uint8
	if colour&0x01 != 0 {
		low = 0xFF
	}
	if colour&0x02 != 0 {
		high = 0xFF
	}
	for row := uint16(0); row < 8; row++ {
		p.vram[tileAddr+row*2] = low
		p.vram[tileAddr+row*2+1] = high
	}
}

func TestRenderBackground(t *testing.T) {
	p := New()
	p.control = ControlDisplayEnable | ControlBGDisplay | ControlBGWinTileSet
	p.bgPalette = identityPalette
	p.ly = 0

	// Tile 1 is solid colour 2; map cell (0,0) points at it.
	solidTile(p, 16, 2)
	p.vram[0x1800] = 1

	p.renderScanline()

	// The first 8 pixels come from tile 1, the rest from tile 0 (colour 0).
	for x := 0; x < 8; x++ {
		if p.framebuffer[x] != 2 {
			t.Fatalf("pixel %d = %d, want 2", x, p.framebuffer[x])
		}
	}
	if p.framebuffer[8] != 0 {
		t.Errorf("pixel 8 = %d, want 0", p.framebuffer[8])
	}
}

func TestRenderBackgroundScrolling(t *testing.T) {
	p := New()
	p.control = ControlDisplayEnable | ControlBGDisplay | ControlBGWinTileSet
	p.bgPalette = identityPalette
	p.ly = 0
	p.scrollX = 4
	p.scrollY = 8

	// With scrollY=8 row 0 samples map row 1; put a solid tile there.
	solidTile(p, 16, 3)
	p.vram[0x1800+32] = 1

	p.renderScanline()

	// scrollX=4 shifts the tile left: only its last 4 pixels are visible.
	for x := 0; x < 4; x++ {
		if p.framebuffer[x] != 3 {
			t.Fatalf("pixel %d = %d, want 3", x, p.framebuffer[x])
		}
	}
	if p.framebuffer[4] != 0 {
		t.Errorf("pixel 4 = %d, want 0", p.framebuffer[4])
	}
}

func TestSignedTileAddressing(t *testing.T) {
	p := New()
	// BG_WIN_TILE_SET clear: indices are signed offsets from 0x9000.
	p.control = ControlDisplayEnable | ControlBGDisplay
	p.bgPalette = identityPalette
	p.ly = 0

	// Index 0 resolves to VRAM offset 0x1000 (bus 0x9000).
	solidTile(p, 0x1000, 1)

	p.renderScanline()

	if p.framebuffer[0] != 1 {
		t.Errorf("pixel 0 = %d, want 1 from tile at 0x9000", p.framebuffer[0])
	}

	// Index 0x80 (-128) resolves to VRAM offset 0x0800 (bus 0x8800).
	solidTile(p, 0x1000, 0)
	solidTile(p, 0x0800, 2)
	for i := range p.vram[0x1800:0x1C00] {
		p.vram[0x1800+i] = 0x80
	}

	p.renderScanline()

	if p.framebuffer[0] != 2 {
		t.Errorf("pixel 0 = %d, want 2 from tile at 0x8800", p.framebuffer[0])
	}
}

func TestBackgroundPaletteTranslation(t *testing.T) {
	p := New()
	p.control = ControlDisplayEnable | ControlBGDisplay | ControlBGWinTileSet
	// Map colour 0 to shade 3 (inverted-ish palette).
	p.bgPalette = 0b00_01_10_11
	p.ly = 0

	p.renderScanline()

	if p.framebuffer[0] != 3 {
		t.Errorf("pixel 0 = %d, want 3 via palette", p.framebuffer[0])
	}
}

func TestRenderWindow(t *testing.T) {
	p := New()
	p.control = ControlDisplayEnable | ControlBGDisplay | ControlBGWinTileSet |
		ControlWindowDisplay | ControlWindowTileMap
	p.bgPalette = identityPalette
	p.ly = 0
	p.windowY = 0
	p.windowX = 87 // window starts at screen x=80

	// Window map (0x1C00) shows tile 1 everywhere.
	solidTile(p, 16, 1)
	for i := range p.vram[0x1C00:0x2000] {
		p.vram[0x1C00+i] = 1
	}

	p.renderScanline()

	if p.framebuffer[79] != 0 {
		t.Errorf("pixel 79 = %d, want 0 (left of window)", p.framebuffer[79])
	}
	for x := 80; x < ScreenWidth; x++ {
		if p.framebuffer[x] != 1 {
			t.Fatalf("pixel %d = %d, want 1 (window)", x, p.framebuffer[x])
		}
	}
}

func TestWindowBelowWYIsSkipped(t *testing.T) {
	p := New()
	p.control = ControlDisplayEnable | ControlBGDisplay | ControlBGWinTileSet | ControlWindowDisplay
	p.bgPalette = identityPalette
	p.ly = 0
	p.windowY = 40

	solidTile(p, 16, 1)
	for i := range p.vram[0x1800:0x1C00] {
		p.vram[0x1800+i] = 0
	}

	p.renderScanline()

	for x := 0; x < ScreenWidth; x++ {
		if p.framebuffer[x] != 0 {
			t.Fatalf("pixel %d = %d, want 0 (window not visible yet)", x, p.framebuffer[x])
		}
	}
}

func TestRenderSprites(t *testing.T) {
	setup := func() *PPU {
		p := New()
		p.control = ControlDisplayEnable | ControlOBJDisplay
		p.bgPalette = identityPalette
		p.obj0Palette = identityPalette
		p.obj1Palette = identityPalette
		p.ly = 0
		return p
	}

	t.Run("basic placement", func(t *testing.T) {
		p := setup()
		solidTile(p, 16, 1)
		// Sprite 0 at screen (0, 0) with tile 1.
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = 0

		p.renderScanline()

		for x := 0; x < 8; x++ {
			if p.framebuffer[x] != 1 {
				t.Fatalf("pixel %d = %d, want 1", x, p.framebuffer[x])
			}
		}
		if p.framebuffer[8] != 0 {
			t.Errorf("pixel 8 = %d, want 0", p.framebuffer[8])
		}
	})

	t.Run("colour zero is transparent", func(t *testing.T) {
		p := setup()
		p.control |= ControlBGDisplay | ControlBGWinTileSet
		// Background paints colour 3 from tile 0; sprite tile 1 is colour 0.
		solidTile(p, 0, 3)
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = 0

		p.renderScanline()

		if p.framebuffer[0] != 3 {
			t.Errorf("pixel 0 = %d, want background 3", p.framebuffer[0])
		}
	})

	t.Run("behind background priority", func(t *testing.T) {
		p := setup()
		p.control |= ControlBGDisplay | ControlBGWinTileSet
		solidTile(p, 0, 2)  // background tile colour 2
		solidTile(p, 16, 1) // sprite tile colour 1
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = spriteAttrPriority

		p.renderScanline()

		// Background already holds a non-zero shade, so the sprite hides.
		if p.framebuffer[0] != 2 {
			t.Errorf("pixel 0 = %d, want background 2", p.framebuffer[0])
		}
	})

	t.Run("x flip", func(t *testing.T) {
		p := setup()
		// Tile 1 row 0: leftmost pixel colour 1, rest colour 0.
		p.vram[16] = 0x80
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = spriteAttrXFlip

		p.renderScanline()

		if p.framebuffer[0] != 0 || p.framebuffer[7] != 1 {
			t.Errorf("pixels 0,7 = %d,%d, want 0,1 (flipped)", p.framebuffer[0], p.framebuffer[7])
		}
	})

	t.Run("y flip", func(t *testing.T) {
		p := setup()
		// Tile 1 row 7 carries colour 1; a flipped sprite shows it on row 0.
		p.vram[16+14] = 0xFF
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = spriteAttrYFlip

		p.renderScanline()

		if p.framebuffer[0] != 1 {
			t.Errorf("pixel 0 = %d, want 1 (y-flipped)", p.framebuffer[0])
		}
	})

	t.Run("tall sprites pair tiles", func(t *testing.T) {
		p := setup()
		p.control |= ControlOBJSize
		p.ly = 8
		// Lower half comes from tile 3 (index 2|1); paint its row 0.
		solidTile(p, 3*16, 2)
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 2
		p.oam[3] = 0

		p.renderScanline()

		offset := 8 * ScreenWidth
		if p.framebuffer[offset] != 2 {
			t.Errorf("pixel (0,8) = %d, want 2 from second tile", p.framebuffer[offset])
		}
	})

	t.Run("object palette selection", func(t *testing.T) {
		p := setup()
		p.obj1Palette = 0b00_00_11_00 // colour 1 -> shade 3
		solidTile(p, 16, 1)
		p.oam[0] = 16
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = spriteAttrPalette

		p.renderScanline()

		if p.framebuffer[0] != 3 {
			t.Errorf("pixel 0 = %d, want 3 via OBP1", p.framebuffer[0])
		}
	})

	t.Run("off-scanline sprite ignored", func(t *testing.T) {
		p := setup()
		solidTile(p, 16, 1)
		p.oam[0] = 40 // line 24, not on LY=0
		p.oam[1] = 8
		p.oam[2] = 1
		p.oam[3] = 0

		p.renderScanline()

		if p.framebuffer[0] != 0 {
			t.Errorf("pixel 0 = %d, want 0", p.framebuffer[0])
		}
	})
}

func TestBackgroundDisabledClearsScanline(t *testing.T) {
	p := New()
	p.control = ControlDisplayEnable
	p.bgPalette = identityPalette
	p.ly = 3

	offset := 3 * ScreenWidth
	for x := 0; x < ScreenWidth; x++ {
		p.framebuffer[offset+x] = 3
	}

	p.renderScanline()

	for x := 0; x < ScreenWidth; x++ {
		if p.framebuffer[offset+x] != 0 {
			t.Fatalf("pixel %d = %d, want 0", x, p.framebuffer[offset+x])
		}
	}
}
