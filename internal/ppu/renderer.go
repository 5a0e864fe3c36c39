package ppu

// Sprite attribute flag bits (OAM byte 3).
const (
	spriteAttrPalette  = 1 << 4 // 0=OBP0, 1=OBP1
	spriteAttrXFlip    = 1 << 5
	spriteAttrYFlip    = 1 << 6
	spriteAttrPriority = 1 << 7 // 1=behind background colors 1-3
)

// renderScanline draws row LY of the frame into the framebuffer: the
// background layer first, the window over it, sprites last.
func (p *PPU) renderScanline() {
	if p.control&ControlBGDisplay != 0 {
		p.renderBackground()
	} else {
		p.clearScanline()
	}

	if p.control&ControlWindowDisplay != 0 {
		p.renderWindow()
	}

	if p.control&ControlOBJDisplay != 0 {
		p.renderSprites()
	}
}

// clearScanline fills row LY with shade 0.
func (p *PPU) clearScanline() {
	offset := int(p.ly) * ScreenWidth
	for x := 0; x < ScreenWidth; x++ {
		p.framebuffer[offset+x] = 0
	}
}

// renderBackground draws the scrolled background layer for row LY.
func (p *PPU) renderBackground() {
	tileMapBase := uint16(0x1800)
	if p.control&ControlBGTileMap != 0 {
		tileMapBase = 0x1C00
	}

	y := p.ly + p.scrollY
	mapRow := uint16(y>>3) & 0x1F
	tileY := uint16(y & 7)

	offset := int(p.ly) * ScreenWidth
	for x := 0; x < ScreenWidth; x++ {
		scrolledX := uint8(x) + p.scrollX
		mapCol := uint16(scrolledX>>3) & 0x1F
		tileX := uint16(scrolledX & 7)

		tileIndex := p.vram[tileMapBase+mapRow*32+mapCol]
		tileAddr := p.tileDataAddr(tileIndex)

		colour := p.tilePixel(tileAddr, tileX, tileY)
		p.framebuffer[offset+x] = applyPalette(colour, p.bgPalette)
	}
}

// renderWindow draws the window layer for row LY. The window is an
// unscrolled second background anchored at (WX-7, WY).
func (p *PPU) renderWindow() {
	if p.ly < p.windowY {
		return
	}

	tileMapBase := uint16(0x1800)
	if p.control&ControlWindowTileMap != 0 {
		tileMapBase = 0x1C00
	}

	windowY := p.ly - p.windowY
	mapRow := uint16(windowY>>3) & 0x1F
	tileY := uint16(windowY & 7)

	startX := int(p.windowX) - 7
	if startX < 0 {
		startX = 0
	}

	offset := int(p.ly) * ScreenWidth
	for x := startX; x < ScreenWidth; x++ {
		windowX := uint8(x - startX)
		mapCol := uint16(windowX>>3) & 0x1F
		tileX := uint16(windowX & 7)

		tileIndex := p.vram[tileMapBase+mapRow*32+mapCol]
		tileAddr := p.tileDataAddr(tileIndex)

		colour := p.tilePixel(tileAddr, tileX, tileY)
		p.framebuffer[offset+x] = applyPalette(colour, p.bgPalette)
	}
}

// renderSprites composites the sprite layer for row LY. All 40 OAM
// entries are walked in index order; colour 0 is transparent, and
// behind-background sprites only show through background shade 0.
func (p *PPU) renderSprites() {
	spriteHeight := uint8(8)
	if p.control&ControlOBJSize != 0 {
		spriteHeight = 16
	}

	// Background shade 0 after palette translation, used for the
	// behind-background priority test.
	bgShade0 := applyPalette(0, p.bgPalette)

	line := int(p.ly)
	offset := line * ScreenWidth

	for i := 0; i < 40; i++ {
		entry := i * 4
		spriteY := int(p.oam[entry]) - 16
		spriteX := int(p.oam[entry+1]) - 8
		tileIndex := p.oam[entry+2]
		attrs := p.oam[entry+3]

		if line < spriteY || line >= spriteY+int(spriteHeight) {
			continue
		}

		spriteLine := uint8(line - spriteY)
		if attrs&spriteAttrYFlip != 0 {
			spriteLine = spriteHeight - 1 - spriteLine
		}

		// Tall sprites pair tiles: bit 0 of the index is ignored and
		// the lower half comes from the next tile.
		if spriteHeight == 16 {
			tileIndex &= 0xFE
			if spriteLine >= 8 {
				tileIndex++
				spriteLine -= 8
			}
		}

		palette := p.obj0Palette
		if attrs&spriteAttrPalette != 0 {
			palette = p.obj1Palette
		}

		// Sprites always use unsigned 0x8000 tile addressing.
		tileAddr := uint16(tileIndex) * 16

		for x := 0; x < 8; x++ {
			pixelX := spriteX + x
			if pixelX < 0 || pixelX >= ScreenWidth {
				continue
			}

			tileX := uint16(x)
			if attrs&spriteAttrXFlip != 0 {
				tileX = uint16(7 - x)
			}

			colour := p.tilePixel(tileAddr, tileX, uint16(spriteLine))
			if colour == 0 {
				continue
			}

			if attrs&spriteAttrPriority != 0 && p.framebuffer[offset+pixelX] != bgShade0 {
				continue
			}

			p.framebuffer[offset+pixelX] = applyPalette(colour, palette)
		}
	}
}

// tileDataAddr resolves a background/window tile index to its VRAM
// offset, honoring the signed addressing mode: with BG_WIN_TILE_SET
// clear, indices are signed offsets from 0x9000.
func (p *PPU) tileDataAddr(tileIndex uint8) uint16 {
	if p.control&ControlBGWinTileSet != 0 {
		return uint16(tileIndex) * 16
	}
	return (uint16(tileIndex^0x80) + 0x80) * 16
}

// tilePixel extracts the 2-bit colour of pixel (x, y) from the 16-byte
// tile at tileAddr. Each tile row is a little-endian plane pair; bit 7
// is the leftmost pixel.
func (p *PPU) tilePixel(tileAddr, x, y uint16) uint8 {
	low := p.vram[tileAddr+y*2]
	high := p.vram[tileAddr+y*2+1]

	shift := 7 - x
	return ((low >> shift) & 1) | (((high >> shift) & 1) << 1)
}

// applyPalette translates a tile colour (0-3) through a packed palette
// byte into a display shade (0-3). Entry i occupies bits 2i and 2i+1.
func applyPalette(colour, palette uint8) uint8 {
	return (palette >> (colour * 2)) & 0x03
}
