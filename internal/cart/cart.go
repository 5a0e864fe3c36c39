// Package cart implements Game Boy cartridge header parsing and the
// memory bank controller (MBC) address mapping.
package cart

import (
	"errors"
	"fmt"
	"strings"
)

// Header field offsets within the ROM image.
const (
	titleOffset = 0x0134
	titleLength = 0x0F

	cartridgeTypeOffset  = 0x0147
	romSizeOffset        = 0x0148
	ramSizeOffset        = 0x0149
	headerChecksumOffset = 0x014D

	headerEnd = 0x0150
)

// ErrROMTooSmall indicates the ROM data cannot contain a full cartridge header.
var ErrROMTooSmall = errors.New("ROM too small: header requires at least 336 bytes (0x0150)")

// Cart represents a loaded cartridge: the parsed header fields plus the
// MBC that maps bus addresses onto the ROM/RAM bytes.
type Cart struct {
	// Title is the game title from the header, trimmed of NUL padding.
	Title string

	// Type is the cartridge type byte (0x0147).
	Type uint8

	// ROMSize is the declared ROM size byte (0x0148).
	ROMSize uint8

	// RAMSize is the declared RAM size byte (0x0149).
	RAMSize uint8

	// ValidChecksum reports whether the header checksum matched.
	ValidChecksum bool

	mbc MBC
}

// New parses the header of the given ROM image and selects an MBC for it.
func New(rom []byte) (*Cart, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: got %d bytes", ErrROMTooSmall, len(rom))
	}

	cartType := rom[cartridgeTypeOffset]

	mbc, err := newMBC(rom, cartType)
	if err != nil {
		return nil, err
	}

	return &Cart{
		Title:         parseTitle(rom),
		Type:          cartType,
		ROMSize:       rom[romSizeOffset],
		RAMSize:       rom[ramSizeOffset],
		ValidChecksum: validateChecksum(rom),
		mbc:           mbc,
	}, nil
}

// Read8 reads a byte from the cartridge address space via the MBC.
func (c *Cart) Read8(addr uint16) uint8 {
	return c.mbc.Read(addr)
}

// Write8 writes a byte to the cartridge address space via the MBC.
func (c *Cart) Write8(addr uint16, value uint8) {
	c.mbc.Write(addr, value)
}

// parseTitle extracts the title bytes, replacing any invalid UTF-8 and
// stripping NUL padding.
func parseTitle(rom []byte) string {
	title := strings.ToValidUTF8(string(rom[titleOffset:titleOffset+titleLength]), "�")
	return strings.Trim(title, "\x00")
}

// validateChecksum recomputes the header checksum over 0x0134-0x014C and
// compares it with the stored byte at 0x014D.
func validateChecksum(rom []byte) bool {
	checksum := uint8(0)
	for _, b := range rom[titleOffset:headerChecksumOffset] {
		checksum = checksum - b - 1
	}
	return checksum == rom[headerChecksumOffset]
}
