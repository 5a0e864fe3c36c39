package cart

import (
	"errors"
	"testing"
)

// buildROM creates a flat 32 KiB ROM image with the given cartridge type.
func buildROM(cartType uint8) []byte {
	rom := make([]byte, 0x8000)
	rom[cartridgeTypeOffset] = cartType
	return rom
}

func TestParseTitle(t *testing.T) {
	rom := buildROM(0x00)
	copy(rom[titleOffset:], "CART title\x00\x00\x00\x00\x00")

	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.Title != "CART title" {
		t.Errorf("Title = %q, want %q", c.Title, "CART title")
	}
}

func TestValidateChecksum(t *testing.T) {
	t.Run("all zero header is invalid", func(t *testing.T) {
		c, err := New(buildROM(0x00))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if c.ValidChecksum {
			t.Error("ValidChecksum = true, want false")
		}
	})

	t.Run("crafted header validates", func(t *testing.T) {
		rom := buildROM(0x00)
		header := []byte{
			0x43, 0x41, 0x52, 0x54, 0x20, 0x74, 0x69, 0x74, 0x6C, 0x65, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00,
		}
		copy(rom[titleOffset:headerChecksumOffset], header)
		rom[headerChecksumOffset] = 0x7A
		// The crafted header overwrote the type byte region with zeros,
		// so the cart is still flat ROM.

		c, err := New(rom)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if !c.ValidChecksum {
			t.Error("ValidChecksum = false, want true")
		}
		if c.Title != "CART title" {
			t.Errorf("Title = %q, want %q", c.Title, "CART title")
		}
	})
}

func TestHeaderFields(t *testing.T) {
	rom := buildROM(0x00)
	rom[romSizeOffset] = 0x00
	rom[ramSizeOffset] = 0x00

	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.Type != 0x00 {
		t.Errorf("Type = 0x%02X, want 0x00", c.Type)
	}
	if c.ROMSize != 0x00 {
		t.Errorf("ROMSize = 0x%02X, want 0x00", c.ROMSize)
	}
	if c.RAMSize != 0x00 {
		t.Errorf("RAMSize = 0x%02X, want 0x00", c.RAMSize)
	}
}

func TestROMTooSmall(t *testing.T) {
	_, err := New(make([]byte, 0x100))
	if !errors.Is(err, ErrROMTooSmall) {
		t.Errorf("New() error = %v, want ErrROMTooSmall", err)
	}
}

func TestUnsupportedMBCType(t *testing.T) {
	rom := buildROM(0xFF)

	_, err := New(rom)
	if !errors.Is(err, ErrUnsupportedMBC) {
		t.Fatalf("New() error = %v, want ErrUnsupportedMBC", err)
	}
	if got, want := err.Error(), "unsupported MBC type: 0xFF"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestNoMBCSizeMismatch(t *testing.T) {
	rom := make([]byte, 0x0150)
	rom[cartridgeTypeOffset] = 0x00

	_, err := New(rom)
	if err == nil {
		t.Fatal("New() error = nil, want size mismatch")
	}
	if got, want := err.Error(), "ROM defined no MBC: expected file size 32KB but got 336 bytes"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestNoMBCReadWrite(t *testing.T) {
	rom := buildROM(0x00)
	rom[0x0000] = 0x12
	rom[0x7FFF] = 0x34

	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := c.Read8(0x0000); got != 0x12 {
		t.Errorf("Read8(0x0000) = 0x%02X, want 0x12", got)
	}
	if got := c.Read8(0x7FFF); got != 0x34 {
		t.Errorf("Read8(0x7FFF) = 0x%02X, want 0x34", got)
	}

	// No RAM behind 0xA000-0xBFFF on a flat cart.
	if got := c.Read8(0xA000); got != 0xFF {
		t.Errorf("Read8(0xA000) = 0x%02X, want 0xFF", got)
	}

	// ROM writes are ignored.
	c.Write8(0x0000, 0xAB)
	if got := c.Read8(0x0000); got != 0x12 {
		t.Errorf("Read8(0x0000) after write = 0x%02X, want 0x12", got)
	}
}
