// Package cartridge implements iNES ROM loading and parsing for NES
// cartridges. Only mapper 0 (NROM) is supported; anything else fails at
// load time.
package cartridge

import (
	"fmt"

	"github.com/claude/gones6502/internal/neserr"
)

// Mirroring is the cartridge's nametable mirroring mode, selected by
// flags6/flags7 of the iNES header.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

const (
	magicLen    = 4
	headerLen   = 16
	trainerLen  = 512
	prgUnit     = 16 * 1024
	chrUnit     = 8 * 1024
	sramSize    = 0x2000
	nes2Flags7  = 0x0C
	nes2Pattern = 0x08
)

var magic = [magicLen]byte{0x4E, 0x45, 0x53, 0x1A} // "NES\x1A"

// Cartridge holds the immutable ROM images and metadata parsed from an
// iNES file, plus mutable cartridge-resident SRAM.
type Cartridge struct {
	prgROM    []uint8
	chrROM    []uint8
	mapper    uint8
	mirroring Mirroring
	hasChrRAM bool
	sram      [sramSize]uint8
}

// Load parses an iNES image. Only mapper 0 is accepted; NES 2.0 images and
// anything with a bad magic number or a truncated body fail.
func Load(data []byte) (*Cartridge, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("parsing iNES header: %w", neserr.ErrTruncated)
	}
	if !equalMagic(data[:magicLen]) {
		return nil, fmt.Errorf("parsing iNES header: %w", neserr.ErrBadMagic)
	}

	prgSize := int(data[4]) * prgUnit
	chrSize := int(data[5]) * chrUnit
	flags6 := data[6]
	flags7 := data[7]

	if flags7&nes2Flags7 == nes2Pattern {
		return nil, fmt.Errorf("parsing iNES header: %w", &neserr.UnsupportedFormat{Format: "NES2.0"})
	}

	mapperID := (flags6 >> 4) | (flags7 & 0xF0)
	if mapperID != 0 {
		return nil, fmt.Errorf("parsing iNES header: %w", &neserr.UnsupportedMapper{Mapper: mapperID})
	}

	offset := headerLen
	if flags6&0x04 != 0 {
		offset += trainerLen
	}

	var mirror Mirroring
	switch {
	case flags6&0x08 != 0:
		mirror = FourScreen
	case flags6&0x01 != 0:
		mirror = Vertical
	default:
		mirror = Horizontal
	}

	if len(data) < offset+prgSize {
		return nil, fmt.Errorf("reading PRG ROM: %w", neserr.ErrTruncated)
	}
	prg := make([]uint8, prgSize)
	copy(prg, data[offset:offset+prgSize])
	offset += prgSize

	cart := &Cartridge{
		prgROM:    prg,
		mapper:    mapperID,
		mirroring: mirror,
	}

	if chrSize == 0 {
		cart.chrROM = make([]uint8, chrUnit)
		cart.hasChrRAM = true
		return cart, nil
	}

	if len(data) < offset+chrSize {
		return nil, fmt.Errorf("reading CHR ROM: %w", neserr.ErrTruncated)
	}
	chr := make([]uint8, chrSize)
	copy(chr, data[offset:offset+chrSize])
	cart.chrROM = chr

	return cart, nil
}

func equalMagic(b []byte) bool {
	for i := range magic {
		if b[i] != magic[i] {
			return false
		}
	}
	return true
}

// PrgSize reports the length of the PRG ROM in bytes (16 KiB or 32 KiB for
// mapper 0).
func (c *Cartridge) PrgSize() int { return len(c.prgROM) }

// ChrROM exposes the raw CHR image (ROM or a zeroed CHR-RAM buffer) for
// components that need direct pattern-table access, e.g. internal/chrview.
func (c *Cartridge) ChrROM() []uint8 { return c.chrROM }

// Mirroring reports the cartridge's nametable mirroring mode.
func (c *Cartridge) Mirroring() Mirroring { return c.mirroring }

// Mapper reports the iNES mapper number (always 0, since Load rejects
// anything else).
func (c *Cartridge) Mapper() uint8 { return c.mapper }

// HasChrRAM reports whether CHR is writable RAM (header CHR size was 0).
func (c *Cartridge) HasChrRAM() bool { return c.hasChrRAM }

// ReadPRG reads a CPU address already masked into the PRG window
// (0x0000-0x7FFF relative to the window base), mirroring 16 KiB images to
// fill the 32 KiB space.
func (c *Cartridge) ReadPRG(offset uint16) uint8 {
	if len(c.prgROM) == prgUnit {
		offset &= prgUnit - 1
	}
	if int(offset) >= len(c.prgROM) {
		return 0
	}
	return c.prgROM[offset]
}

// ReadSRAM reads cartridge-resident RAM at 0x6000-0x7FFF.
func (c *Cartridge) ReadSRAM(offset uint16) uint8 {
	return c.sram[offset%sramSize]
}

// WriteSRAM writes cartridge-resident RAM at 0x6000-0x7FFF.
func (c *Cartridge) WriteSRAM(offset uint16, value uint8) {
	c.sram[offset%sramSize] = value
}

// ReadCHR reads an 0x0000-0x1FFF pattern-table address.
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	if int(addr) < len(c.chrROM) {
		return c.chrROM[addr]
	}
	return 0
}

// WriteCHR writes to CHR RAM; discarded (with the caller expected to log)
// when the cartridge has CHR ROM rather than RAM.
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	if !c.hasChrRAM {
		return
	}
	if int(addr) < len(c.chrROM) {
		c.chrROM[addr] = value
	}
}
