// Package neserr defines the typed errors the core can surface, split into
// the fatal errors a running Cpu.Step can return and the loader errors
// Cartridge.Load can return.
package neserr

import "fmt"

// UnknownOpcode means the opcode table has no entry for the fetched byte.
// Should not occur given a complete 256-entry table; retained for
// defense-in-depth since the table is hand-authored.
type UnknownOpcode struct {
	Opcode uint8
}

func (e *UnknownOpcode) Error() string {
	return fmt.Sprintf("unknown opcode $%02X", e.Opcode)
}

// IllegalHalt is returned when a KIL/JAM/HLT opcode is executed.
type IllegalHalt struct {
	Opcode uint8
}

func (e *IllegalHalt) Error() string {
	return fmt.Sprintf("illegal halt opcode $%02X", e.Opcode)
}

// ErrWriteOnly is the sentinel a Ppu register read returns for a
// write-only register; the bus wraps it into a WriteOnlyRead carrying the
// actual CPU-visible address.
var ErrWriteOnly = fmt.Errorf("register is write-only")

// WriteOnlyRead is returned when the CPU reads a write-only PPU register.
type WriteOnlyRead struct {
	Addr uint16
}

func (e *WriteOnlyRead) Error() string {
	return fmt.Sprintf("read of write-only PPU register at $%04X", e.Addr)
}

func (e *WriteOnlyRead) Unwrap() error { return ErrWriteOnly }

// RomWrite is returned when the CPU writes to the PRG ROM window without
// the test-only allow_rom_writes escape hatch set.
type RomWrite struct {
	Addr uint16
}

func (e *RomWrite) Error() string {
	return fmt.Sprintf("write to PRG ROM at $%04X", e.Addr)
}

// PpuIllegalRegion is returned by a strict-mode PPU DATA access into the
// undefined $3000-$3EFF window.
type PpuIllegalRegion struct {
	Addr uint16
}

func (e *PpuIllegalRegion) Error() string {
	return fmt.Sprintf("PPU access to undefined region $%04X", e.Addr)
}

// ErrBadMagic is returned when an iNES image lacks the "NES\x1A" signature.
var ErrBadMagic = fmt.Errorf("bad iNES magic")

// UnsupportedFormat is returned for recognized-but-unhandled ROM formats,
// e.g. NES 2.0.
type UnsupportedFormat struct {
	Format string
}

func (e *UnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported ROM format: %s", e.Format)
}

// UnsupportedMapper is returned when the header names a mapper other than 0.
type UnsupportedMapper struct {
	Mapper uint8
}

func (e *UnsupportedMapper) Error() string {
	return fmt.Sprintf("unsupported mapper %d", e.Mapper)
}

// ErrTruncated is returned when the image ends before the header promises.
var ErrTruncated = fmt.Errorf("truncated iNES image")
