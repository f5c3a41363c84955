// Package bus implements the NES CPU address bus: RAM mirroring, PPU
// register dispatch, OAM DMA, cartridge PRG routing, and the cycle counter
// that drives the PPU tick contract.
package bus

import (
	"errors"
	"fmt"

	"github.com/claude/gones6502/internal/cartridge"
	"github.com/claude/gones6502/internal/neserr"
	"github.com/claude/gones6502/internal/ppu"
)

const (
	ramSize       = 2048
	ramMirrorMask = 0x07FF

	ppuRegStart     = 0x2000
	ppuRegEnd       = 0x3FFF
	ppuRegMirror    = 0x2007
	oamDMARegister  = 0x4014
	apuIORegionEnd  = 0x4017
	cartExpansionLo = 0x4020
	prgWindowStart  = 0x8000

	oamPageSize      = 256
	oamDMABaseCycles = 513
	oamDMAOddPenalty = 1
)

// Bus owns CPU RAM, the PPU, and the cartridge's PRG window, and routes
// every CPU-visible address to the right backing store. It also owns the
// monotonic cycle counter the bus-PPU tick contract is built on.
type Bus struct {
	ram  [ramSize]uint8
	ppu  *ppu.Ppu
	cart *cartridge.Cartridge

	cycles uint64

	// AllowRomWrites is a test-only escape hatch: when set, writes to the
	// PRG window return no error instead of RomWrite. The written byte is
	// discarded; PRG contents never change.
	AllowRomWrites bool

	oddCycle bool
}

// New constructs a Bus for the given cartridge, owning a freshly
// constructed Ppu. strictPPU enables PpuIllegalRegion faults for the
// undefined $3000-$3EFF PPU window instead of treating it as a mirror.
func New(cart *cartridge.Cartridge, strictPPU bool) *Bus {
	return &Bus{
		ppu:  ppu.New(cart.ChrROM(), cart.Mirroring(), strictPPU),
		cart: cart,
	}
}

// Ppu exposes the owned Ppu instance, e.g. for the tracer or tests.
func (b *Bus) Ppu() *ppu.Ppu { return b.ppu }

// Cycles reports the bus's monotonic cycle counter.
func (b *Bus) Cycles() uint64 { return b.cycles }

// Read performs a CPU-visible memory read, decoding addr into the correct
// region. Returns a fatal error for reads of write-only PPU registers.
func (b *Bus) Read(addr uint16) (uint8, error) {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&ramMirrorMask], nil

	case addr >= ppuRegStart && addr <= ppuRegEnd:
		reg := int((addr & ppuRegMirror) - ppuRegStart)
		v, err := b.ppu.ReadRegister(reg)
		if errors.Is(err, neserr.ErrWriteOnly) {
			return 0, fmt.Errorf("bus read $%04X: %w", addr, &neserr.WriteOnlyRead{Addr: addr})
		}
		if err != nil {
			return 0, fmt.Errorf("bus read $%04X: %w", addr, err)
		}
		return v, nil

	case addr < cartExpansionLo:
		// APU/controller/OAM-DMA region: non-fatal, reads as 0.
		return 0, nil

	case addr < prgWindowStart:
		// Cartridge expansion / SRAM window.
		if addr >= 0x6000 {
			return b.cart.ReadSRAM(addr - 0x6000), nil
		}
		return 0, nil

	default:
		return b.cart.ReadPRG(addr & 0x7FFF), nil
	}
}

// ReadU16 reads a little-endian 16-bit value.
func (b *Bus) ReadU16(addr uint16) (uint16, error) {
	lo, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// MustRead performs a Read and returns 0 on error, for contexts (the
// tracer) that must never propagate a fatal error.
func (b *Bus) MustRead(addr uint16) uint8 {
	v, err := b.Read(addr)
	if err != nil {
		return 0
	}
	return v
}

// Write performs a CPU-visible memory write, decoding addr into the
// correct region. Returns a fatal error for PRG-ROM writes unless
// AllowRomWrites is set.
func (b *Bus) Write(addr uint16, value uint8) error {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&ramMirrorMask] = value
		return nil

	case addr >= ppuRegStart && addr <= ppuRegEnd:
		reg := int((addr & ppuRegMirror) - ppuRegStart)
		return b.ppu.WriteRegister(reg, value)

	case addr == oamDMARegister:
		b.doOAMDMA(value)
		return nil

	case addr < cartExpansionLo:
		// APU/controller region: non-fatal, writes ignored.
		return nil

	case addr < prgWindowStart:
		if addr >= 0x6000 {
			b.cart.WriteSRAM(addr-0x6000, value)
		}
		return nil

	default:
		if !b.AllowRomWrites {
			return fmt.Errorf("bus write $%04X: %w", addr, &neserr.RomWrite{Addr: addr})
		}
		return nil
	}
}

// doOAMDMA copies a 256-byte CPU page into PPU OAM and charges the bus's
// cycle counter for the stall, per the 513/514-cycle DMA contract.
func (b *Bus) doOAMDMA(page uint8) {
	base := uint16(page) << 8
	data := make([]uint8, oamPageSize)
	for i := range data {
		data[i] = b.MustRead(base + uint16(i))
	}
	b.ppu.WriteOAM(data)

	cost := uint64(oamDMABaseCycles)
	if b.oddCycle {
		cost += oamDMAOddPenalty
	}
	b.Tick(cost)
}

// Tick advances the bus's cycle counter by c cycles and ticks the PPU by
// 3*c dots, per the bus-PPU cycle contract (spec §5). It returns true when
// a frame completes during this tick.
func (b *Bus) Tick(c uint64) bool {
	b.cycles += c
	b.oddCycle = b.cycles%2 != 0
	return b.ppu.Tick(int(3 * c))
}

// PollNMI reports and clears a pending NMI request from the PPU. The CPU
// calls this at each instruction boundary.
func (b *Bus) PollNMI() bool {
	return b.ppu.TakeNMI()
}
