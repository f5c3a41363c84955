// Package ppu implements the memory-mapped register front-end of the NES
// picture processing unit: the nine CPU-visible registers, VRAM/OAM/palette
// storage, nametable mirroring, and the scanline tick that drives
// vertical-blank timing and NMI. The pixel/scanline rendering pipeline
// itself is out of scope (see spec §1) and is not implemented here.
package ppu

import (
	"log"

	"github.com/claude/gones6502/internal/cartridge"
	"github.com/claude/gones6502/internal/neserr"
)

// Register index, as dispatched by the bus from the low three bits of the
// masked $2000-$3FFF address.
const (
	RegCtrl = iota
	RegMask
	RegStatus
	RegOamAddr
	RegOamData
	RegScroll
	RegAddr
	RegData
)

const (
	statusVBlank     = 1 << 7
	statusSprite0Hit = 1 << 6
	statusOverflow   = 1 << 5

	ctrlNMIEnable  = 1 << 7
	ctrlVRAMStep32 = 1 << 2

	vramSize    = 2048
	oamSize     = 256
	paletteSize = 32
	addrMask14  = 0x3FFF

	dotsPerScanline    = 341
	vblankScanline     = 241
	scanlinesPerFrame  = 262
	nametableSpan      = 0x1000
	nametableTableSize = 0x400
)

// Ppu is the NES picture processing unit's register-level front end.
type Ppu struct {
	chrROM    []uint8 // shared with the owning Cartridge; writes are discarded
	mirroring cartridge.Mirroring

	vram    [vramSize]uint8
	oam     [oamSize]uint8
	palette [paletteSize]uint8

	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8

	addr       uint16
	w          bool // shared write toggle for $2005/$2006
	scrollX    uint8
	scrollY    uint8
	readBuffer uint8

	scanline int
	dot      int

	nmiPending bool

	strict bool // PpuIllegalRegion mode for the $3000-$3EFF window
}

// New constructs a Ppu bound to the cartridge's CHR image and mirroring
// mode. strict, when true, makes DATA access to the undefined $3000-$3EFF
// window a fatal PpuIllegalRegion instead of treating it as a mirror of
// $2000-$2EFF.
func New(chrROM []uint8, mirroring cartridge.Mirroring, strict bool) *Ppu {
	return &Ppu{
		chrROM:    chrROM,
		mirroring: mirroring,
		strict:    strict,
	}
}

// TakeNMI reports and clears a pending NMI request. The CPU calls this at
// each instruction boundary (edge-triggered).
func (p *Ppu) TakeNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// ReadRegister handles a CPU read of register index reg (0-7).
func (p *Ppu) ReadRegister(reg int) (uint8, error) {
	switch reg {
	case RegStatus:
		v := p.status
		p.status &^= statusVBlank
		p.w = false
		return v, nil
	case RegOamData:
		return p.oam[p.oamAddr], nil
	case RegData:
		return p.readData()
	default:
		return 0, neserr.ErrWriteOnly
	}
}

// WriteRegister handles a CPU write of register index reg (0-7).
func (p *Ppu) WriteRegister(reg int, value uint8) error {
	switch reg {
	case RegCtrl:
		prevNMIEnable := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = value
		nowNMIEnable := p.ctrl&ctrlNMIEnable != 0
		if !prevNMIEnable && nowNMIEnable && p.status&statusVBlank != 0 {
			p.nmiPending = true
		}
		return nil
	case RegMask:
		p.mask = value
		return nil
	case RegOamAddr:
		p.oamAddr = value
		return nil
	case RegOamData:
		p.oam[p.oamAddr] = value
		p.oamAddr++
		return nil
	case RegScroll:
		if !p.w {
			p.scrollX = value
		} else {
			p.scrollY = value
		}
		p.w = !p.w
		return nil
	case RegAddr:
		if !p.w {
			p.addr = (uint16(value)<<8 | (p.addr & 0x00FF)) & addrMask14
		} else {
			p.addr = (p.addr&0xFF00 | uint16(value)) & addrMask14
		}
		p.w = !p.w
		return nil
	case RegData:
		return p.writeData(value)
	default:
		return nil
	}
}

func (p *Ppu) vramIncrement() uint16 {
	if p.ctrl&ctrlVRAMStep32 != 0 {
		return 32
	}
	return 1
}

func (p *Ppu) readData() (uint8, error) {
	addr := p.addr & addrMask14
	var value uint8
	if addr >= 0x3F00 {
		value = p.readPalette(addr)
		p.readBuffer = p.readNametable(addr)
	} else {
		value = p.readBuffer
		buffered, err := p.readThroughMapped(addr)
		if err != nil {
			return 0, err
		}
		p.readBuffer = buffered
	}
	p.addr = (p.addr + p.vramIncrement()) & addrMask14
	return value, nil
}

func (p *Ppu) writeData(value uint8) error {
	addr := p.addr & addrMask14
	if err := p.writeMapped(addr, value); err != nil {
		return err
	}
	p.addr = (p.addr + p.vramIncrement()) & addrMask14
	return nil
}

func (p *Ppu) readThroughMapped(addr uint16) (uint8, error) {
	switch {
	case addr < 0x2000:
		return p.chrROM[addr%uint16(len(p.chrROM))], nil
	case addr < 0x3000:
		return p.readNametable(addr), nil
	case addr < 0x3F00:
		if p.strict {
			return 0, &neserr.PpuIllegalRegion{Addr: addr}
		}
		return p.readNametable(addr - 0x1000), nil
	default:
		return p.readPalette(addr), nil
	}
}

func (p *Ppu) writeMapped(addr uint16, value uint8) error {
	switch {
	case addr < 0x2000:
		log.Printf("ppu: discarding write to CHR ROM at $%04X", addr)
		return nil
	case addr < 0x3000:
		p.writeNametable(addr, value)
		return nil
	case addr < 0x3F00:
		if p.strict {
			return &neserr.PpuIllegalRegion{Addr: addr}
		}
		p.writeNametable(addr-0x1000, value)
		return nil
	default:
		p.writePalette(addr, value)
		return nil
	}
}

func (p *Ppu) readNametable(addr uint16) uint8 {
	idx := p.mirrorNametable(addr)
	return p.vram[idx]
}

func (p *Ppu) writeNametable(addr uint16, value uint8) {
	idx := p.mirrorNametable(addr)
	p.vram[idx] = value
}

// mirrorNametable folds a logical $2000-$2FFF address (masked to 12 bits,
// i.e. one of four 1KiB logical tables) onto the physical 2KiB VRAM
// according to the cartridge's mirroring mode.
func (p *Ppu) mirrorNametable(addr uint16) uint16 {
	index := addr & (nametableSpan - 1)
	table := index / nametableTableSize
	offset := index % nametableTableSize

	var physical uint16
	switch p.mirroring {
	case cartridge.Horizontal:
		// {0,1} share physical table 0; {2,3} share physical table 1.
		physical = table / 2
	case cartridge.Vertical:
		// {0,2} share physical table 0; {1,3} share physical table 1.
		physical = table % 2
	default: // FourScreen: the 12-bit index is taken modulo the 2KiB buffer, so tables 2 and 3 share storage with tables 0 and 1.
		return index % vramSize
	}
	return physical*nametableTableSize + offset
}

func (p *Ppu) readPalette(addr uint16) uint8 {
	return p.palette[palettizeIndex(addr)]
}

func (p *Ppu) writePalette(addr uint16, value uint8) {
	p.palette[palettizeIndex(addr)] = value
}

// palettizeIndex mirrors palette background-color entries $10/$14/$18/$1C
// onto $00/$04/$08/$0C.
func palettizeIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

// WriteOAM is used by the bus's OAM DMA implementation to copy a page of
// CPU memory directly into OAM, starting at the current OAM address.
func (p *Ppu) WriteOAM(data []uint8) {
	for _, b := range data {
		p.oam[p.oamAddr] = b
		p.oamAddr++
	}
}

// Tick advances the PPU by n dots (n = 3 * CPU cycles consumed by the last
// instruction, per the bus-PPU cycle contract). It returns true the instant
// a full frame completes (scanline wraps from 262 back to 0).
func (p *Ppu) Tick(n int) bool {
	frameComplete := false
	p.dot += n
	for p.dot >= dotsPerScanline {
		p.dot -= dotsPerScanline
		p.scanline++
		switch p.scanline {
		case vblankScanline:
			p.status |= statusVBlank
			if p.ctrl&ctrlNMIEnable != 0 {
				p.nmiPending = true
			}
		case scanlinesPerFrame:
			p.scanline = 0
			p.status &^= statusVBlank
			p.status &^= statusSprite0Hit
			frameComplete = true
		}
	}
	return frameComplete
}

// Scanline and Dot expose current timing state for tests and tracers.
func (p *Ppu) Scanline() int { return p.scanline }
func (p *Ppu) Dot() int      { return p.dot }
