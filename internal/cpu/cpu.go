// Package cpu implements the MOS 6502 core used by the NES: registers,
// the twelve addressing modes, the full documented and undocumented
// opcode roster, and interrupt handling (NMI servicing, BRK/RTI). No
// hardware IRQ line is modeled; BRK is the only user of the IRQ vector.
package cpu

import (
	"github.com/claude/gones6502/internal/bus"
	"github.com/claude/gones6502/internal/neserr"
)

const (
	flagC uint8 = 1 << 0 // carry
	flagZ uint8 = 1 << 1 // zero
	flagI uint8 = 1 << 2 // interrupt disable
	flagD uint8 = 1 << 3 // decimal
	flagB uint8 = 1 << 4 // break (only meaningful in the byte pushed to the stack)
	flagU uint8 = 1 << 5 // unused, always reads 1
	flagV uint8 = 1 << 6 // overflow
	flagN uint8 = 1 << 7 // negative

	stackBase    uint16 = 0x0100
	resetVector  uint16 = 0xFFFC
	nmiVector    uint16 = 0xFFFA
	irqVector    uint16 = 0xFFFE
	resetStackPtr uint8 = 0xFD
	resetStatus  uint8 = flagU | flagI
)

// Cpu is the MOS 6502 register file plus the bus it executes against.
// Per the construction order spec'd for this core, a Cpu borrows its Bus
// rather than owning it: Cartridge is loaded first, a Bus is built around
// it, and the Cpu is built from that Bus.
type Cpu struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	P       uint8

	DecimalEnabled bool

	bus *bus.Bus

	// Halted is set when a BRK has executed (not an error: RunWithCallback
	// treats it as a normal stop condition).
	Halted bool
}

// New constructs a Cpu wired to b and immediately performs a reset, so the
// returned Cpu always starts from a valid, spec-defined power-on state.
// Reset can be called again at any later point to simulate a hardware
// reset line.
func New(b *bus.Bus, decimalEnabled bool) *Cpu {
	c := &Cpu{bus: b, DecimalEnabled: decimalEnabled}
	c.Reset()
	return c
}

// Bus returns the underlying bus, e.g. for the tracer.
func (c *Cpu) Bus() *bus.Bus { return c.bus }

// Reset restores the documented post-reset register state and loads PC
// from the reset vector at $FFFC. Reset is a construction-time and
// hardware-reset operation; it is never triggered by a BRK or IRQ.
func (c *Cpu) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = resetStackPtr
	c.P = resetStatus
	c.Halted = false
	pc, err := c.bus.ReadU16(resetVector)
	if err != nil {
		pc = 0
	}
	c.PC = pc
}

func (c *Cpu) getFlag(mask uint8) bool { return c.P&mask != 0 }

func (c *Cpu) setFlag(mask uint8, set bool) {
	if set {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *Cpu) setZN(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

func (c *Cpu) push(v uint8) error {
	if err := c.bus.Write(stackBase+uint16(c.S), v); err != nil {
		return err
	}
	c.S--
	return nil
}

func (c *Cpu) pop() (uint8, error) {
	c.S++
	return c.bus.Read(stackBase + uint16(c.S))
}

func (c *Cpu) pushU16(v uint16) error {
	if err := c.push(uint8(v >> 8)); err != nil {
		return err
	}
	return c.push(uint8(v))
}

func (c *Cpu) popU16() (uint16, error) {
	lo, err := c.pop()
	if err != nil {
		return 0, err
	}
	hi, err := c.pop()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Cycles reports the bus's cumulative cycle counter, which Step advances.
func (c *Cpu) Cycles() uint64 { return c.bus.Cycles() }

// resolveAddress computes the effective address for mode without mutating
// PC; PC at call time points at the first operand byte (i.e. one past the
// opcode). It reports whether an indexed/indirect-Y computation crossed a
// page boundary, which read-class instructions use to charge +1 cycle.
func (c *Cpu) resolveAddress(mode AddressingMode) (addr uint16, pageCrossed bool, err error) {
	switch mode {
	case Implied:
		return 0, false, nil

	case Immediate, Relative:
		return c.PC, false, nil

	case ZeroPage:
		v, err := c.bus.Read(c.PC)
		return uint16(v), false, err

	case ZeroPageX:
		v, err := c.bus.Read(c.PC)
		if err != nil {
			return 0, false, err
		}
		return uint16(v + c.X), false, nil

	case ZeroPageY:
		v, err := c.bus.Read(c.PC)
		if err != nil {
			return 0, false, err
		}
		return uint16(v + c.Y), false, nil

	case Absolute:
		v, err := c.bus.ReadU16(c.PC)
		return v, false, err

	case AbsoluteX:
		base, err := c.bus.ReadU16(c.PC)
		if err != nil {
			return 0, false, err
		}
		target := base + uint16(c.X)
		return target, pageDiffers(base, target), nil

	case AbsoluteY:
		base, err := c.bus.ReadU16(c.PC)
		if err != nil {
			return 0, false, err
		}
		target := base + uint16(c.Y)
		return target, pageDiffers(base, target), nil

	case Indirect:
		ptr, err := c.bus.ReadU16(c.PC)
		if err != nil {
			return 0, false, err
		}
		return c.readIndirectWithPageWrapBug(ptr), false, nil

	case IndexedIndirect:
		zp, err := c.bus.Read(c.PC)
		if err != nil {
			return 0, false, err
		}
		ptr := zp + c.X
		lo, err := c.bus.Read(uint16(ptr))
		if err != nil {
			return 0, false, err
		}
		hi, err := c.bus.Read(uint16(ptr + 1))
		if err != nil {
			return 0, false, err
		}
		return uint16(hi)<<8 | uint16(lo), false, nil

	case IndirectIndexed:
		zp, err := c.bus.Read(c.PC)
		if err != nil {
			return 0, false, err
		}
		lo, err := c.bus.Read(uint16(zp))
		if err != nil {
			return 0, false, err
		}
		hi, err := c.bus.Read(uint16(zp + 1))
		if err != nil {
			return 0, false, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		target := base + uint16(c.Y)
		return target, pageDiffers(base, target), nil

	default:
		return 0, false, nil
	}
}

// readIndirectWithPageWrapBug reproduces JMP ($xxFF)'s hardware bug: the
// high byte of the target is fetched from $xx00, not ($xxFF)+1.
func (c *Cpu) readIndirectWithPageWrapBug(ptr uint16) uint16 {
	lo := c.bus.MustRead(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.bus.MustRead(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

func pageDiffers(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// Step executes exactly one instruction: it polls for a pending NMI,
// fetches and decodes the opcode at PC, resolves its operand address,
// dispatches to the semantic routine, and advances PC past any operand
// bytes the routine itself did not consume (i.e. anything but a taken
// branch or a jump/call/return). It returns the number of cycles charged.
func (c *Cpu) Step() (uint64, error) {
	if c.bus.PollNMI() {
		if err := c.serviceNMI(); err != nil {
			return 0, err
		}
	}

	opcodeByte, err := c.bus.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	basePC := c.PC

	inst := Lookup(opcodeByte)
	if inst.Mnemonic == "" {
		return 0, &neserr.UnknownOpcode{Opcode: opcodeByte}
	}
	if inst.Mnemonic == "JAM" {
		return 0, &neserr.IllegalHalt{Opcode: opcodeByte}
	}

	addr, pageCrossed, err := c.resolveAddress(inst.Mode)
	if err != nil {
		return 0, err
	}

	extra, err := c.execute(inst, addr, pageCrossed)
	if err != nil {
		return 0, err
	}

	if c.PC == basePC {
		c.PC += uint16(inst.Bytes) - 1
	}

	cycles := uint64(inst.Cycles) + uint64(extra)
	c.bus.Tick(cycles)
	return cycles, nil
}

// serviceNMI pushes PC and P (with B clear) and jumps to the NMI vector,
// per the standard 6502 interrupt sequence.
func (c *Cpu) serviceNMI() error {
	if err := c.pushU16(c.PC); err != nil {
		return err
	}
	if err := c.push((c.P | flagU) &^ flagB); err != nil {
		return err
	}
	c.setFlag(flagI, true)
	pc, err := c.bus.ReadU16(nmiVector)
	if err != nil {
		return err
	}
	c.PC = pc
	c.bus.Tick(7)
	return nil
}

// RunWithCallback repeatedly steps the CPU, invoking before each step,
// until BRK sets Halted or Step returns an error (typically UnknownOpcode
// or IllegalHalt). It returns the terminating error, or nil on a clean
// BRK-triggered halt.
func (c *Cpu) RunWithCallback(before func(*Cpu)) error {
	for !c.Halted {
		before(c)
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
