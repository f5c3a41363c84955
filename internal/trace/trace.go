// Package trace formats a single disassembly line for a Cpu, in the style
// of the Nintendulator/FCEUX CPU logs used to validate emulators against a
// golden trace. Formatting never mutates CPU or bus state.
package trace

import (
	"bytes"
	"fmt"

	"github.com/claude/gones6502/internal/cpu"
)

// Line formats the CPU's current instruction: address, raw opcode bytes,
// mnemonic (prefixed with "*" when undocumented) and operand, followed by
// the register file. It is side-effect-free: every memory access goes
// through the bus's non-fatal MustRead, and nothing is written back.
func Line(c *cpu.Cpu) string {
	b := c.Bus()
	pc := c.PC
	opcode := b.MustRead(pc)
	inst := cpu.Lookup(opcode)

	var raw bytes.Buffer
	for i := uint8(0); i < inst.Bytes; i++ {
		fmt.Fprintf(&raw, "%02X ", b.MustRead(pc+uint16(i)))
	}

	prefix := " "
	if inst.Undocumented {
		prefix = "*"
	}

	operand := formatOperand(c, inst)

	return fmt.Sprintf(
		"%04X  %-9s%s%s %-28s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		pc, raw.String(), prefix, inst.Mnemonic, operand,
		c.A, c.X, c.Y, c.P, c.S,
	)
}

// formatOperand renders the operand text for inst given the CPU's current
// state, including the effective address and stored byte where the mode
// makes those knowable without mutating anything.
func formatOperand(c *cpu.Cpu, inst *cpu.Instruction) string {
	b := c.Bus()
	operandAddr := c.PC + 1

	switch inst.Mode {
	case cpu.Implied:
		switch inst.Mnemonic {
		case "ASL", "LSR", "ROL", "ROR":
			return "A"
		}
		return ""

	case cpu.Immediate:
		return fmt.Sprintf("#$%02X", b.MustRead(operandAddr))

	case cpu.ZeroPage:
		zp := b.MustRead(operandAddr)
		return fmt.Sprintf("$%02X = %02X", zp, b.MustRead(uint16(zp)))

	case cpu.ZeroPageX:
		zp := b.MustRead(operandAddr)
		eff := zp + c.X
		return fmt.Sprintf("$%02X,X @ %02X = %02X", zp, eff, b.MustRead(uint16(eff)))

	case cpu.ZeroPageY:
		zp := b.MustRead(operandAddr)
		eff := zp + c.Y
		return fmt.Sprintf("$%02X,Y @ %02X = %02X", zp, eff, b.MustRead(uint16(eff)))

	case cpu.Relative:
		offset := int8(b.MustRead(operandAddr))
		target := uint16(int32(operandAddr+1) + int32(offset))
		return fmt.Sprintf("$%04X", target)

	case cpu.Absolute:
		addr := readU16(b, operandAddr)
		if inst.Mnemonic == "JMP" || inst.Mnemonic == "JSR" {
			return fmt.Sprintf("$%04X", addr)
		}
		return fmt.Sprintf("$%04X = %02X", addr, b.MustRead(addr))

	case cpu.AbsoluteX:
		base := readU16(b, operandAddr)
		eff := base + uint16(c.X)
		return fmt.Sprintf("$%04X,X @ %04X = %02X", base, eff, b.MustRead(eff))

	case cpu.AbsoluteY:
		base := readU16(b, operandAddr)
		eff := base + uint16(c.Y)
		return fmt.Sprintf("$%04X,Y @ %04X = %02X", base, eff, b.MustRead(eff))

	case cpu.Indirect:
		ptr := readU16(b, operandAddr)
		target := readIndirectWithPageWrapBug(b, ptr)
		return fmt.Sprintf("($%04X) = %04X", ptr, target)

	case cpu.IndexedIndirect:
		zp := b.MustRead(operandAddr)
		ptr := zp + c.X
		target := uint16(b.MustRead(uint16(ptr+1)))<<8 | uint16(b.MustRead(uint16(ptr)))
		return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", zp, ptr, target, b.MustRead(target))

	case cpu.IndirectIndexed:
		zp := b.MustRead(operandAddr)
		base := uint16(b.MustRead(uint16(zp+1)))<<8 | uint16(b.MustRead(uint16(zp)))
		target := base + uint16(c.Y)
		return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", zp, base, target, b.MustRead(target))

	default:
		return ""
	}
}

// reader is the minimal side-effect-free byte source trace needs; it is
// satisfied by *bus.Bus via MustRead.
type reader interface {
	MustRead(addr uint16) uint8
}

func readU16(b reader, addr uint16) uint16 {
	lo := b.MustRead(addr)
	hi := b.MustRead(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// readIndirectWithPageWrapBug mirrors the CPU's JMP-indirect page-wrap
// bug purely for display purposes.
func readIndirectWithPageWrapBug(b reader, ptr uint16) uint16 {
	lo := b.MustRead(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := b.MustRead(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}
