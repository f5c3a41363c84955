package cpu

// AddressingMode tags how an opcode's operand address is resolved (spec
// §4.1). There are twelve modes; Accumulator-targeting shift/rotate
// opcodes use Implied and are distinguished by checking the operand A
// register directly in the semantic routine.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect // JMP only
	IndexedIndirect
	IndirectIndexed
)

// Instruction is a single dense opcode-table entry (spec §4.2, §9: "a
// global immutable table is acceptable - it is read-only and
// process-wide").
type Instruction struct {
	Opcode        uint8
	Mnemonic      string
	Bytes         uint8
	Cycles        uint8
	Mode          AddressingMode
	PageCrossExtra bool // +1 cycle on page-crossing reads (indexed/indirect-Y modes only)
	Undocumented  bool
}

// opcodeTable is indexed directly by opcode byte; every one of the 256
// entries is populated (151 documented, 105 undocumented, including the
// twelve JAM/HLT opcodes), matching real 6502/2A03 silicon.
var opcodeTable = [256]Instruction{
	0x00: {0x00, "BRK", 1, 7, Implied, false, false},
	0x01: {0x01, "ORA", 2, 6, IndexedIndirect, false, false},
	0x02: {0x02, "JAM", 1, 2, Implied, false, true},
	0x03: {0x03, "SLO", 2, 8, IndexedIndirect, false, true},
	0x04: {0x04, "NOP", 2, 3, ZeroPage, false, true},
	0x05: {0x05, "ORA", 2, 3, ZeroPage, false, false},
	0x06: {0x06, "ASL", 2, 5, ZeroPage, false, false},
	0x07: {0x07, "SLO", 2, 5, ZeroPage, false, true},
	0x08: {0x08, "PHP", 1, 3, Implied, false, false},
	0x09: {0x09, "ORA", 2, 2, Immediate, false, false},
	0x0A: {0x0A, "ASL", 1, 2, Implied, false, false},
	0x0B: {0x0B, "ANC", 2, 2, Immediate, false, true},
	0x0C: {0x0C, "NOP", 3, 4, Absolute, false, true},
	0x0D: {0x0D, "ORA", 3, 4, Absolute, false, false},
	0x0E: {0x0E, "ASL", 3, 6, Absolute, false, false},
	0x0F: {0x0F, "SLO", 3, 6, Absolute, false, true},

	0x10: {0x10, "BPL", 2, 2, Relative, false, false},
	0x11: {0x11, "ORA", 2, 5, IndirectIndexed, true, false},
	0x12: {0x12, "JAM", 1, 2, Implied, false, true},
	0x13: {0x13, "SLO", 2, 8, IndirectIndexed, false, true},
	0x14: {0x14, "NOP", 2, 4, ZeroPageX, false, true},
	0x15: {0x15, "ORA", 2, 4, ZeroPageX, false, false},
	0x16: {0x16, "ASL", 2, 6, ZeroPageX, false, false},
	0x17: {0x17, "SLO", 2, 6, ZeroPageX, false, true},
	0x18: {0x18, "CLC", 1, 2, Implied, false, false},
	0x19: {0x19, "ORA", 3, 4, AbsoluteY, true, false},
	0x1A: {0x1A, "NOP", 1, 2, Implied, false, true},
	0x1B: {0x1B, "SLO", 3, 7, AbsoluteY, false, true},
	0x1C: {0x1C, "NOP", 3, 4, AbsoluteX, true, true},
	0x1D: {0x1D, "ORA", 3, 4, AbsoluteX, true, false},
	0x1E: {0x1E, "ASL", 3, 7, AbsoluteX, false, false},
	0x1F: {0x1F, "SLO", 3, 7, AbsoluteX, false, true},

	0x20: {0x20, "JSR", 3, 6, Absolute, false, false},
	0x21: {0x21, "AND", 2, 6, IndexedIndirect, false, false},
	0x22: {0x22, "JAM", 1, 2, Implied, false, true},
	0x23: {0x23, "RLA", 2, 8, IndexedIndirect, false, true},
	0x24: {0x24, "BIT", 2, 3, ZeroPage, false, false},
	0x25: {0x25, "AND", 2, 3, ZeroPage, false, false},
	0x26: {0x26, "ROL", 2, 5, ZeroPage, false, false},
	0x27: {0x27, "RLA", 2, 5, ZeroPage, false, true},
	0x28: {0x28, "PLP", 1, 4, Implied, false, false},
	0x29: {0x29, "AND", 2, 2, Immediate, false, false},
	0x2A: {0x2A, "ROL", 1, 2, Implied, false, false},
	0x2B: {0x2B, "ANC", 2, 2, Immediate, false, true},
	0x2C: {0x2C, "BIT", 3, 4, Absolute, false, false},
	0x2D: {0x2D, "AND", 3, 4, Absolute, false, false},
	0x2E: {0x2E, "ROL", 3, 6, Absolute, false, false},
	0x2F: {0x2F, "RLA", 3, 6, Absolute, false, true},

	0x30: {0x30, "BMI", 2, 2, Relative, false, false},
	0x31: {0x31, "AND", 2, 5, IndirectIndexed, true, false},
	0x32: {0x32, "JAM", 1, 2, Implied, false, true},
	0x33: {0x33, "RLA", 2, 8, IndirectIndexed, false, true},
	0x34: {0x34, "NOP", 2, 4, ZeroPageX, false, true},
	0x35: {0x35, "AND", 2, 4, ZeroPageX, false, false},
	0x36: {0x36, "ROL", 2, 6, ZeroPageX, false, false},
	0x37: {0x37, "RLA", 2, 6, ZeroPageX, false, true},
	0x38: {0x38, "SEC", 1, 2, Implied, false, false},
	0x39: {0x39, "AND", 3, 4, AbsoluteY, true, false},
	0x3A: {0x3A, "NOP", 1, 2, Implied, false, true},
	0x3B: {0x3B, "RLA", 3, 7, AbsoluteY, false, true},
	0x3C: {0x3C, "NOP", 3, 4, AbsoluteX, true, true},
	0x3D: {0x3D, "AND", 3, 4, AbsoluteX, true, false},
	0x3E: {0x3E, "ROL", 3, 7, AbsoluteX, false, false},
	0x3F: {0x3F, "RLA", 3, 7, AbsoluteX, false, true},

	0x40: {0x40, "RTI", 1, 6, Implied, false, false},
	0x41: {0x41, "EOR", 2, 6, IndexedIndirect, false, false},
	0x42: {0x42, "JAM", 1, 2, Implied, false, true},
	0x43: {0x43, "SRE", 2, 8, IndexedIndirect, false, true},
	0x44: {0x44, "NOP", 2, 3, ZeroPage, false, true},
	0x45: {0x45, "EOR", 2, 3, ZeroPage, false, false},
	0x46: {0x46, "LSR", 2, 5, ZeroPage, false, false},
	0x47: {0x47, "SRE", 2, 5, ZeroPage, false, true},
	0x48: {0x48, "PHA", 1, 3, Implied, false, false},
	0x49: {0x49, "EOR", 2, 2, Immediate, false, false},
	0x4A: {0x4A, "LSR", 1, 2, Implied, false, false},
	0x4B: {0x4B, "ALR", 2, 2, Immediate, false, true},
	0x4C: {0x4C, "JMP", 3, 3, Absolute, false, false},
	0x4D: {0x4D, "EOR", 3, 4, Absolute, false, false},
	0x4E: {0x4E, "LSR", 3, 6, Absolute, false, false},
	0x4F: {0x4F, "SRE", 3, 6, Absolute, false, true},

	0x50: {0x50, "BVC", 2, 2, Relative, false, false},
	0x51: {0x51, "EOR", 2, 5, IndirectIndexed, true, false},
	0x52: {0x52, "JAM", 1, 2, Implied, false, true},
	0x53: {0x53, "SRE", 2, 8, IndirectIndexed, false, true},
	0x54: {0x54, "NOP", 2, 4, ZeroPageX, false, true},
	0x55: {0x55, "EOR", 2, 4, ZeroPageX, false, false},
	0x56: {0x56, "LSR", 2, 6, ZeroPageX, false, false},
	0x57: {0x57, "SRE", 2, 6, ZeroPageX, false, true},
	0x58: {0x58, "CLI", 1, 2, Implied, false, false},
	0x59: {0x59, "EOR", 3, 4, AbsoluteY, true, false},
	0x5A: {0x5A, "NOP", 1, 2, Implied, false, true},
	0x5B: {0x5B, "SRE", 3, 7, AbsoluteY, false, true},
	0x5C: {0x5C, "NOP", 3, 4, AbsoluteX, true, true},
	0x5D: {0x5D, "EOR", 3, 4, AbsoluteX, true, false},
	0x5E: {0x5E, "LSR", 3, 7, AbsoluteX, false, false},
	0x5F: {0x5F, "SRE", 3, 7, AbsoluteX, false, true},

	0x60: {0x60, "RTS", 1, 6, Implied, false, false},
	0x61: {0x61, "ADC", 2, 6, IndexedIndirect, false, false},
	0x62: {0x62, "JAM", 1, 2, Implied, false, true},
	0x63: {0x63, "RRA", 2, 8, IndexedIndirect, false, true},
	0x64: {0x64, "NOP", 2, 3, ZeroPage, false, true},
	0x65: {0x65, "ADC", 2, 3, ZeroPage, false, false},
	0x66: {0x66, "ROR", 2, 5, ZeroPage, false, false},
	0x67: {0x67, "RRA", 2, 5, ZeroPage, false, true},
	0x68: {0x68, "PLA", 1, 4, Implied, false, false},
	0x69: {0x69, "ADC", 2, 2, Immediate, false, false},
	0x6A: {0x6A, "ROR", 1, 2, Implied, false, false},
	0x6B: {0x6B, "ARR", 2, 2, Immediate, false, true},
	0x6C: {0x6C, "JMP", 3, 5, Indirect, false, false},
	0x6D: {0x6D, "ADC", 3, 4, Absolute, false, false},
	0x6E: {0x6E, "ROR", 3, 6, Absolute, false, false},
	0x6F: {0x6F, "RRA", 3, 6, Absolute, false, true},

	0x70: {0x70, "BVS", 2, 2, Relative, false, false},
	0x71: {0x71, "ADC", 2, 5, IndirectIndexed, true, false},
	0x72: {0x72, "JAM", 1, 2, Implied, false, true},
	0x73: {0x73, "RRA", 2, 8, IndirectIndexed, false, true},
	0x74: {0x74, "NOP", 2, 4, ZeroPageX, false, true},
	0x75: {0x75, "ADC", 2, 4, ZeroPageX, false, false},
	0x76: {0x76, "ROR", 2, 6, ZeroPageX, false, false},
	0x77: {0x77, "RRA", 2, 6, ZeroPageX, false, true},
	0x78: {0x78, "SEI", 1, 2, Implied, false, false},
	0x79: {0x79, "ADC", 3, 4, AbsoluteY, true, false},
	0x7A: {0x7A, "NOP", 1, 2, Implied, false, true},
	0x7B: {0x7B, "RRA", 3, 7, AbsoluteY, false, true},
	0x7C: {0x7C, "NOP", 3, 4, AbsoluteX, true, true},
	0x7D: {0x7D, "ADC", 3, 4, AbsoluteX, true, false},
	0x7E: {0x7E, "ROR", 3, 7, AbsoluteX, false, false},
	0x7F: {0x7F, "RRA", 3, 7, AbsoluteX, false, true},

	0x80: {0x80, "NOP", 2, 2, Immediate, false, true},
	0x81: {0x81, "STA", 2, 6, IndexedIndirect, false, false},
	0x82: {0x82, "NOP", 2, 2, Immediate, false, true},
	0x83: {0x83, "SAX", 2, 6, IndexedIndirect, false, true},
	0x84: {0x84, "STY", 2, 3, ZeroPage, false, false},
	0x85: {0x85, "STA", 2, 3, ZeroPage, false, false},
	0x86: {0x86, "STX", 2, 3, ZeroPage, false, false},
	0x87: {0x87, "SAX", 2, 3, ZeroPage, false, true},
	0x88: {0x88, "DEY", 1, 2, Implied, false, false},
	0x89: {0x89, "NOP", 2, 2, Immediate, false, true},
	0x8A: {0x8A, "TXA", 1, 2, Implied, false, false},
	0x8B: {0x8B, "XAA", 2, 2, Immediate, false, true},
	0x8C: {0x8C, "STY", 3, 4, Absolute, false, false},
	0x8D: {0x8D, "STA", 3, 4, Absolute, false, false},
	0x8E: {0x8E, "STX", 3, 4, Absolute, false, false},
	0x8F: {0x8F, "SAX", 3, 4, Absolute, false, true},

	0x90: {0x90, "BCC", 2, 2, Relative, false, false},
	0x91: {0x91, "STA", 2, 6, IndirectIndexed, false, false},
	0x92: {0x92, "JAM", 1, 2, Implied, false, true},
	0x93: {0x93, "AXA", 2, 6, IndirectIndexed, false, true},
	0x94: {0x94, "STY", 2, 4, ZeroPageX, false, false},
	0x95: {0x95, "STA", 2, 4, ZeroPageX, false, false},
	0x96: {0x96, "STX", 2, 4, ZeroPageY, false, false},
	0x97: {0x97, "SAX", 2, 4, ZeroPageY, false, true},
	0x98: {0x98, "TYA", 1, 2, Implied, false, false},
	0x99: {0x99, "STA", 3, 5, AbsoluteY, false, false},
	0x9A: {0x9A, "TXS", 1, 2, Implied, false, false},
	0x9B: {0x9B, "XAS", 3, 5, AbsoluteY, false, true},
	0x9C: {0x9C, "SYA", 3, 5, AbsoluteX, false, true},
	0x9D: {0x9D, "STA", 3, 5, AbsoluteX, false, false},
	0x9E: {0x9E, "SXA", 3, 5, AbsoluteY, false, true},
	0x9F: {0x9F, "AXA", 3, 5, AbsoluteY, false, true},

	0xA0: {0xA0, "LDY", 2, 2, Immediate, false, false},
	0xA1: {0xA1, "LDA", 2, 6, IndexedIndirect, false, false},
	0xA2: {0xA2, "LDX", 2, 2, Immediate, false, false},
	0xA3: {0xA3, "LAX", 2, 6, IndexedIndirect, false, true},
	0xA4: {0xA4, "LDY", 2, 3, ZeroPage, false, false},
	0xA5: {0xA5, "LDA", 2, 3, ZeroPage, false, false},
	0xA6: {0xA6, "LDX", 2, 3, ZeroPage, false, false},
	0xA7: {0xA7, "LAX", 2, 3, ZeroPage, false, true},
	0xA8: {0xA8, "TAY", 1, 2, Implied, false, false},
	0xA9: {0xA9, "LDA", 2, 2, Immediate, false, false},
	0xAA: {0xAA, "TAX", 1, 2, Implied, false, false},
	0xAB: {0xAB, "ATX", 2, 2, Immediate, false, true},
	0xAC: {0xAC, "LDY", 3, 4, Absolute, false, false},
	0xAD: {0xAD, "LDA", 3, 4, Absolute, false, false},
	0xAE: {0xAE, "LDX", 3, 4, Absolute, false, false},
	0xAF: {0xAF, "LAX", 3, 4, Absolute, false, true},

	0xB0: {0xB0, "BCS", 2, 2, Relative, false, false},
	0xB1: {0xB1, "LDA", 2, 5, IndirectIndexed, true, false},
	0xB2: {0xB2, "JAM", 1, 2, Implied, false, true},
	0xB3: {0xB3, "LAX", 2, 5, IndirectIndexed, true, true},
	0xB4: {0xB4, "LDY", 2, 4, ZeroPageX, false, false},
	0xB5: {0xB5, "LDA", 2, 4, ZeroPageX, false, false},
	0xB6: {0xB6, "LDX", 2, 4, ZeroPageY, false, false},
	0xB7: {0xB7, "LAX", 2, 4, ZeroPageY, false, true},
	0xB8: {0xB8, "CLV", 1, 2, Implied, false, false},
	0xB9: {0xB9, "LDA", 3, 4, AbsoluteY, true, false},
	0xBA: {0xBA, "TSX", 1, 2, Implied, false, false},
	0xBB: {0xBB, "LAR", 3, 4, AbsoluteY, true, true},
	0xBC: {0xBC, "LDY", 3, 4, AbsoluteX, true, false},
	0xBD: {0xBD, "LDA", 3, 4, AbsoluteX, true, false},
	0xBE: {0xBE, "LDX", 3, 4, AbsoluteY, true, false},
	0xBF: {0xBF, "LAX", 3, 4, AbsoluteY, true, true},

	0xC0: {0xC0, "CPY", 2, 2, Immediate, false, false},
	0xC1: {0xC1, "CMP", 2, 6, IndexedIndirect, false, false},
	0xC2: {0xC2, "NOP", 2, 2, Immediate, false, true},
	0xC3: {0xC3, "DCP", 2, 8, IndexedIndirect, false, true},
	0xC4: {0xC4, "CPY", 2, 3, ZeroPage, false, false},
	0xC5: {0xC5, "CMP", 2, 3, ZeroPage, false, false},
	0xC6: {0xC6, "DEC", 2, 5, ZeroPage, false, false},
	0xC7: {0xC7, "DCP", 2, 5, ZeroPage, false, true},
	0xC8: {0xC8, "INY", 1, 2, Implied, false, false},
	0xC9: {0xC9, "CMP", 2, 2, Immediate, false, false},
	0xCA: {0xCA, "DEX", 1, 2, Implied, false, false},
	0xCB: {0xCB, "AXS", 2, 2, Immediate, false, true},
	0xCC: {0xCC, "CPY", 3, 4, Absolute, false, false},
	0xCD: {0xCD, "CMP", 3, 4, Absolute, false, false},
	0xCE: {0xCE, "DEC", 3, 6, Absolute, false, false},
	0xCF: {0xCF, "DCP", 3, 6, Absolute, false, true},

	0xD0: {0xD0, "BNE", 2, 2, Relative, false, false},
	0xD1: {0xD1, "CMP", 2, 5, IndirectIndexed, true, false},
	0xD2: {0xD2, "JAM", 1, 2, Implied, false, true},
	0xD3: {0xD3, "DCP", 2, 8, IndirectIndexed, false, true},
	0xD4: {0xD4, "NOP", 2, 4, ZeroPageX, false, true},
	0xD5: {0xD5, "CMP", 2, 4, ZeroPageX, false, false},
	0xD6: {0xD6, "DEC", 2, 6, ZeroPageX, false, false},
	0xD7: {0xD7, "DCP", 2, 6, ZeroPageX, false, true},
	0xD8: {0xD8, "CLD", 1, 2, Implied, false, false},
	0xD9: {0xD9, "CMP", 3, 4, AbsoluteY, true, false},
	0xDA: {0xDA, "NOP", 1, 2, Implied, false, true},
	0xDB: {0xDB, "DCP", 3, 7, AbsoluteY, false, true},
	0xDC: {0xDC, "NOP", 3, 4, AbsoluteX, true, true},
	0xDD: {0xDD, "CMP", 3, 4, AbsoluteX, true, false},
	0xDE: {0xDE, "DEC", 3, 7, AbsoluteX, false, false},
	0xDF: {0xDF, "DCP", 3, 7, AbsoluteX, false, true},

	0xE0: {0xE0, "CPX", 2, 2, Immediate, false, false},
	0xE1: {0xE1, "SBC", 2, 6, IndexedIndirect, false, false},
	0xE2: {0xE2, "NOP", 2, 2, Immediate, false, true},
	0xE3: {0xE3, "ISB", 2, 8, IndexedIndirect, false, true},
	0xE4: {0xE4, "CPX", 2, 3, ZeroPage, false, false},
	0xE5: {0xE5, "SBC", 2, 3, ZeroPage, false, false},
	0xE6: {0xE6, "INC", 2, 5, ZeroPage, false, false},
	0xE7: {0xE7, "ISB", 2, 5, ZeroPage, false, true},
	0xE8: {0xE8, "INX", 1, 2, Implied, false, false},
	0xE9: {0xE9, "SBC", 2, 2, Immediate, false, false},
	0xEA: {0xEA, "NOP", 1, 2, Implied, false, false},
	0xEB: {0xEB, "SBC", 2, 2, Immediate, false, true},
	0xEC: {0xEC, "CPX", 3, 4, Absolute, false, false},
	0xED: {0xED, "SBC", 3, 4, Absolute, false, false},
	0xEE: {0xEE, "INC", 3, 6, Absolute, false, false},
	0xEF: {0xEF, "ISB", 3, 6, Absolute, false, true},

	0xF0: {0xF0, "BEQ", 2, 2, Relative, false, false},
	0xF1: {0xF1, "SBC", 2, 5, IndirectIndexed, true, false},
	0xF2: {0xF2, "JAM", 1, 2, Implied, false, true},
	0xF3: {0xF3, "ISB", 2, 8, IndirectIndexed, false, true},
	0xF4: {0xF4, "NOP", 2, 4, ZeroPageX, false, true},
	0xF5: {0xF5, "SBC", 2, 4, ZeroPageX, false, false},
	0xF6: {0xF6, "INC", 2, 6, ZeroPageX, false, false},
	0xF7: {0xF7, "ISB", 2, 6, ZeroPageX, false, true},
	0xF8: {0xF8, "SED", 1, 2, Implied, false, false},
	0xF9: {0xF9, "SBC", 3, 4, AbsoluteY, true, false},
	0xFA: {0xFA, "NOP", 1, 2, Implied, false, true},
	0xFB: {0xFB, "ISB", 3, 7, AbsoluteY, false, true},
	0xFC: {0xFC, "NOP", 3, 4, AbsoluteX, true, true},
	0xFD: {0xFD, "SBC", 3, 4, AbsoluteX, true, false},
	0xFE: {0xFE, "INC", 3, 7, AbsoluteX, false, false},
	0xFF: {0xFF, "ISB", 3, 7, AbsoluteX, false, true},
}

// Lookup returns the table entry for opcode. Every byte value has an
// entry (official, undocumented, or JAM), so this never misses in
// practice; Step still checks explicitly per spec §7.
func Lookup(opcode uint8) *Instruction {
	return &opcodeTable[opcode]
}
