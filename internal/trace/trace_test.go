package trace

import (
	"strings"
	"testing"

	"github.com/claude/gones6502/internal/bus"
	"github.com/claude/gones6502/internal/cartridge"
	"github.com/claude/gones6502/internal/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCpu(t *testing.T, prg []byte) *cpu.Cpu {
	t.Helper()
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = 2
	header[5] = 1

	prgROM := make([]byte, 2*16384)
	copy(prgROM, prg)
	prgROM[0x7FFC] = 0x00
	prgROM[0x7FFD] = 0x80

	data := append(header, prgROM...)
	data = append(data, make([]byte, 8192)...)
	cart, err := cartridge.Load(data)
	require.NoError(t, err)

	b := bus.New(cart, false)
	return cpu.New(b, false)
}

func TestLineImmediate(t *testing.T) {
	c := newTestCpu(t, []byte{0xA9, 0x42}) // LDA #$42
	line := Line(c)
	assert.True(t, strings.HasPrefix(line, "8000  A9 42"))
	assert.Contains(t, line, "LDA #$42")
	assert.Contains(t, line, "A:00")
}

func TestLineUndocumentedHasStar(t *testing.T) {
	c := newTestCpu(t, []byte{0x04, 0x10}) // NOP zp (undocumented)
	line := Line(c)
	assert.Contains(t, line, "*NOP")
}

func TestLineAbsoluteShowsValue(t *testing.T) {
	c := newTestCpu(t, []byte{0xAD, 0x00, 0x00}) // LDA $0000
	line := Line(c)
	assert.Contains(t, line, "$0000 = 00")
}

func TestLineJMPAbsoluteOmitsValue(t *testing.T) {
	c := newTestCpu(t, []byte{0x4C, 0x00, 0x80}) // JMP $8000
	line := Line(c)
	assert.Contains(t, line, "JMP $8000")
	assert.NotContains(t, line, "JMP $8000 =")
}

func TestLineAccumulatorShowsA(t *testing.T) {
	c := newTestCpu(t, []byte{0x0A}) // ASL A
	line := Line(c)
	assert.Contains(t, line, "ASL A")
}

func TestLineRegisterTrailer(t *testing.T) {
	c := newTestCpu(t, []byte{0xEA}) // NOP
	c.A, c.X, c.Y = 1, 2, 3
	line := Line(c)
	assert.Contains(t, line, "A:01 X:02 Y:03")
	assert.Contains(t, line, "SP:")
}
