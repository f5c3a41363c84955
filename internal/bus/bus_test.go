package bus

import (
	"testing"

	"github.com/claude/gones6502/internal/cartridge"
	"github.com/claude/gones6502/internal/neserr"
	"github.com/claude/gones6502/internal/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCartridge(t *testing.T, prgBanks int) *cartridge.Cartridge {
	t.Helper()
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = byte(prgBanks)
	header[5] = 1
	data := append(header, make([]byte, prgBanks*16384+8192)...)
	cart, err := cartridge.Load(data)
	require.NoError(t, err)
	return cart
}

func TestRAMMirroring(t *testing.T) {
	b := New(testCartridge(t, 2), false)
	require.NoError(t, b.Write(0x0000, 0x42))
	v, err := b.Read(0x0800) // mirrors 0x0000
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)
}

func TestPRGMirroring16KiB(t *testing.T) {
	cart := testCartridge(t, 1)
	b := New(cart, false)
	v1, err := b.Read(0x8000)
	require.NoError(t, err)
	v2, err := b.Read(0xC000)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestRomWriteFailsWithoutEscape(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	err := b.Write(0x8000, 1)
	require.Error(t, err)
	var romWrite *neserr.RomWrite
	require.ErrorAs(t, err, &romWrite)
}

func TestRomWriteAllowedWithEscape(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	b.AllowRomWrites = true
	require.NoError(t, b.Write(0x8000, 1))
}

func TestPPURegisterDispatchWriteOnlyRead(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	_, err := b.Read(0x2000) // CTRL, write-only
	require.Error(t, err)
	var wor *neserr.WriteOnlyRead
	require.ErrorAs(t, err, &wor)
	assert.Equal(t, uint16(0x2000), wor.Addr)
}

func TestPPURegisterMirroringEvery8Bytes(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	require.NoError(t, b.Write(0x2000, 0x80))
	require.NoError(t, b.Write(0x2008, 0)) // mirrors $2000 (CTRL)

	require.NoError(t, b.Write(0x200B, 0x05)) // mirrors $2003 (OAMADDR)
	require.NoError(t, b.Write(0x3FFC, 0x77)) // mirrors $2004 (OAMDATA); oam[5] = 0x77
	require.NoError(t, b.Write(0x2003, 0x05))
	v, err := b.Read(0x200C) // mirrors $2004 (OAMDATA)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x77), v)
}

func TestOAMDMACopiesPageAndChargesCycles(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	for i := 0; i < 256; i++ {
		require.NoError(t, b.Write(uint16(i), uint8(i)))
	}
	require.NoError(t, b.Write(0x4014, 0x00))
	assert.GreaterOrEqual(t, b.Cycles(), uint64(513))

	require.NoError(t, b.Ppu().WriteRegister(ppu.RegOamAddr, 0))
	v, err := b.Ppu().ReadRegister(ppu.RegOamData)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), v)
}

func TestUnmappedAPURegionNonFatal(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	v, err := b.Read(0x4000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), v)
	require.NoError(t, b.Write(0x4000, 0xFF))
}

func TestTickAdvancesCyclesAndPPU3x(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	b.Tick(10)
	assert.Equal(t, uint64(10), b.Cycles())
	assert.Equal(t, 30, b.Ppu().Dot())
}

func TestSRAMReadWriteThroughBus(t *testing.T) {
	b := New(testCartridge(t, 1), false)
	require.NoError(t, b.Write(0x6000, 0x5A))
	v, err := b.Read(0x6000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x5A), v)
}
