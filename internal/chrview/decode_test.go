package chrview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTileAllZeroIsBlank(t *testing.T) {
	table := make([]byte, bytesPerTile)
	pixels := DecodeTile(table, 0)
	for _, row := range pixels {
		for _, px := range row {
			assert.Equal(t, uint8(0), px)
		}
	}
}

func TestDecodeTileCombinesPlanes(t *testing.T) {
	table := make([]byte, bytesPerTile)
	table[0] = 0b10000000 // plane 0, row 0, leftmost pixel low bit set
	table[8] = 0b10000000 // plane 1, row 0, leftmost pixel high bit set
	pixels := DecodeTile(table, 0)
	assert.Equal(t, uint8(3), pixels[0][0]) // both bits set -> value 3
	assert.Equal(t, uint8(0), pixels[0][1])
}

func TestDecodeTileOutOfRangeIsBlank(t *testing.T) {
	table := make([]byte, bytesPerTile) // only room for tile 0
	pixels := DecodeTile(table, 5)
	for _, row := range pixels {
		for _, px := range row {
			assert.Equal(t, uint8(0), px)
		}
	}
}

func TestDecodeCHRProducesFullImage(t *testing.T) {
	chr := make([]uint8, 8192)
	out := DecodeCHR(chr)
	assert.Len(t, out, ImageWidth*ImageHeight)
}

func TestDecodeCHRPadsShortInput(t *testing.T) {
	chr := make([]uint8, 16) // far short of 8KiB
	out := DecodeCHR(chr)
	assert.Len(t, out, ImageWidth*ImageHeight)
	for _, px := range out {
		assert.Equal(t, uint8(0), px) // all-zero CHR decodes to blank tiles
	}
}

func TestCountNonEmptyTilesCountsOnlyDrawnTiles(t *testing.T) {
	table := make([]byte, TilesPerTable*bytesPerTile)
	table[bytesPerTile*3] = 0xFF // tile index 3 has a non-blank row
	assert.Equal(t, 1, CountNonEmptyTiles(table))
}
