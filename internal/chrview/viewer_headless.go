//go:build headless
// +build headless

package chrview

import "fmt"

// headlessViewer implements Viewer without a display, grounded in the
// teacher's HeadlessBackend: it prints a plain summary instead of opening
// a window, so `view` stays usable under CI.
type headlessViewer struct{}

// NewViewer returns the headless CHR viewer, selected by the "headless"
// build tag (mirroring the teacher's graphics-backend split).
func NewViewer() Viewer {
	return &headlessViewer{}
}

func (v *headlessViewer) Run(chr []uint8) error {
	const tableSize = 4096
	padded := make([]uint8, 2*tableSize)
	copy(padded, chr)

	left := CountNonEmptyTiles(padded[:tableSize])
	right := CountNonEmptyTiles(padded[tableSize:])

	fmt.Printf("CHR pattern table 0: %d/%d non-empty tiles\n", left, TilesPerTable)
	fmt.Printf("CHR pattern table 1: %d/%d non-empty tiles\n", right, TilesPerTable)
	return nil
}
