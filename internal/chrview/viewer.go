package chrview

// Viewer displays (or summarizes, in headless mode) a cartridge's decoded
// CHR pattern tables.
type Viewer interface {
	// Run blocks until the viewer window is closed (graphical backend) or
	// returns immediately after printing a summary (headless backend).
	Run(chr []uint8) error
}
