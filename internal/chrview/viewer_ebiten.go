//go:build !headless
// +build !headless

package chrview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenViewer implements Viewer with a live Ebitengine window, grounded
// in the teacher's EbitengineBackend/EbitengineGame shape.
type ebitenViewer struct {
	game *tileGame
}

// NewViewer returns the graphical CHR viewer.
func NewViewer() Viewer {
	return &ebitenViewer{}
}

func (v *ebitenViewer) Run(chr []uint8) error {
	gray := DecodeCHR(chr)
	img := image.NewRGBA(image.Rect(0, 0, ImageWidth, ImageHeight))
	for i, g := range gray {
		img.Set(i%ImageWidth, i/ImageWidth, color.Gray{Y: g})
	}

	eimg := ebiten.NewImageFromImage(img)
	v.game = &tileGame{image: eimg}

	ebiten.SetWindowTitle("gones6502 - CHR viewer")
	ebiten.SetWindowSize(ImageWidth*3, ImageHeight*3)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v.game); err != nil {
		return fmt.Errorf("chrview: %w", err)
	}
	return nil
}

// tileGame implements ebiten.Game, drawing the pre-rendered pattern-table
// image scaled to fill the window.
type tileGame struct {
	image *ebiten.Image
}

func (g *tileGame) Update() error { return nil }

func (g *tileGame) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(ImageWidth), float64(sh)/float64(ImageHeight))
	screen.DrawImage(g.image, op)
}

func (g *tileGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
