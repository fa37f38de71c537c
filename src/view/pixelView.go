//go:build ebiten

package view

import (
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"torlife/src/universe"
)

//PixelView draws the grid into the ebiten window, scale x scale pixels per cell
type PixelView struct {
	u     universe.Universe
	img   *ebiten.Image
	buf   []byte
	scale int

	onColor  color.Color
	offColor color.Color
}

func NewPixelView(scale int) *PixelView {
	if scale <= 0 {
		scale = 1
	}
	return &PixelView{scale: scale, onColor: color.White, offColor: color.Black}
}

func (p *PixelView) Register(u universe.Universe) {
	p.u = u
	o := u.Options()
	p.img = ebiten.NewImage(o.Width, o.Height)
	p.buf = make([]byte, 4*o.Width*o.Height)
}

//Refresh does nothing, the window redraws the latest snapshot on every frame
func (p *PixelView) Refresh() {}

//Start opens the window, blocks until it is closed
func (p *PixelView) Start() {
	o := p.u.Options()
	ebiten.SetWindowTitle("torlife")
	ebiten.SetWindowSize(o.Width*p.scale, o.Height*p.scale)
	if err := ebiten.RunGame(p); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Panicln(err)
	}
}

//Update handles the keyboard and the mouse, the simulation itself is driven by the universe
func (p *PixelView) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if p.u.Status().RunningMode == universe.RunningStateRun {
			p.u.Stop()
		} else {
			p.u.Run()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		p.u.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		p.u.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		p.u.SettleWithRandomData()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		row, col := cellAt(x, y, p.scale)
		_ = p.u.InverseCell(row, col)
	}
	return nil
}

func (p *PixelView) Draw(screen *ebiten.Image) {
	fillCellsRGBA(p.buf, p.u.Snapshot(), p.onColor, p.offColor)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(p.scale), float64(p.scale))
	screen.DrawImage(p.img, op)
}

func (p *PixelView) Layout(_ int, _ int) (int, int) {
	o := p.u.Options()
	return o.Width * p.scale, o.Height * p.scale
}
