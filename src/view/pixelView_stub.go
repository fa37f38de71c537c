//go:build !ebiten

package view

import (
	"log"

	"torlife/src/universe"
)

//PixelView is a placeholder for the builds without the ebiten tag
type PixelView struct {
	u universe.Universe
}

func NewPixelView(int) *PixelView {
	return &PixelView{}
}

func (p *PixelView) Register(u universe.Universe) {
	p.u = u
}

func (p *PixelView) Refresh() {}

//Start reports that the window is not available and returns immediately
func (p *PixelView) Start() {
	log.Println("the pixel window requires building with the 'ebiten' tag: go build -tags ebiten ./src")
}
