package view

import (
	"image/color"

	"torlife/src/universe"
)

//fillCellsRGBA converts the grid into RGBA pixels in buf, one pixel per cell
//buf must hold 4*width*height bytes
func fillCellsRGBA(buf []byte, g *universe.Grid, on color.Color, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	g.Walk(func(row int, col int, c universe.Cell) {
		base := (row*g.Width() + col) * 4
		if c {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			return
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	})
}

//cellAt maps the window point to the grid cell for the given scale
func cellAt(x int, y int, scale int) (row int, col int) {
	if scale <= 0 {
		scale = 1
	}
	return y / scale, x / scale
}
