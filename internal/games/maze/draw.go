package maze

import (
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
)

const (
	colorFloor = core.ColorBlack
	colorWall  = core.ColorBlue
)

var (
	playerSprites = tankSprites(core.ColorGreen, core.ColorDarkGreen)
	enemySprites  = tankSprites(core.ColorRed, core.ColorBrown)
)

func tankSprites(body, barrel core.Color) [4]engine.Sprite {
	var s [4]engine.Sprite
	for d := DirUp; d <= DirLeft; d++ {
		s[d] = func(display core.Display, r core.Rect) {
			drawTank(display, r, body, barrel, d)
		}
	}
	return s
}

func drawTank(d core.Display, r core.Rect, body, barrel core.Color, dir Dir) {
	d.FillRect(r.X, r.Y, r.W, r.H, body)
	cx, cy := r.Center()
	switch dir {
	case DirUp:
		d.FillRect(cx-1, r.Y, 3, cy-r.Y+1, barrel)
	case DirDown:
		d.FillRect(cx-1, cy, 3, r.Bottom()-cy, barrel)
	case DirLeft:
		d.FillRect(r.X, cy-1, cx-r.X+1, 3, barrel)
	case DirRight:
		d.FillRect(cx, cy-1, r.Right()-cx, 3, barrel)
	}
}

func drawBullet(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorYellow)
}

func drawExplosion(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorOrange)
	in := r.Inflate(-2)
	d.FillRect(in.X, in.Y, in.W, in.H, core.ColorYellow)
}

// drawGrid paints every tile once; walls are never erased afterwards.
func drawGrid(d core.Display, g *Grid, origin Point, cell int) {
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := colorFloor
			if g.Wall(Point{x, y}) {
				c = colorWall
			}
			d.FillRect(origin.X+x*cell, origin.Y+y*cell, cell, cell, c)
		}
	}
}
