package lanes

import (
	"strconv"

	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
)

// Road palette
const (
	colorShoulder = core.ColorDarkGreen
	colorEdge     = core.ColorWhite
	colorRoad     = core.ColorDarkGray
	colorDivider  = core.ColorGray
)

// roadBackground returns the fill of every display column: shoulders,
// edge lines, lane dividers and asphalt.
func roadBackground(l engine.Lanes, edge int) engine.Background {
	left, right := l.Road()
	return func(x int) core.Color {
		switch {
		case x < left-edge || x >= right+edge:
			return colorShoulder
		case x < left || x >= right:
			return colorEdge
		case x > left && (x-left)%l.Width == 0:
			return colorDivider
		}
		return colorRoad
	}
}

func drawPlayer(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorCyan)
	d.FillRect(r.X+3, r.Y+2, r.W-6, 3, core.ColorBlue) // Windshield
	d.FillRect(r.X, r.Y+1, 2, 4, core.ColorBlack)
	d.FillRect(r.Right()-2, r.Y+1, 2, 4, core.ColorBlack)
	d.FillRect(r.X, r.Bottom()-5, 2, 4, core.ColorBlack)
	d.FillRect(r.Right()-2, r.Bottom()-5, 2, 4, core.ColorBlack)
}

func drawEnemy(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorRed)
	d.FillRect(r.X+4, r.Bottom()-6, r.W-8, 3, core.ColorBlack) // Rear window
	d.FillRect(r.X+2, r.Y+1, 3, 2, core.ColorYellow)
	d.FillRect(r.Right()-5, r.Y+1, 3, 2, core.ColorYellow)
}

func drawPlayerBullet(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorYellow)
}

func drawEnemyBullet(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorMagenta)
}

func drawExplosion(d core.Display, r core.Rect) {
	d.FillRect(r.X, r.Y, r.W, r.H, core.ColorOrange)
	in := r.Inflate(-r.H / 4)
	d.FillRect(in.X, in.Y, in.W, in.H, core.ColorYellow)
}

// drawScore repaints the HUD box on the shoulder.
func drawScore(d core.Display, hud core.Rect, bg engine.Background, score int) {
	engine.Paint(d, bg, hud)
	d.DrawText(hud.X, hud.Y, strconv.Itoa(score), 1, core.ColorWhite)
}
