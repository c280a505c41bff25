package engine

import (
	"math"

	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// px converts a sub-pixel coordinate to the pixel that contains it.
func px(v float64) int {
	return int(math.Floor(v))
}

// Player is the single player-controlled entity of a session.
type Player struct {
	X, VX      float64 // Horizontal position (left edge) and velocity
	Y          int     // Fixed row (top edge)
	W, H       int
	LastFireAt uint32
	fired      bool // LastFireAt is meaningful
}

// Rect returns the player's on-screen rectangle.
func (p *Player) Rect() core.Rect {
	return core.NewRect(px(p.X), p.Y, p.W, p.H)
}

// Enemy is a descending enemy.
type Enemy struct {
	X, Y       float64
	W, H       int
	Speed      float64 // Pixels per frame before the global multiplier
	Lane       int
	NextFireAt uint32
}

// Rect returns the enemy's on-screen rectangle.
func (e *Enemy) Rect() core.Rect {
	return core.NewRect(px(e.X), px(e.Y), e.W, e.H)
}

// Bullet moves at constant velocity along one axis.
// For vertical bullets the sign of VY gives the direction.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	W, H   int
}

// Rect returns the bullet's on-screen rectangle.
func (b *Bullet) Rect() core.Rect {
	return core.NewRect(px(b.X), px(b.Y), b.W, b.H)
}
