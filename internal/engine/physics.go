package engine

import (
	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// Shot describes the bullets an entity fires.
type Shot struct {
	W, H  int
	Speed float64 // Pixels per frame, always positive
}

// StepPlayer moves the player's velocity toward signal*maxSpeed by at most
// accel, integrates the position and clamps it to [minX, maxX-W].
// Velocity is zeroed when the player is stopped by a bound.
func StepPlayer(p *Player, signal, maxSpeed, accel float64, minX, maxX int) {
	target := core.ClampF(signal, -1, 1) * maxSpeed
	p.VX += core.ClampF(target-p.VX, -accel, accel)
	p.X += p.VX

	lo, hi := float64(minX), float64(maxX-p.W)
	if p.X < lo {
		p.X, p.VX = lo, 0
	}
	if p.X > hi {
		p.X, p.VX = hi, 0
	}
}

// TryFire fires a bullet upward from the player's nose while fire is held,
// at most once per cooldown. A fire with no free bullet slot is dropped and
// does not start the cooldown.
func (p *Player) TryFire(bullets *Pool[Bullet], held bool, now, cooldown uint32, shot Shot) bool {
	if !held {
		return false
	}
	if p.fired && core.Since(now, p.LastFireAt) < cooldown {
		return false
	}
	_, b, ok := bullets.Acquire()
	if !ok {
		return false
	}
	*b = Bullet{
		X:  p.X + float64(p.W-shot.W)/2,
		Y:  float64(p.Y - shot.H),
		VY: -shot.Speed,
		W:  shot.W,
		H:  shot.H,
	}
	p.LastFireAt = now
	p.fired = true
	return true
}

// StepEnemies moves every enemy down by Speed*multiplier. Enemies whose top
// edge passes the bottom of field are released.
func StepEnemies(enemies *Pool[Enemy], multiplier float64, field core.Rect) {
	enemies.Each(func(slot int, e *Enemy) {
		e.Y += e.Speed * multiplier
		if e.Rect().Y >= field.Bottom() {
			enemies.Release(slot)
		}
	})
}

// StepBullets moves every bullet by its velocity and releases those that
// no longer overlap field.
func StepBullets(bullets *Pool[Bullet], field core.Rect) {
	bullets.Each(func(slot int, b *Bullet) {
		b.X += b.VX
		b.Y += b.VY
		if !b.Rect().Intersects(field) {
			bullets.Release(slot)
		}
	})
}

// FireWindow is the random interval between two shots of one enemy.
type FireWindow struct {
	MinMs, MaxMs uint32
}

// Scale shortens the window by difficulty; values below 1 leave it as is.
func (w FireWindow) Scale(difficulty float64) FireWindow {
	if difficulty <= 1 {
		return w
	}
	return FireWindow{
		MinMs: uint32(float64(w.MinMs) / difficulty),
		MaxMs: uint32(float64(w.MaxMs) / difficulty),
	}
}

func (w FireWindow) next(rng core.Random) uint32 {
	return uint32(rng.Int(int(w.MinMs), int(w.MaxMs)))
}

// FireEnemies lets every visible enemy whose fire time has passed shoot
// downward. The enemy is rescheduled even when the bullet pool is full.
// It returns the number of bullets fired.
func FireEnemies(enemies *Pool[Enemy], bullets *Pool[Bullet], now uint32, field core.Rect, shot Shot, window FireWindow, rng core.Random) int {
	fired := 0
	enemies.Each(func(_ int, e *Enemy) {
		if !core.Reached(now, e.NextFireAt) || !e.Rect().Intersects(field) {
			return
		}
		e.NextFireAt = now + window.next(rng)
		_, b, ok := bullets.Acquire()
		if !ok {
			return
		}
		*b = Bullet{
			X:  e.X + float64(e.W-shot.W)/2,
			Y:  e.Y + float64(e.H),
			VY: shot.Speed,
			W:  shot.W,
			H:  shot.H,
		}
		fired++
	})
	return fired
}
