package engine

import (
	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// Lanes describes the vertical lanes enemies descend in.
type Lanes struct {
	Left  int // X of the first lane's left edge
	Width int // Width of one lane
	Count int
}

// Road returns the horizontal span covered by all lanes.
func (l Lanes) Road() (left, right int) {
	return l.Left, l.Left + l.Width*l.Count
}

// LaneX returns the left edge of a sprite of width w centered in lane.
func (l Lanes) LaneX(lane, w int) int {
	return l.Left + lane*l.Width + (l.Width-w)/2
}

// Wave reports the result of one SpawnWave call.
type Wave struct {
	Gap   int   // Lane left empty
	Lanes []int // Lanes that received an enemy, in spawn order
}

// Director issues enemy waves.
type Director struct {
	lanes Lanes
	cfg   config.EnemyConfig
	rng   core.Random
	perm  []int
}

// NewDirector creates a spawn director for the given lane layout.
func NewDirector(lanes Lanes, cfg config.EnemyConfig, rng core.Random) *Director {
	return &Director{
		lanes: lanes,
		cfg:   cfg,
		rng:   rng,
		perm:  make([]int, lanes.Count),
	}
}

// ShouldSpawn reports whether a new wave is due: no enemy is active, or
// the furthest-advanced enemy has travelled more than SpawnGap pixels past
// the top of the field.
func (d *Director) ShouldSpawn(enemies *Pool[Enemy]) bool {
	if enemies.Count() == 0 {
		return true
	}
	lead := false
	enemies.Each(func(_ int, e *Enemy) {
		if e.Y > float64(d.cfg.SpawnGap) {
			lead = true
		}
	})
	return lead
}

// SpawnWave fills free enemy slots. One lane of a random permutation is
// kept empty as the gap; the others receive enemies with strictly
// increasing negative y offsets so they enter staggered.
func (d *Director) SpawnWave(enemies *Pool[Enemy], difficulty float64, now uint32) Wave {
	d.shuffle()
	wave := Wave{Gap: d.perm[0]}

	// Start above anything still queued above the field.
	start := -float64(d.cfg.Height)
	enemies.Each(func(_ int, e *Enemy) {
		if top := e.Y - float64(d.cfg.Height+d.cfg.Stagger); top < start {
			start = top
		}
	})

	for i, lane := range d.perm[1:] {
		_, e, ok := enemies.Acquire()
		if !ok {
			break
		}
		jitter := float64(d.rng.Int(0, 1000)) / 1000 * d.cfg.SpeedJitter
		*e = Enemy{
			X:          float64(d.lanes.LaneX(lane, d.cfg.Width)),
			Y:          start - float64(i*d.cfg.Stagger),
			W:          d.cfg.Width,
			H:          d.cfg.Height,
			Speed:      d.cfg.BaseSpeed + jitter + difficulty*d.cfg.DifficultyScale,
			Lane:       lane,
			NextFireAt: now + d.fireDelay(),
		}
		wave.Lanes = append(wave.Lanes, lane)
	}
	return wave
}

// fireDelay draws a uniformly random delay from the fire window.
func (d *Director) fireDelay() uint32 {
	return uint32(d.rng.Int(int(d.cfg.FireMinMs), int(d.cfg.FireMaxMs)))
}

// shuffle refreshes perm with a Fisher-Yates permutation of lane indices.
func (d *Director) shuffle() {
	for i := range d.perm {
		d.perm[i] = i
	}
	for i := len(d.perm) - 1; i > 0; i-- {
		j := d.rng.Int(0, i+1)
		d.perm[i], d.perm[j] = d.perm[j], d.perm[i]
	}
}
