// Package lanes implements the lane-dodge shooter: enemy cars descend in
// vertical lanes, the player's car moves along the bottom of the road and
// shoots them down. A shot or a collision with an enemy ends the round.
package lanes

import (
	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
)

// ID is the registry identifier of the variant.
const ID = "lanes"

// Render slot layout: player, then enemies, then player and enemy bullets.
const slotPlayer = 0

// Game implements engine.Variant.
type Game struct {
	env   engine.Env
	cfg   config.EngineConfig
	field core.Rect
	lanes engine.Lanes
	bg    engine.Background
	hud   core.Rect

	player   engine.Player
	enemies  *engine.Pool[engine.Enemy]
	shots    *engine.Pool[engine.Bullet] // Player bullets
	incoming *engine.Pool[engine.Bullet] // Enemy bullets
	director *engine.Director
	differ   *engine.Differ

	playerShot engine.Shot
	enemyShot  engine.Shot
	window     engine.FireWindow

	score int
	shown int // Score currently drawn on the HUD, -1 = none
	kills int
	over  bool
}

// New creates a lane-dodge game. Pools are allocated on Reset.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() engine.Variant {
		return New()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Lane Dodge"
}

// Validate checks the lane layout.
func (g *Game) Validate(cfg config.EngineConfig) error {
	return cfg.ValidateLanes()
}

// Reset starts a new round and draws the road.
func (g *Game) Reset(env engine.Env, now uint32) {
	g.env = env.WithDefaults()
	g.cfg = env.Config
	cfg := &g.cfg
	d := env.Display

	g.field = core.NewRect(0, 0, d.Width(), d.Height())
	road := cfg.Lanes.Count * cfg.Lanes.Width
	g.lanes = engine.Lanes{Left: (d.Width() - road) / 2, Width: cfg.Lanes.Width, Count: cfg.Lanes.Count}
	g.bg = roadBackground(g.lanes, cfg.Lanes.EdgeWidth)
	g.hud = core.NewRect(2, 2, g.lanes.Left-cfg.Lanes.EdgeWidth-4, core.GlyphH)

	if g.enemies == nil || g.enemies.Cap() != cfg.Enemy.Capacity {
		g.enemies = engine.NewPool[engine.Enemy](cfg.Enemy.Capacity)
	}
	if g.shots == nil || g.shots.Cap() != cfg.Bullets.PlayerCapacity {
		g.shots = engine.NewPool[engine.Bullet](cfg.Bullets.PlayerCapacity)
	}
	if g.incoming == nil || g.incoming.Cap() != cfg.Bullets.EnemyCapacity {
		g.incoming = engine.NewPool[engine.Bullet](cfg.Bullets.EnemyCapacity)
	}
	g.enemies.Reset()
	g.shots.Reset()
	g.incoming.Reset()

	g.director = engine.NewDirector(g.lanes, cfg.Enemy, env.Rand)
	g.differ = engine.NewDiffer(d, g.bg, 1+g.enemies.Cap()+g.shots.Cap()+g.incoming.Cap())

	left, right := g.lanes.Road()
	g.player = engine.Player{
		X: float64(left+right-cfg.Player.Width) / 2,
		Y: d.Height() - cfg.Player.Height - cfg.Player.BottomMargin,
		W: cfg.Player.Width,
		H: cfg.Player.Height,
	}
	g.playerShot = engine.Shot{W: cfg.Bullets.Width, H: cfg.Bullets.Height, Speed: cfg.Bullets.PlayerSpeed}
	g.enemyShot = engine.Shot{W: cfg.Bullets.Width, H: cfg.Bullets.Height, Speed: cfg.Bullets.EnemySpeed}
	g.window = engine.FireWindow{MinMs: cfg.Enemy.FireMinMs, MaxMs: cfg.Enemy.FireMaxMs}

	g.score = 0
	g.shown = -1
	g.kills = 0
	g.over = false

	engine.Paint(d, g.bg, g.field)
}

// Update moves everything by one frame.
func (g *Game) Update(f engine.Frame) {
	if g.over {
		return
	}
	cfg := &g.cfg
	left, right := g.lanes.Road()

	engine.StepPlayer(&g.player, float64(f.Controls.X), cfg.Player.MaxSpeed, cfg.Player.Accel, left, right)
	g.player.TryFire(g.shots, f.Controls.Fire, f.Now, cfg.Player.FireCooldownMs, g.playerShot)

	if g.director.ShouldSpawn(g.enemies) {
		wave := g.director.SpawnWave(g.enemies, f.Difficulty, f.Now)
		if len(wave.Lanes) > 0 {
			g.env.Logger.Debug("wave", "gap", wave.Gap, "lanes", wave.Lanes, "difficulty", f.Difficulty)
		}
	}

	engine.StepEnemies(g.enemies, cfg.Enemy.SpeedMultiplier, g.field)
	engine.StepBullets(g.shots, g.field)
	engine.StepBullets(g.incoming, g.field)
	engine.FireEnemies(g.enemies, g.incoming, f.Now, g.field, g.enemyShot, g.window.Scale(f.Difficulty), g.env.Rand)
}

// Collide resolves bullet hits and body contact.
func (g *Game) Collide(engine.Frame) {
	if g.over {
		return
	}
	margin := g.cfg.Collision.Margin

	engine.CollideBullets(g.shots, g.enemies, margin, func(_, _ int, at core.Rect) {
		g.score += g.cfg.Scoring.EnemyReward
		g.kills++
		g.explode(at)
	})

	pr := g.player.Rect()
	if engine.CollidePlayer(g.incoming, pr, margin) {
		g.env.Logger.Debug("player shot", "score", g.score, "kills", g.kills)
		g.over = true
	}
	if slot, hit := engine.CollideBodies(g.enemies, pr); hit {
		g.env.Logger.Debug("player rammed", "enemy", slot, "score", g.score, "kills", g.kills)
		g.enemies.Release(slot)
		g.over = true
	}
	if g.over {
		g.explode(pr)
	}
}

// explode flashes r and erases it. Gameplay is paused while it shows.
func (g *Game) explode(r core.Rect) {
	drawExplosion(g.env.Display, r)
	g.env.Clock.Sleep(g.cfg.Collision.ExplosionMs)
	g.differ.Erase(r)
}

// Render draws the frame's changes.
func (g *Game) Render(engine.Frame) {
	slot := slotPlayer
	g.differ.Sync(slot, !g.over, g.player.Rect(), drawPlayer)
	slot++

	for i := 0; i < g.enemies.Cap(); i++ {
		g.differ.Sync(slot, g.enemies.Active(i), g.enemies.At(i).Rect(), drawEnemy)
		slot++
	}
	for i := 0; i < g.shots.Cap(); i++ {
		g.differ.Sync(slot, g.shots.Active(i), g.shots.At(i).Rect(), drawPlayerBullet)
		slot++
	}
	for i := 0; i < g.incoming.Cap(); i++ {
		g.differ.Sync(slot, g.incoming.Active(i), g.incoming.At(i).Rect(), drawEnemyBullet)
		slot++
	}
	g.differ.Flush()

	if g.score != g.shown {
		drawScore(g.env.Display, g.hud, g.bg, g.score)
		g.shown = g.score
	}
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Over reports whether the player was hit.
func (g *Game) Over() bool {
	return g.over
}
