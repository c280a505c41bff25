// Package maze implements the grid-maze tank game: the player's tank moves
// tile by tile through a generated maze and shoots wandering enemy tanks.
// Touching an enemy ends the round; destroyed enemies return after a delay
// at the tile farthest from the player.
package maze

import (
	"math"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/input"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
)

// ID is the registry identifier of the variant.
const ID = "maze"

const dirNone Dir = -1

// walker moves a tank from tile to tile over a fixed number of frames.
type walker struct {
	cell   Point
	next   Point
	dir    Dir
	moving bool
	step   int
	frames int
}

func (w *walker) start(d Dir, frames int) {
	w.dir = d
	w.next = w.cell.Add(d)
	w.moving = true
	w.step = 0
	w.frames = max(frames, 1)
}

// advance moves one frame along the current step and reports arrival.
func (w *walker) advance() bool {
	if !w.moving {
		return false
	}
	w.step++
	if w.step < w.frames {
		return false
	}
	w.cell = w.next
	w.moving = false
	w.step = 0
	return true
}

// offset returns the pixel offset of the walker from the grid origin.
func (w *walker) offset(cell int) (int, int) {
	x, y := w.cell.X*cell, w.cell.Y*cell
	if w.moving {
		x += (w.next.X - w.cell.X) * cell * w.step / w.frames
		y += (w.next.Y - w.cell.Y) * cell * w.step / w.frames
	}
	return x, y
}

// occupies reports whether the walker is on or entering p.
func (w *walker) occupies(p Point) bool {
	return w.cell == p || (w.moving && w.next == p)
}

// Game implements engine.Variant.
type Game struct {
	env    engine.Env
	cfg    config.MazeConfig
	margin int
	reward int
	grid   *Grid
	origin Point // Pixel position of tile (0, 0)
	inset  int   // Offset of a tank inside its tile

	player   walker
	turned   bool // Player changed facing without moving
	enemies  *engine.Pool[engine.Enemy]
	walkers  []walker // Indexed by enemy slot
	respawns []uint32 // Pending respawn times
	shots    *engine.Pool[engine.Bullet]
	differ   *engine.Differ

	score int
	over  bool
}

// New creates a maze game. The maze is generated on Reset.
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
	return "Maze Tanks"
}

// Validate checks the maze layout.
func (g *Game) Validate(cfg config.EngineConfig) error {
	return cfg.ValidateMaze()
}

// Reset generates a new maze and starts a round in it.
func (g *Game) Reset(env engine.Env, now uint32) {
	g.env = env.WithDefaults()
	g.cfg = env.Config.Maze
	g.margin = env.Config.Collision.Margin
	g.reward = env.Config.Scoring.EnemyReward

	grid := Generate(g.cfg.Cols, g.cfg.Rows, g.cfg.Braiding, env.Rand)
	g.layout(grid, now)
}

// layout places every tank in grid and draws it.
func (g *Game) layout(grid *Grid, now uint32) {
	d := g.env.Display
	cell := g.cfg.CellSize
	g.grid = grid
	g.origin = Point{(d.Width() - grid.Cols*cell) / 2, (d.Height() - grid.Rows*cell) / 2}
	g.inset = (cell - g.cfg.TankSize) / 2

	if g.enemies == nil || g.enemies.Cap() != g.cfg.EnemyCount {
		g.enemies = engine.NewPool[engine.Enemy](g.cfg.EnemyCount)
		g.walkers = make([]walker, g.cfg.EnemyCount)
	}
	if g.shots == nil {
		g.shots = engine.NewPool[engine.Bullet](1)
	}
	g.enemies.Reset()
	g.shots.Reset()
	g.respawns = g.respawns[:0]
	g.differ = engine.NewDiffer(d, engine.FlatBackground(colorFloor), 2+g.enemies.Cap())

	start := Point{1, 1}
	if grid.Wall(start) {
		start = grid.Floors()[0]
	}
	g.player = walker{cell: start, dir: DirRight}
	g.turned = false
	g.score = 0
	g.over = false

	for g.enemies.Free() > 0 {
		if !g.spawnEnemy() {
			break
		}
	}

	drawGrid(d, grid, g.origin, cell)
	g.env.Logger.Debug("maze ready", "cols", grid.Cols, "rows", grid.Rows, "floors", len(grid.Floors()))
}

// spawnEnemy places an enemy on the free tile farthest from the player.
func (g *Game) spawnEnemy() bool {
	at, ok := g.grid.Farthest(g.player.cell, g.occupied)
	if !ok {
		return false
	}
	slot, e, ok := g.enemies.Acquire()
	if !ok {
		return false
	}
	g.walkers[slot] = walker{cell: at, dir: DirUp}
	size := g.cfg.TankSize
	*e = engine.Enemy{W: size, H: size}
	g.syncEnemy(slot, e)
	return true
}

func (g *Game) occupied(p Point) bool {
	if g.player.occupies(p) {
		return true
	}
	for slot := range g.walkers {
		if g.enemies.Active(slot) && g.walkers[slot].occupies(p) {
			return true
		}
	}
	return false
}

// tankRect returns the screen rectangle of a walker.
func (g *Game) tankRect(w *walker) core.Rect {
	x, y := w.offset(g.cfg.CellSize)
	size := g.cfg.TankSize
	return core.NewRect(g.origin.X+x+g.inset, g.origin.Y+y+g.inset, size, size)
}

func (g *Game) syncEnemy(slot int, e *engine.Enemy) {
	r := g.tankRect(&g.walkers[slot])
	e.X, e.Y = float64(r.X), float64(r.Y)
}

// steer returns the direction the stick points to, using the dominant axis.
// Y grows downward like the screen.
func (g *Game) steer(ctl input.Controls) Dir {
	x, y := float64(ctl.X), float64(ctl.Y)
	th := g.cfg.SteerThreshold
	if math.Abs(x) >= math.Abs(y) {
		switch {
		case x > th:
			return DirRight
		case x < -th:
			return DirLeft
		}
		return dirNone
	}
	switch {
	case y > th:
		return DirDown
	case y < -th:
		return DirUp
	}
	return dirNone
}

// Update moves the tanks and the bullet by one frame.
func (g *Game) Update(f engine.Frame) {
	if g.over {
		return
	}

	if d := g.steer(f.Controls); d != dirNone && !g.player.moving {
		if d != g.player.dir {
			g.turned = true
		}
		g.player.dir = d
		if !g.grid.Wall(g.player.cell.Add(d)) {
			g.player.start(d, g.cfg.MoveFrames)
		}
	}
	g.player.advance()

	if f.Controls.Fire {
		g.fire()
	}

	g.respawn(f.Now)

	frames := max(1, int(math.Round(float64(g.cfg.EnemyFrames)/max(f.Difficulty, 1))))
	g.enemies.Each(func(slot int, e *engine.Enemy) {
		w := &g.walkers[slot]
		if !w.moving {
			g.wander(w, frames)
		}
		w.advance()
		g.syncEnemy(slot, e)
	})

	maze := core.NewRect(g.origin.X, g.origin.Y, g.grid.Cols*g.cfg.CellSize, g.grid.Rows*g.cfg.CellSize)
	engine.StepBullets(g.shots, maze)
	g.shots.Each(func(slot int, b *engine.Bullet) {
		if g.blocked(b.Rect()) {
			g.shots.Release(slot)
		}
	})
}

// fire launches the single bullet from the tank's center.
func (g *Game) fire() {
	_, b, ok := g.shots.Acquire()
	if !ok {
		return
	}
	size := g.cfg.BulletSize
	cx, cy := g.tankRect(&g.player).Center()
	dd := g.player.dir.Delta()
	*b = engine.Bullet{
		X:  float64(cx - size/2),
		Y:  float64(cy - size/2),
		VX: float64(dd.X) * g.cfg.BulletSpeed,
		VY: float64(dd.Y) * g.cfg.BulletSpeed,
		W:  size,
		H:  size,
	}
}

// wander picks the next step of an enemy: any open direction except
// straight back, unless the tile is a dead end.
func (g *Game) wander(w *walker, frames int) {
	exits := g.grid.Exits(w.cell)
	if len(exits) == 0 {
		return
	}
	if len(exits) > 1 {
		back := w.dir.Reverse()
		for i, d := range exits {
			if d == back {
				exits = append(exits[:i], exits[i+1:]...)
				break
			}
		}
	}
	w.start(exits[g.env.Rand.Int(0, len(exits))], frames)
}

func (g *Game) respawn(now uint32) {
	kept := g.respawns[:0]
	for _, at := range g.respawns {
		if core.Reached(now, at) && g.spawnEnemy() {
			continue
		}
		kept = append(kept, at)
	}
	g.respawns = kept
}

// blocked reports whether r touches a wall tile.
func (g *Game) blocked(r core.Rect) bool {
	cell := g.cfg.CellSize
	x0, x1 := floorDiv(r.X-g.origin.X, cell), floorDiv(r.Right()-1-g.origin.X, cell)
	y0, y1 := floorDiv(r.Y-g.origin.Y, cell), floorDiv(r.Bottom()-1-g.origin.Y, cell)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g.grid.Wall(Point{x, y}) {
				return true
			}
		}
	}
	return false
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Collide resolves bullet hits and tank contact.
func (g *Game) Collide(f engine.Frame) {
	if g.over {
		return
	}
	engine.CollideBullets(g.shots, g.enemies, g.margin, func(_, _ int, at core.Rect) {
		g.score += g.reward
		g.respawns = append(g.respawns, f.Now+g.cfg.RespawnMs)
		g.explode(at)
	})

	pr := g.tankRect(&g.player)
	if slot, hit := engine.CollideBodies(g.enemies, pr); hit {
		g.env.Logger.Debug("tank contact", "enemy", slot, "score", g.score)
		g.over = true
		g.explode(pr)
	}
}

func (g *Game) explode(r core.Rect) {
	drawExplosion(g.env.Display, r)
	g.env.Clock.Sleep(g.env.Config.Collision.ExplosionMs)
	g.differ.Erase(r)
}

// Render draws the frame's changes.
func (g *Game) Render(engine.Frame) {
	pr := g.tankRect(&g.player)
	if g.turned && !g.over {
		g.differ.Erase(pr)
		g.turned = false
	}
	g.differ.Sync(0, !g.over, pr, playerSprites[g.player.dir])

	for i := 0; i < g.enemies.Cap(); i++ {
		g.differ.Sync(1+i, g.enemies.Active(i), g.enemies.At(i).Rect(), enemySprites[g.walkers[i].dir])
	}
	b := 1 + g.enemies.Cap()
	g.differ.Sync(b, g.shots.Active(0), g.shots.At(0).Rect(), drawBullet)
	g.differ.Flush()
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Over reports whether the player's tank was destroyed.
func (g *Game) Over() bool {
	return g.over
}
