package maze

import "github.com/vovakirdan/handheld-arcade/internal/core"

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Dir is a movement direction on the grid.
type Dir int

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

var dirDelta = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Delta returns the unit step of d.
func (d Dir) Delta() Point {
	return dirDelta[d]
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	return (d + 2) % 4
}

// Add returns p moved one tile in d.
func (p Point) Add(d Dir) Point {
	dd := d.Delta()
	return Point{p.X + dd.X, p.Y + dd.Y}
}

// Grid is a tile map where every tile is wall or floor. Rooms sit on odd
// coordinates; the tiles between two rooms are the walls the generator
// carves.
type Grid struct {
	Cols, Rows int
	wall       []bool
}

// NewGrid returns a grid filled with walls.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, wall: make([]bool, cols*rows)}
	for i := range g.wall {
		g.wall[i] = true
	}
	return g
}

// In reports whether p lies on the grid.
func (g *Grid) In(p Point) bool {
	return p.X >= 0 && p.X < g.Cols && p.Y >= 0 && p.Y < g.Rows
}

// Wall reports whether p is a wall. Tiles off the grid are walls.
func (g *Grid) Wall(p Point) bool {
	if !g.In(p) {
		return true
	}
	return g.wall[p.Y*g.Cols+p.X]
}

// SetWall sets the tile at p.
func (g *Grid) SetWall(p Point, wall bool) {
	if g.In(p) {
		g.wall[p.Y*g.Cols+p.X] = wall
	}
}

// Exits returns the open directions from p.
func (g *Grid) Exits(p Point) []Dir {
	var exits []Dir
	for d := DirUp; d <= DirLeft; d++ {
		if !g.Wall(p.Add(d)) {
			exits = append(exits, d)
		}
	}
	return exits
}

// Floors returns every floor tile in row-major order.
func (g *Grid) Floors() []Point {
	var floors []Point
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if p := (Point{x, y}); !g.Wall(p) {
				floors = append(floors, p)
			}
		}
	}
	return floors
}

// Distances returns the walking distance from start to every tile, -1 for
// unreachable tiles and walls.
func (g *Grid) Distances(start Point) []int {
	dist := make([]int, g.Cols*g.Rows)
	for i := range dist {
		dist[i] = -1
	}
	if g.Wall(start) {
		return dist
	}
	dist[start.Y*g.Cols+start.X] = 0
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for d := DirUp; d <= DirLeft; d++ {
			n := p.Add(d)
			if g.Wall(n) || dist[n.Y*g.Cols+n.X] >= 0 {
				continue
			}
			dist[n.Y*g.Cols+n.X] = dist[p.Y*g.Cols+p.X] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Farthest returns the reachable floor tile farthest from start for which
// skip returns false. Ties go to the first tile in row-major order.
func (g *Grid) Farthest(start Point, skip func(Point) bool) (Point, bool) {
	dist := g.Distances(start)
	best, found := Point{}, false
	bestDist := -1
	for i, d := range dist {
		p := Point{i % g.Cols, i / g.Cols}
		if d < 0 || d <= bestDist || (skip != nil && skip(p)) {
			continue
		}
		best, bestDist, found = p, d, true
	}
	return best, found
}

// Generate carves a maze with a recursive backtracker starting at (1, 1)
// and then opens one extra wall at a share of the dead ends given by
// braiding (0 = perfect maze, 1 = no dead ends). Even dimensions are
// rounded down to odd.
func Generate(cols, rows int, braiding float64, rng core.Random) *Grid {
	cols, rows = ensureOdd(cols), ensureOdd(rows)
	g := NewGrid(cols, rows)
	carve(g, Point{1, 1}, rng)
	if braiding > 0 {
		braid(g, braiding, rng)
	}
	return g
}

func ensureOdd(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// room reports whether p is an interior room position.
func (g *Grid) room(p Point) bool {
	return p.X > 0 && p.X < g.Cols-1 && p.Y > 0 && p.Y < g.Rows-1 && p.X%2 == 1 && p.Y%2 == 1
}

func jump(p Point, d Dir) Point {
	dd := d.Delta()
	return Point{p.X + 2*dd.X, p.Y + 2*dd.Y}
}

func carve(g *Grid, start Point, rng core.Random) {
	g.SetWall(start, false)
	stack := []Point{start}
	candidates := make([]Dir, 0, 4)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates = candidates[:0]
		for d := DirUp; d <= DirLeft; d++ {
			if n := jump(cur, d); g.room(n) && g.Wall(n) {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Int(0, len(candidates))]
		next := jump(cur, d)
		g.SetWall(cur.Add(d), false)
		g.SetWall(next, false)
		stack = append(stack, next)
	}
}

func braid(g *Grid, probability float64, rng core.Random) {
	candidates := make([]Dir, 0, 4)
	for y := 1; y < g.Rows-1; y += 2 {
		for x := 1; x < g.Cols-1; x += 2 {
			p := Point{x, y}
			if g.Wall(p) || len(g.Exits(p)) != 1 {
				continue
			}
			if float64(rng.Int(0, 1000)) >= probability*1000 {
				continue
			}
			candidates = candidates[:0]
			for d := DirUp; d <= DirLeft; d++ {
				if n := jump(p, d); g.room(n) && !g.Wall(n) && g.Wall(p.Add(d)) {
					candidates = append(candidates, d)
				}
			}
			if len(candidates) > 0 {
				g.SetWall(p.Add(candidates[rng.Int(0, len(candidates))]), false)
			}
		}
	}
}
