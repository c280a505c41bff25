package engine

import "github.com/vovakirdan/handheld-arcade/internal/core"

// Offscreen is the cache sentinel for "nothing drawn in this slot".
var Offscreen = core.Rect{X: -1 << 20, Y: -1 << 20}

// Sprite draws an entity filling r.
type Sprite func(d core.Display, r core.Rect)

// Background returns the fill color of a pixel column. Erasing repaints
// each column of the erased rectangle with its own fill, so a rectangle
// straddling the road edge restores both road and shoulder.
type Background func(x int) core.Color

// FlatBackground returns a Background of a single color.
func FlatBackground(c core.Color) Background {
	return func(int) core.Color { return c }
}

type renderSlot struct {
	prev   core.Rect // What is on screen now
	next   core.Rect // What should be on screen after Flush
	active bool
	synced bool
	sprite Sprite
}

// FlushStats counts the draw operations of one Flush.
type FlushStats struct {
	Erased int
	Drawn  int
}

// Differ tracks what every entity slot last drew and turns each frame into
// the minimal set of erase and draw operations.
// The cache belongs to rendering only; gameplay never reads it.
type Differ struct {
	display core.Display
	bg      Background
	slots   []renderSlot
	erased  []core.Rect // Erased since the last Flush
	draw    []int
}

// NewDiffer creates a differ with n slots, all Offscreen.
func NewDiffer(display core.Display, bg Background, n int) *Differ {
	d := &Differ{
		display: display,
		bg:      bg,
		slots:   make([]renderSlot, n),
		erased:  make([]core.Rect, 0, n),
		draw:    make([]int, 0, n),
	}
	d.Reset()
	return d
}

// Reset forgets everything on screen. Call after redrawing the background.
func (d *Differ) Reset() {
	for i := range d.slots {
		d.slots[i] = renderSlot{prev: Offscreen, next: Offscreen}
	}
	d.erased = d.erased[:0]
}

// Len returns the number of slots.
func (d *Differ) Len() int {
	return len(d.slots)
}

// Cached returns the rectangle the slot last drew, or Offscreen.
func (d *Differ) Cached(slot int) core.Rect {
	return d.slots[slot].prev
}

// Sync records the state of a slot for this frame.
// Slots not synced before Flush are left untouched.
func (d *Differ) Sync(slot int, active bool, r core.Rect, sprite Sprite) {
	s := &d.slots[slot]
	s.active = active
	s.synced = true
	s.sprite = sprite
	if active {
		s.next = r
	} else {
		s.next = Offscreen
	}
}

// Erase repaints r with the background immediately. Sprites overlapping r
// that do not move are redrawn by the next Flush.
func (d *Differ) Erase(r core.Rect) {
	if r == Offscreen || r.Empty() {
		return
	}
	Paint(d.display, d.bg, r)
	d.erased = append(d.erased, r)
}

// Paint fills r with bg using one FillRect per run of equal columns.
func Paint(display core.Display, bg Background, r core.Rect) {
	x := r.X
	for x < r.Right() {
		c := bg(x)
		end := x + 1
		for end < r.Right() && bg(end) == c {
			end++
		}
		display.FillRect(x, r.Y, end-x, r.H, c)
		x = end
	}
}

// Flush applies the frame: every slot that went inactive or moved has its
// old rectangle erased exactly once, then moved sprites and unmoved sprites
// damaged by an erase are drawn, and the cache is updated as each draw is
// issued.
func (d *Differ) Flush() FlushStats {
	var stats FlushStats
	d.draw = d.draw[:0]

	for i := range d.slots {
		s := &d.slots[i]
		if !s.synced {
			continue
		}
		switch {
		case !s.active:
			if s.prev != Offscreen {
				d.Erase(s.prev)
				stats.Erased++
				s.prev = Offscreen
			}
		case s.prev == s.next:
			// Unmoved; may still need a redraw below.
		default:
			if s.prev != Offscreen {
				d.Erase(s.prev)
				stats.Erased++
				s.prev = Offscreen
			}
			d.draw = append(d.draw, i)
		}
	}

	for i := range d.slots {
		s := &d.slots[i]
		if !s.synced || !s.active || s.prev != s.next {
			continue
		}
		for _, e := range d.erased {
			if e.Intersects(s.next) {
				d.draw = append(d.draw, i)
				break
			}
		}
	}

	for _, i := range d.draw {
		s := &d.slots[i]
		if s.sprite != nil {
			s.sprite(d.display, s.next)
		}
		s.prev = s.next
		stats.Drawn++
	}

	for i := range d.slots {
		d.slots[i].synced = false
	}
	d.erased = d.erased[:0]
	return stats
}
