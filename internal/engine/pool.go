// Package engine implements the real-time core shared by every game
// variant: fixed-capacity entity pools, wave spawning, physics, collision,
// dirty-rectangle rendering and the session controller that paces frames.
package engine

// Pool is a fixed-capacity arena of reusable slots.
// Slot indices are stable identities; a slot is reused only after Release.
type Pool[T any] struct {
	items  []T
	active []bool
	count  int
}

// NewPool creates a pool with capacity slots, all inactive.
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		items:  make([]T, capacity),
		active: make([]bool, capacity),
	}
}

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int {
	return len(p.items)
}

// Count returns the number of active slots.
func (p *Pool[T]) Count() int {
	return p.count
}

// Free returns the number of inactive slots.
func (p *Pool[T]) Free() int {
	return len(p.items) - p.count
}

// Acquire activates the lowest free slot and returns it zeroed.
// ok is false when the pool is full; no active slot is ever overwritten.
func (p *Pool[T]) Acquire() (slot int, item *T, ok bool) {
	for i, a := range p.active {
		if !a {
			var zero T
			p.items[i] = zero
			p.active[i] = true
			p.count++
			return i, &p.items[i], true
		}
	}
	return -1, nil, false
}

// Release deactivates a slot. Releasing an inactive slot is a no-op.
// The item's last value is kept so renderers can still read it.
func (p *Pool[T]) Release(slot int) {
	if slot < 0 || slot >= len(p.items) || !p.active[slot] {
		return
	}
	p.active[slot] = false
	p.count--
}

// Active reports whether slot is in use.
func (p *Pool[T]) Active(slot int) bool {
	return slot >= 0 && slot < len(p.active) && p.active[slot]
}

// At returns the item stored in slot, active or not.
func (p *Pool[T]) At(slot int) *T {
	return &p.items[slot]
}

// Each calls fn for every active slot in index order.
// fn may Release the slot it is given.
func (p *Pool[T]) Each(fn func(slot int, item *T)) {
	for i := range p.items {
		if p.active[i] {
			fn(i, &p.items[i])
		}
	}
}

// Reset deactivates every slot.
func (p *Pool[T]) Reset() {
	var zero T
	for i := range p.items {
		p.items[i] = zero
		p.active[i] = false
	}
	p.count = 0
}
