package input

import "github.com/vovakirdan/handheld-arcade/internal/core"

// Edge is a debounced button transition.
type Edge int

const (
	EdgeNone     Edge = iota
	EdgePressed       // Released -> pressed
	EdgeReleased      // Pressed -> released
)

// Debouncer filters chatter from one button.
// A level change is accepted only if at least Window ms have passed since
// the last accepted transition.
type Debouncer struct {
	Window     uint32
	pressed    bool   // Last stable state
	lastChange uint32 // Time of the last accepted transition
	primed     bool
}

// Update feeds the current pin level (true = high = released) sampled at now.
func (d *Debouncer) Update(level bool, now uint32) Edge {
	pressed := !level
	if !d.primed {
		// The first sample only establishes the stable state, so a button
		// held while a session starts does not fire.
		d.primed = true
		d.pressed = pressed
		d.lastChange = now
		return EdgeNone
	}
	if pressed == d.pressed {
		return EdgeNone
	}
	if core.Since(now, d.lastChange) < d.Window {
		return EdgeNone
	}
	d.pressed = pressed
	d.lastChange = now
	if pressed {
		return EdgePressed
	}
	return EdgeReleased
}

// Pressed returns the last stable state.
func (d *Debouncer) Pressed() bool {
	return d.pressed
}

// Reset forgets the stable state; the next sample re-primes it.
func (d *Debouncer) Reset() {
	*d = Debouncer{Window: d.Window}
}
