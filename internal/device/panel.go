package device

import (
	"math"
	"sync"

	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// AxisCenter is the raw sample of a stick at rest.
const AxisCenter = (core.AxisMin + core.AxisMax + 1) / 2

// DefaultHoldMs is how long a tap keeps an axis deflected or a button down.
// Terminals report key presses without releases, so every tap is held for
// a fixed window and repeats extend it.
const DefaultHoldMs = 180

// Panel is a virtual joystick and button pad implementing core.Input.
// Hosts write to it from their event loop while the engine reads it from
// the session goroutine.
type Panel struct {
	mu     sync.Mutex
	clock  core.Clock
	holdMs uint32

	axes      [2]int
	axisUntil [2]uint32
	axisHeld  [2]bool

	buttonUntil [2]uint32
	buttonHeld  [2]bool
}

// NewPanel creates a centered panel. holdMs <= 0 selects DefaultHoldMs.
func NewPanel(clock core.Clock, holdMs int) *Panel {
	if holdMs <= 0 {
		holdMs = DefaultHoldMs
	}
	return &Panel{
		clock:  clock,
		holdMs: uint32(holdMs),
		axes:   [2]int{AxisCenter, AxisCenter},
	}
}

// Tap deflects an axis to raw until the hold window passes, then it springs
// back to center.
func (p *Panel) Tap(id core.AxisID, raw int) {
	if !validAxis(id) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.axes[id] = clampRaw(raw)
	p.axisUntil[id] = p.clock.NowMs() + p.holdMs
	p.axisHeld[id] = false
}

// SetAxis holds an axis at raw until the next SetAxis or Tap.
// Window hosts with real gamepads use it every frame.
func (p *Panel) SetAxis(id core.AxisID, raw int) {
	if !validAxis(id) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.axes[id] = clampRaw(raw)
	p.axisHeld[id] = true
}

// Press holds a button down for the hold window.
func (p *Panel) Press(id core.ButtonID) {
	if !validButton(id) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buttonUntil[id] = p.clock.NowMs() + p.holdMs
	p.buttonHeld[id] = false
}

// SetButton holds a button down or releases it immediately.
func (p *Panel) SetButton(id core.ButtonID, down bool) {
	if !validButton(id) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buttonHeld[id] = down
	if !down {
		p.buttonUntil[id] = p.clock.NowMs()
	}
}

// ReadAxis returns the raw sample of an axis.
func (p *Panel) ReadAxis(id core.AxisID) int {
	if !validAxis(id) {
		return AxisCenter
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.axisHeld[id] && core.Reached(p.clock.NowMs(), p.axisUntil[id]) {
		p.axes[id] = AxisCenter
	}
	return p.axes[id]
}

// ReadButton returns the pin level. Buttons are pulled up, so a pressed
// button reads false.
func (p *Panel) ReadButton(id core.ButtonID) bool {
	if !validButton(id) {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buttonHeld[id] {
		return false
	}
	return core.Reached(p.clock.NowMs(), p.buttonUntil[id])
}

func validAxis(id core.AxisID) bool {
	return id == core.AxisX || id == core.AxisY
}

func validButton(id core.ButtonID) bool {
	return id == core.ButtonFire || id == core.ButtonBack
}

func clampRaw(raw int) int {
	return min(max(raw, core.AxisMin), core.AxisMax)
}

// AxisRaw converts a gamepad axis value in [-1, 1] to a raw 12-bit sample.
func AxisRaw(v float64) int {
	v = min(max(v, -1), 1)
	if v < 0 {
		return AxisCenter + int(math.Round(v*float64(AxisCenter-core.AxisMin)))
	}
	return AxisCenter + int(math.Round(v*float64(core.AxisMax-AxisCenter)))
}
