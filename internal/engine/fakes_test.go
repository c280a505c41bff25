package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// recordingDisplay draws into a real Screen and logs every call.
type recordingDisplay struct {
	*core.Screen
	ops []string
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{Screen: core.NewScreen(core.DisplayWidth, core.DisplayHeight)}
}

func (d *recordingDisplay) Clear(r core.Rect, c core.Color) {
	d.ops = append(d.ops, fmt.Sprintf("clear %v %v", r, c))
	d.Screen.Clear(r, c)
}

func (d *recordingDisplay) FillRect(x, y, w, h int, c core.Color) {
	d.ops = append(d.ops, fmt.Sprintf("fill %v %v", core.NewRect(x, y, w, h), c))
	d.Screen.FillRect(x, y, w, h, c)
}

func (d *recordingDisplay) DrawText(x, y int, s string, size int, c core.Color) {
	d.ops = append(d.ops, fmt.Sprintf("text %q", s))
	d.Screen.DrawText(x, y, s, size, c)
}

func (d *recordingDisplay) reset() {
	d.ops = d.ops[:0]
}

// manualClock advances only when the code under test sleeps.
type manualClock struct {
	now    uint32
	slept  uint32
	onTick func(now uint32)
}

func (c *manualClock) NowMs() uint32 { return c.now }

func (c *manualClock) Sleep(ms uint32) {
	c.now += ms
	c.slept += ms
	if c.onTick != nil {
		c.onTick(c.now)
	}
}

// scriptedInput centers the stick and presses buttons according to a
// function of the clock.
type scriptedInput struct {
	clock   *manualClock
	axisX   int
	axisY   int
	pressed func(id core.ButtonID, now uint32) bool
}

func newScriptedInput(clock *manualClock) *scriptedInput {
	return &scriptedInput{clock: clock, axisX: 2048, axisY: 2048}
}

func (s *scriptedInput) ReadAxis(id core.AxisID) int {
	if id == core.AxisX {
		return s.axisX
	}
	return s.axisY
}

func (s *scriptedInput) ReadButton(id core.ButtonID) bool {
	if s.pressed == nil {
		return true
	}
	return !s.pressed(id, s.clock.now)
}

// seededRandom is a deterministic Random.
type seededRandom struct {
	r *rand.Rand
}

func newSeededRandom(seed int64) *seededRandom {
	return &seededRandom{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

// lowRandom always returns the lower bound.
type lowRandom struct{}

func (lowRandom) Int(lo, _ int) int { return lo }
