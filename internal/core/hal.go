package core

// Display resolution of the handheld's panel.
const (
	DisplayWidth  = 240
	DisplayHeight = 135
)

// Display is the drawing surface the engine renders to.
// Calls are synchronous; no batching is assumed.
type Display interface {
	Clear(r Rect, c Color)
	FillRect(x, y, w, h int, c Color)
	// DrawText draws s with its top-left corner at (x, y).
	// Size is an integer glyph scale (1 = native font size).
	DrawText(x, y int, s string, size int, c Color)
	Width() int
	Height() int
}

// AxisID identifies an analog joystick axis.
type AxisID int

const (
	AxisX AxisID = iota
	AxisY
)

// ButtonID identifies a discrete button.
type ButtonID int

const (
	ButtonFire ButtonID = iota
	ButtonBack
)

// Raw analog sample range.
const (
	AxisMin = 0
	AxisMax = 4095
)

// Input samples the joystick and buttons.
type Input interface {
	// ReadAxis returns a raw sample in [AxisMin, AxisMax].
	ReadAxis(id AxisID) int
	// ReadButton returns the pin level: true is high.
	// Buttons are pulled up, so a pressed button reads low (false).
	ReadButton(id ButtonID) bool
}

// Clock is a monotonic millisecond clock.
// NowMs wraps around after ~49 days; compare timestamps by subtraction.
type Clock interface {
	NowMs() uint32
	// Sleep blocks the caller for ms milliseconds.
	Sleep(ms uint32)
}

// Random is a uniform integer source.
type Random interface {
	// Int returns a value in [lo, hi). It returns lo when hi <= lo.
	Int(lo, hi int) int
}

// Since returns the milliseconds elapsed from start to now, wrap-safe.
func Since(now, start uint32) uint32 {
	return now - start
}

// Reached reports whether now is at or past deadline, wrap-safe for
// deadlines less than ~24 days apart.
func Reached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}
