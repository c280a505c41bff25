package input

import "github.com/vovakirdan/handheld-arcade/internal/core"

// Signal is a conditioned axis value in [-1, 1].
type Signal float64

// Normalize maps raw onto [-1, 1] using separate linear segments below and
// above the calibrated center. Raw values are clamped into [Min, Max] first.
// A zero-width half maps to 0.
func Normalize(raw int, cal Calibration) float64 {
	raw = core.Clamp(raw, cal.Min, cal.Max)
	switch {
	case raw > cal.Center:
		span := cal.Max - cal.Center
		if span == 0 {
			return 0
		}
		return float64(raw-cal.Center) / float64(span)
	case raw < cal.Center:
		span := cal.Center - cal.Min
		if span == 0 {
			return 0
		}
		return -float64(cal.Center-raw) / float64(span)
	default:
		return 0
	}
}

// ApplyDeadzone returns exactly 0 when |n| is below ratio.
func ApplyDeadzone(n, ratio float64) float64 {
	if n < ratio && n > -ratio {
		return 0
	}
	return n
}

// Axis conditions one joystick axis frame to frame.
type Axis struct {
	Deadzone  float64
	Smoothing float64 // Weight of the newest sample
	Invert    bool
	prev      float64
}

// Read converts a raw sample into a smoothed signal and remembers it for
// the next frame.
func (a *Axis) Read(raw int, cal Calibration) Signal {
	n := ApplyDeadzone(Normalize(raw, cal), a.Deadzone)
	if a.Invert {
		n = -n
	}
	a.prev = core.ClampF(a.Smoothing*n+(1-a.Smoothing)*a.prev, -1, 1)
	return Signal(a.prev)
}

// Reset forgets the smoothing history.
func (a *Axis) Reset() {
	a.prev = 0
}
