package input

import (
	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// Controls is the conditioned input of one frame.
type Controls struct {
	X, Y        Signal
	Fire        bool // Fire held (debounced level)
	FirePressed bool // Fire went down this frame
	BackPressed bool // Back went down this frame
}

// Conditioner turns raw samples into Controls once per frame.
type Conditioner struct {
	in   core.Input
	cal  StickCalibration
	x, y Axis
	fire Debouncer
	back Debouncer
}

// NewConditioner creates a conditioner using the tuning from cfg.
func NewConditioner(in core.Input, cfg config.InputConfig) *Conditioner {
	return &Conditioner{
		in:   in,
		cal:  DefaultStickCalibration(),
		x:    Axis{Deadzone: cfg.Deadzone, Smoothing: cfg.Smoothing, Invert: cfg.InvertX},
		y:    Axis{Deadzone: cfg.Deadzone, Smoothing: cfg.Smoothing, Invert: cfg.InvertY},
		fire: Debouncer{Window: cfg.DebounceMs},
		back: Debouncer{Window: cfg.DebounceMs},
	}
}

// SetCalibration installs the session's calibration and clears history.
func (c *Conditioner) SetCalibration(cal StickCalibration) {
	c.cal = cal
	c.Reset()
}

// Calibration returns the calibration in use.
func (c *Conditioner) Calibration() StickCalibration {
	return c.cal
}

// Reset clears smoothing and debounce state.
func (c *Conditioner) Reset() {
	c.x.Reset()
	c.y.Reset()
	c.fire.Reset()
	c.back.Reset()
}

// Poll samples every input once.
func (c *Conditioner) Poll(now uint32) Controls {
	ctl := Controls{
		X: c.x.Read(c.in.ReadAxis(core.AxisX), c.cal.X),
		Y: c.y.Read(c.in.ReadAxis(core.AxisY), c.cal.Y),
	}
	ctl.FirePressed = c.fire.Update(c.in.ReadButton(core.ButtonFire), now) == EdgePressed
	ctl.Fire = c.fire.Pressed()
	ctl.BackPressed = c.back.Update(c.in.ReadButton(core.ButtonBack), now) == EdgePressed
	return ctl
}

// PollButtons samples only the buttons; used by blocking waits that must
// not disturb axis smoothing.
func (c *Conditioner) PollButtons(now uint32) (firePressed, backPressed bool) {
	firePressed = c.fire.Update(c.in.ReadButton(core.ButtonFire), now) == EdgePressed
	backPressed = c.back.Update(c.in.ReadButton(core.ButtonBack), now) == EdgePressed
	return firePressed, backPressed
}
