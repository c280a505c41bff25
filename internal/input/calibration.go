// Package input conditions raw joystick samples and button levels into
// per-frame controls: calibration, piecewise normalisation, deadzone,
// smoothing and debounced button edges.
package input

import (
	"context"
	"fmt"

	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// Calibration holds the observed raw range of one axis.
// Invariant: Min <= Center <= Max.
type Calibration struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Center int `json:"center"`
}

// DefaultCalibration assumes an ideal stick spanning the full ADC range.
func DefaultCalibration() Calibration {
	return Calibration{Min: core.AxisMin, Max: core.AxisMax, Center: (core.AxisMin + core.AxisMax) / 2}
}

// Valid reports whether the ordering invariant holds.
func (c Calibration) Valid() bool {
	return c.Min <= c.Center && c.Center <= c.Max
}

// Degenerate reports whether either half range has zero width.
// Signals on a degenerate half are forced to zero.
func (c Calibration) Degenerate() bool {
	return c.Max == c.Center || c.Center == c.Min
}

func (c Calibration) String() string {
	return fmt.Sprintf("[%d..%d..%d]", c.Min, c.Center, c.Max)
}

// observe widens the range to include raw.
func (c *Calibration) observe(raw int) {
	if raw < c.Min {
		c.Min = raw
	}
	if raw > c.Max {
		c.Max = raw
	}
}

// StickCalibration is the calibration of both joystick axes.
type StickCalibration struct {
	X Calibration `json:"x"`
	Y Calibration `json:"y"`
}

// DefaultStickCalibration returns ideal calibrations for both axes.
func DefaultStickCalibration() StickCalibration {
	return StickCalibration{X: DefaultCalibration(), Y: DefaultCalibration()}
}

// Phase identifies a calibration step, reported so callers can prompt the user.
type Phase int

const (
	PhaseCenter Phase = iota // Leave the stick at rest
	PhaseSweep               // Move the stick to every extreme
)

// CalibrationTiming controls the two blocking calibration phases.
type CalibrationTiming struct {
	CenterSamples int
	SampleDelayMs uint32
	SweepMs       uint32
}

// Calibrate runs the two-phase blocking calibration:
// first the rest position is averaged over CenterSamples readings, then the
// stick is swept for SweepMs while min/max are recorded.
// Degenerate ranges are accepted as-is. The only error is ctx cancellation.
func Calibrate(ctx context.Context, in core.Input, clock core.Clock, t CalibrationTiming, prompt func(Phase)) (StickCalibration, error) {
	if prompt == nil {
		prompt = func(Phase) {}
	}
	samples := max(t.CenterSamples, 1)
	delay := max(t.SampleDelayMs, 1)

	prompt(PhaseCenter)
	sumX, sumY := 0, 0
	for i := 0; i < samples; i++ {
		if err := ctx.Err(); err != nil {
			return StickCalibration{}, err
		}
		sumX += clampRaw(in.ReadAxis(core.AxisX))
		sumY += clampRaw(in.ReadAxis(core.AxisY))
		clock.Sleep(delay)
	}
	cx, cy := sumX/samples, sumY/samples
	cal := StickCalibration{
		X: Calibration{Min: cx, Max: cx, Center: cx},
		Y: Calibration{Min: cy, Max: cy, Center: cy},
	}

	prompt(PhaseSweep)
	start := clock.NowMs()
	for core.Since(clock.NowMs(), start) < t.SweepMs {
		if err := ctx.Err(); err != nil {
			return StickCalibration{}, err
		}
		cal.X.observe(clampRaw(in.ReadAxis(core.AxisX)))
		cal.Y.observe(clampRaw(in.ReadAxis(core.AxisY)))
		clock.Sleep(delay)
	}
	return cal, nil
}

func clampRaw(raw int) int {
	return core.Clamp(raw, core.AxisMin, core.AxisMax)
}
