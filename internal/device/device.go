// Package device assembles a simulated handheld: a framebuffer, a virtual
// input panel, a system clock and a random source. Terminal, SSH and window
// hosts each own one Device and run an engine session against it.
package device

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
)

// Device is one simulated handheld.
type Device struct {
	Screen *core.Screen
	Panel  *Panel
	Clock  *SystemClock
	Rand   *RandSource
}

// Options configure a Device.
type Options struct {
	Width, Height int   // Zero selects the panel resolution
	Seed          int64 // Zero seeds from the wall clock
	HoldMs        int   // Zero selects DefaultHoldMs
}

// New creates a device with a black screen and a centered stick.
func New(opts Options) *Device {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = core.DisplayWidth, core.DisplayHeight
	}
	clock := NewSystemClock()
	return &Device{
		Screen: core.NewScreen(opts.Width, opts.Height),
		Panel:  NewPanel(clock, opts.HoldMs),
		Clock:  clock,
		Rand:   NewRandSource(opts.Seed),
	}
}

// Env wires the device into an engine environment.
func (d *Device) Env(cfg config.EngineConfig, logger *log.Logger) engine.Env {
	return engine.Env{
		Display: d.Screen,
		Input:   d.Panel,
		Clock:   d.Clock,
		Rand:    d.Rand,
		Config:  cfg,
		Logger:  logger,
	}
}
