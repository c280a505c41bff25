package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/input"
)

// Env bundles the capabilities a session runs on.
type Env struct {
	Display core.Display
	Input   core.Input
	Clock   core.Clock
	Rand    core.Random
	Config  config.EngineConfig
	Logger  *log.Logger
}

// WithDefaults fills optional fields (a nil Logger discards).
func (e Env) WithDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e
}

// Frame carries the per-frame inputs of a variant.
type Frame struct {
	Now        uint32 // Clock at the start of the frame
	Elapsed    uint32 // Milliseconds since the round started
	Number     int    // Frame counter within the round
	Difficulty float64
	Controls   input.Controls
}

// Variant is one game played by a Session. The session calls Update,
// Collide and Render in that order every frame; a Variant owns all of its
// pools and must not share mutable state with other instances.
type Variant interface {
	// ID returns a unique identifier (e.g. "lanes").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Validate checks the configuration before the first round.
	Validate(cfg config.EngineConfig) error

	// Reset reinitialises every pool and the render cache and draws the
	// static background once. The display has just been cleared.
	Reset(env Env, now uint32)

	// Update runs physics and AI for one frame.
	Update(f Frame)

	// Collide resolves hits for one frame.
	Collide(f Frame)

	// Render issues this frame's draw operations.
	Render(f Frame)

	// Score returns the current score.
	Score() int

	// Over reports whether the round was lost.
	Over() bool
}
