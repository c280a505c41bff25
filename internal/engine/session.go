package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/input"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StateInit
	StateRunning
	StateGameOver
	StateExit
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game-over"
	case StateExit:
		return "exit"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Reason explains why Run returned.
type Reason int

const (
	ReasonExit      Reason = iota // Back pressed
	ReasonTimeout                 // Game-over window elapsed
	ReasonCancelled               // Context cancelled
	ReasonInvalid                 // Configuration rejected
)

func (r Reason) String() string {
	switch r {
	case ReasonExit:
		return "exit"
	case ReasonTimeout:
		return "timeout"
	case ReasonCancelled:
		return "cancelled"
	case ReasonInvalid:
		return "invalid-config"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Result summarises a finished session.
type Result struct {
	Reason Reason
	Score  int // Score of the last round
	Best   int // Best score over all rounds
	Rounds int
	Frames int // Frames run over all rounds
}

// CalibrationStore persists stick calibrations by profile name.
type CalibrationStore interface {
	LoadCalibration(profile string) (input.StickCalibration, bool, error)
	SaveCalibration(profile string, cal input.StickCalibration) error
}

// Options tune a Session. The zero value calibrates once per session and
// stores nothing.
type Options struct {
	Profile     string
	Store       CalibrationStore
	Recalibrate bool // Ignore a stored profile
}

// Session drives one variant through Init, Running, GameOver and Exit.
type Session struct {
	id      string
	env     Env
	variant Variant
	opts    Options

	cond       *input.Conditioner
	difficulty *config.DifficultyManager
	cal        *input.StickCalibration
	state      State
	result     Result
}

// NewSession creates a session for variant on env.
func NewSession(env Env, variant Variant, opts Options) *Session {
	env = env.WithDefaults()
	id := uuid.NewString()
	env.Logger = env.Logger.With("session", id[:8], "variant", variant.ID())
	return &Session{
		id:         id,
		env:        env,
		variant:    variant,
		opts:       opts,
		cond:       input.NewConditioner(env.Input, env.Config.Input),
		difficulty: config.NewDifficultyManager(env.Config.Difficulty),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state. Only meaningful from the
// goroutine running the session.
func (s *Session) State() State {
	return s.state
}

// Calibration returns the calibration in use, if one was obtained.
func (s *Session) Calibration() (input.StickCalibration, bool) {
	if s.cal == nil {
		return input.StickCalibration{}, false
	}
	return *s.cal, true
}

// Run plays rounds until the player exits, the game-over window times out
// or ctx is cancelled. A configuration error is drawn, logged and returned.
// The display is cleared to black on return.
func (s *Session) Run(ctx context.Context) (Result, error) {
	defer s.leave()
	s.result = Result{}
	log := s.env.Logger

	if err := s.variant.Validate(s.env.Config); err != nil {
		log.Error("configuration rejected", "err", err)
		s.diagnostic(err)
		s.state = StateExit
		s.result.Reason = ReasonInvalid
		return s.result, fmt.Errorf("engine: %s: %w", s.variant.ID(), err)
	}

	for {
		s.state = StateInit
		if err := s.init(ctx); err != nil {
			return s.finish(ReasonCancelled), nil
		}
		s.result.Rounds++
		log.Debug("round started", "round", s.result.Rounds)

		s.state = StateRunning
		if reason, done := s.running(ctx); done {
			return s.finish(reason), nil
		}

		s.state = StateGameOver
		log.Info("game over", "score", s.variant.Score(), "round", s.result.Rounds)
		restart, reason := s.gameOver(ctx)
		if !restart {
			return s.finish(reason), nil
		}
		log.Debug("restart")
	}
}

func (s *Session) finish(reason Reason) Result {
	s.state = StateExit
	s.result.Reason = reason
	s.env.Logger.Info("session finished", "reason", reason, "best", s.result.Best, "rounds", s.result.Rounds)
	return s.result
}

// init obtains the calibration and resets the variant.
func (s *Session) init(ctx context.Context) error {
	if s.cal == nil {
		cal, err := s.calibration(ctx)
		if err != nil {
			return err
		}
		s.cal = &cal
	}
	s.cond.SetCalibration(*s.cal)

	d := s.env.Display
	d.Clear(core.NewRect(0, 0, d.Width(), d.Height()), core.ColorBlack)
	s.variant.Reset(s.env, s.env.Clock.NowMs())
	return nil
}

func (s *Session) calibration(ctx context.Context) (input.StickCalibration, error) {
	log := s.env.Logger
	if s.opts.Store != nil && !s.opts.Recalibrate {
		cal, ok, err := s.opts.Store.LoadCalibration(s.opts.Profile)
		switch {
		case err != nil:
			log.Warn("load calibration", "profile", s.opts.Profile, "err", err)
		case ok && cal.X.Valid() && cal.Y.Valid():
			log.Debug("calibration loaded", "profile", s.opts.Profile, "x", cal.X, "y", cal.Y)
			return cal, nil
		}
	}

	cfg := s.env.Config.Input
	timing := input.CalibrationTiming{
		CenterSamples: cfg.CenterSamples,
		SampleDelayMs: cfg.SampleDelayMs,
		SweepMs:       cfg.SweepMs,
	}
	cal, err := input.Calibrate(ctx, s.env.Input, s.env.Clock, timing, s.prompt)
	if err != nil {
		return input.StickCalibration{}, err
	}
	log.Info("calibrated", "x", cal.X, "y", cal.Y)
	if cal.X.Degenerate() || cal.Y.Degenerate() {
		log.Warn("degenerate calibration, affected half ranges read zero")
	}
	if s.opts.Store != nil {
		if err := s.opts.Store.SaveCalibration(s.opts.Profile, cal); err != nil {
			log.Warn("save calibration", "profile", s.opts.Profile, "err", err)
		}
	}
	return cal, nil
}

func (s *Session) prompt(p input.Phase) {
	d := s.env.Display
	d.Clear(core.NewRect(0, 0, d.Width(), d.Height()), core.ColorBlack)
	switch p {
	case input.PhaseCenter:
		DrawBanner(d, "CALIBRATE", "Leave the stick centered")
	case input.PhaseSweep:
		DrawBanner(d, "CALIBRATE", "Move the stick in circles")
	}
}

// running plays frames until the round is lost or the session must end.
func (s *Session) running(ctx context.Context) (Reason, bool) {
	clock := s.env.Clock
	budget := s.env.Config.Frame.BudgetMs
	start := clock.NowMs()
	last := start - budget
	frames := 0

	for {
		now := s.pace(last, budget)
		last = now
		elapsed := core.Since(now, start)
		f := Frame{
			Now:        now,
			Elapsed:    elapsed,
			Number:     frames,
			Difficulty: s.difficulty.Scalar(elapsed),
			Controls:   s.cond.Poll(now),
		}
		frames++

		s.variant.Update(f)
		s.variant.Collide(f)
		s.variant.Render(f)
		s.record()

		if f.Controls.BackPressed {
			return ReasonExit, true
		}
		if ctx.Err() != nil {
			return ReasonCancelled, true
		}
		if s.variant.Over() {
			return 0, false
		}
	}
}

// record updates the result after a frame.
func (s *Session) record() {
	s.result.Frames++
	s.result.Score = s.variant.Score()
	s.result.Best = max(s.result.Best, s.result.Score)
}

// pace sleeps until budget milliseconds have passed since last and returns
// the new frame start.
func (s *Session) pace(last, budget uint32) uint32 {
	clock := s.env.Clock
	for {
		now := clock.NowMs()
		el := core.Since(now, last)
		if el >= budget {
			return now
		}
		clock.Sleep(budget - el)
	}
}

// gameOver shows the banner and waits for Fire (restart) or Back.
func (s *Session) gameOver(ctx context.Context) (restart bool, reason Reason) {
	d := s.env.Display
	DrawBanner(d, "GAME OVER",
		fmt.Sprintf("Score %d", s.variant.Score()),
		"FIRE restart  BACK exit")

	clock := s.env.Clock
	poll := max(s.env.Config.Frame.BudgetMs, 1)
	now := clock.NowMs()
	deadline := now + s.env.Config.Frame.GameOverMs
	for !core.Reached(now, deadline) {
		if ctx.Err() != nil {
			return false, ReasonCancelled
		}
		fire, back := s.cond.PollButtons(now)
		if back {
			return false, ReasonExit
		}
		if fire {
			return true, 0
		}
		clock.Sleep(poll)
		now = clock.NowMs()
	}
	return false, ReasonTimeout
}

// diagnostic draws a configuration error and holds it on screen.
func (s *Session) diagnostic(err error) {
	d := s.env.Display
	d.Clear(core.NewRect(0, 0, d.Width(), d.Height()), core.ColorBlack)
	msg := err.Error()
	if errors.Is(err, config.ErrInvalid) {
		msg = unwrapMessage(msg)
	}
	lines := wrap(msg, d.Width()/core.GlyphW-4)
	DrawBanner(d, "CONFIG ERROR", lines...)
	s.env.Clock.Sleep(s.env.Config.Frame.DiagnosticMs)
}

// unwrapMessage drops the "config: invalid configuration: " prefix.
func unwrapMessage(msg string) string {
	return strings.TrimPrefix(msg, "config: "+config.ErrInvalid.Error()+": ")
}

func (s *Session) leave() {
	d := s.env.Display
	d.Clear(core.NewRect(0, 0, d.Width(), d.Height()), core.ColorBlack)
}
