package engine

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/input"
)

// stubVariant records the calls a session makes.
type stubVariant struct {
	env    Env
	calls  []string
	times  []uint32
	resets int
	frames int
	overAt int    // Frame count at which the round is lost; 0 = never
	workMs uint32 // Simulated Update cost
	lanes  bool   // Validate the lane layout
}

func (v *stubVariant) ID() string    { return "stub" }
func (v *stubVariant) Title() string { return "Stub" }

func (v *stubVariant) Validate(cfg config.EngineConfig) error {
	if v.lanes {
		return cfg.ValidateLanes()
	}
	return cfg.Validate()
}

func (v *stubVariant) Reset(env Env, now uint32) {
	v.env = env
	v.resets++
	v.frames = 0
	v.calls = append(v.calls, "reset")
}

func (v *stubVariant) Update(f Frame) {
	v.frames++
	v.times = append(v.times, f.Now)
	v.calls = append(v.calls, "update")
	if v.workMs > 0 {
		v.env.Clock.Sleep(v.workMs)
	}
}

func (v *stubVariant) Collide(Frame) { v.calls = append(v.calls, "collide") }

func (v *stubVariant) Render(Frame) {
	v.calls = append(v.calls, "render")
	v.env.Display.FillRect(0, 0, 10, 10, core.ColorRed)
}

func (v *stubVariant) Score() int { return v.frames }
func (v *stubVariant) Over() bool { return v.overAt > 0 && v.frames >= v.overAt }

// memStore keeps calibrations in memory.
type memStore struct {
	cals  map[string]input.StickCalibration
	saves int
}

func (m *memStore) LoadCalibration(profile string) (input.StickCalibration, bool, error) {
	cal, ok := m.cals[profile]
	return cal, ok, nil
}

func (m *memStore) SaveCalibration(profile string, cal input.StickCalibration) error {
	if m.cals == nil {
		m.cals = make(map[string]input.StickCalibration)
	}
	m.cals[profile] = cal
	m.saves++
	return nil
}

type sessionRig struct {
	display *recordingDisplay
	clock   *manualClock
	input   *scriptedInput
	cfg     config.EngineConfig
	store   *memStore
}

func newSessionRig(start uint32) *sessionRig {
	clock := &manualClock{now: start}
	return &sessionRig{
		display: newRecordingDisplay(),
		clock:   clock,
		input:   newScriptedInput(clock),
		cfg:     config.DefaultEngineConfig(),
		store: &memStore{cals: map[string]input.StickCalibration{
			"default": input.DefaultStickCalibration(),
		}},
	}
}

func (r *sessionRig) session(v Variant) *Session {
	env := Env{
		Display: r.display,
		Input:   r.input,
		Clock:   r.clock,
		Rand:    lowRandom{},
		Config:  r.cfg,
	}
	return NewSession(env, v, Options{Profile: "default", Store: r.store})
}

func (r *sessionRig) blank() bool {
	f := r.display.Snapshot()
	for _, c := range f.Pix {
		if c != core.ColorBlack {
			return false
		}
	}
	return true
}

func TestSessionExitOnBack(t *testing.T) {
	rig := newSessionRig(1000)
	rig.input.pressed = func(id core.ButtonID, now uint32) bool {
		return id == core.ButtonBack && now >= 1300
	}
	v := &stubVariant{workMs: 7}
	s := rig.session(v)

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != ReasonExit || res.Rounds != 1 {
		t.Errorf("Run() = %+v, expected exit after one round", res)
	}
	if res.Frames != 16 {
		t.Errorf("Frames = %d, expected 16", res.Frames)
	}
	for i := 1; i < len(v.times); i++ {
		if d := v.times[i] - v.times[i-1]; d != 20 {
			t.Fatalf("frame %d started %dms after the previous, expected 20", i, d)
		}
	}
	expected := []string{"reset", "update", "collide", "render", "update", "collide", "render"}
	if !slices.Equal(v.calls[:len(expected)], expected) {
		t.Errorf("calls = %v, expected prefix %v", v.calls[:len(expected)], expected)
	}
	if s.State() != StateExit {
		t.Errorf("State() = %v, expected exit", s.State())
	}
	if !rig.blank() {
		t.Error("display not cleared on exit")
	}
}

func TestSessionGameOverTimeout(t *testing.T) {
	rig := newSessionRig(1000)
	v := &stubVariant{overAt: 5}

	res, err := rig.session(v).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != ReasonTimeout || res.Rounds != 1 || res.Score != 5 {
		t.Errorf("Run() = %+v, expected timeout with score 5", res)
	}
	lost := v.times[len(v.times)-1]
	if core.Since(rig.clock.now, lost) < rig.cfg.Frame.GameOverMs {
		t.Errorf("returned %dms after game over, expected at least %d", rig.clock.now-lost, rig.cfg.Frame.GameOverMs)
	}
	if !slices.Contains(rig.display.ops, `text "GAME OVER"`) {
		t.Error("game-over banner not drawn")
	}
}

func TestSessionRestartOnFire(t *testing.T) {
	rig := newSessionRig(1000)
	rig.input.pressed = func(id core.ButtonID, now uint32) bool {
		return id == core.ButtonFire && now >= 1500 && now < 1700
	}
	v := &stubVariant{overAt: 3}

	res, err := rig.session(v).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Rounds != 2 || v.resets != 2 {
		t.Errorf("Rounds = %d resets = %d, expected 2", res.Rounds, v.resets)
	}
	if res.Reason != ReasonTimeout {
		t.Errorf("Reason = %v, expected timeout", res.Reason)
	}
	if res.Best != 3 {
		t.Errorf("Best = %d, expected 3", res.Best)
	}
}

func TestSessionInvalidConfig(t *testing.T) {
	rig := newSessionRig(0)
	rig.cfg.Lanes.Count = 1
	v := &stubVariant{lanes: true}

	res, err := rig.session(v).Run(context.Background())
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("Run() error = %v, expected ErrInvalid", err)
	}
	if res.Reason != ReasonInvalid {
		t.Errorf("Reason = %v, expected invalid-config", res.Reason)
	}
	if v.resets != 0 {
		t.Error("variant started despite invalid configuration")
	}
	if !slices.Contains(rig.display.ops, `text "CONFIG ERROR"`) {
		t.Errorf("diagnostic not drawn: %v", rig.display.ops)
	}
	if rig.clock.now != rig.cfg.Frame.DiagnosticMs {
		t.Errorf("diagnostic held %dms, expected %d", rig.clock.now, rig.cfg.Frame.DiagnosticMs)
	}
	if !rig.blank() {
		t.Error("display not cleared after diagnostic")
	}
}

func TestSessionCalibrationStored(t *testing.T) {
	rig := newSessionRig(0)
	rig.store = &memStore{}

	first := &stubVariant{overAt: 1}
	if _, err := rig.session(first).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rig.store.saves != 1 {
		t.Fatalf("saves = %d, expected 1", rig.store.saves)
	}
	if first.times[0] < rig.cfg.Input.SweepMs {
		t.Errorf("first frame at %d, expected after calibration sweep", first.times[0])
	}
	if _, ok := rig.store.cals["default"]; !ok {
		t.Error("calibration not stored under profile")
	}

	rig.clock.now = 0
	second := &stubVariant{overAt: 1}
	if _, err := rig.session(second).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if second.times[0] != 0 || rig.store.saves != 1 {
		t.Errorf("stored calibration not reused: first frame %d, saves %d", second.times[0], rig.store.saves)
	}
}

func TestSessionCancelled(t *testing.T) {
	rig := newSessionRig(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rig.clock.onTick = func(now uint32) {
		if now >= 100 {
			cancel()
		}
	}
	v := &stubVariant{}

	res, err := rig.session(v).Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != ReasonCancelled {
		t.Errorf("Reason = %v, expected cancelled", res.Reason)
	}
	if res.Frames != 6 {
		t.Errorf("Frames = %d, expected 6", res.Frames)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("lane count 1 below minimum 2", 12)
	expected := []string{"lane count 1", "below", "minimum 2"}
	if !slices.Equal(got, expected) {
		t.Errorf("wrap() = %q, expected %q", got, expected)
	}
}
