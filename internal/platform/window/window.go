// Package window hosts an engine session in a desktop window with Ebiten.
// Gamepad stick and buttons feed the device panel directly; the keyboard
// acts as a digital stick when no gamepad is deflected.
package window

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/device"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
	"github.com/vovakirdan/handheld-arcade/internal/storage"
)

// DefaultZoom is the window scale of the 240x135 panel.
const DefaultZoom = 4

// Config holds the window host settings.
type Config struct {
	Engine      config.EngineConfig
	Logger      *log.Logger
	Store       *storage.Store
	Profile     string
	Recalibrate bool
	Seed        int64
	Zoom        int
}

type outcome struct {
	result engine.Result
	err    error
}

// Game adapts a running session to ebiten.Game.
type Game struct {
	device  *device.Device
	pix     []byte
	version uint64
	drawn   bool
	done    chan outcome
	outcome *outcome
}

// Update samples the gamepad and keyboard into the panel.
func (g *Game) Update() error {
	select {
	case o := <-g.done:
		g.outcome = &o
		return ebiten.Termination
	default:
	}

	x, y := keyboardAxis()
	if x == 0 && y == 0 {
		x, y = gamepadAxis()
	}
	g.device.Panel.SetAxis(core.AxisX, device.AxisRaw(x))
	g.device.Panel.SetAxis(core.AxisY, device.AxisRaw(y))

	fire := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyEnter)
	back := ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyBackspace)
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		fire = fire || ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton0)
		back = back || ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton1)
	}
	g.device.Panel.SetButton(core.ButtonFire, fire)
	g.device.Panel.SetButton(core.ButtonBack, back)
	return nil
}

func keyboardAxis() (float64, float64) {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	return dx, dy
}

// gamepadAxis returns the most deflected stick among connected gamepads.
// Raw values are passed through; deadzone and calibration are the engine's job.
func gamepadAxis() (float64, float64) {
	var x, y float64
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		ax := ebiten.GamepadAxisValue(id, 0)
		ay := ebiten.GamepadAxisValue(id, 1)
		if math.Hypot(ax, ay) > math.Hypot(x, y) {
			x, y = ax, ay
		}
	}
	return x, y
}

// Draw uploads the framebuffer when it changed.
func (g *Game) Draw(screen *ebiten.Image) {
	if v := g.device.Screen.Version(); !g.drawn || v != g.version {
		frame := g.device.Screen.Snapshot()
		frame.FillRGBA(g.pix)
		g.version = frame.Version
		g.drawn = true
	}
	screen.WritePixels(g.pix)
}

// Layout keeps the logical screen at the panel resolution.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.device.Screen.Width(), g.device.Screen.Height()
}

// Run plays one variant in a window until the session ends or the window
// is closed.
func Run(ctx context.Context, info registry.VariantInfo, cfg Config) (engine.Result, error) {
	variant, err := registry.Create(info.ID)
	if err != nil {
		return engine.Result{}, err
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = DefaultZoom
	}

	dev := device.New(device.Options{Seed: cfg.Seed})
	opts := engine.Options{Profile: cfg.Profile, Recalibrate: cfg.Recalibrate}
	if cfg.Store != nil {
		opts.Store = cfg.Store
	}
	session := engine.NewSession(dev.Env(cfg.Engine, cfg.Logger), variant, opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := &Game{
		device: dev,
		pix:    make([]byte, dev.Screen.Width()*dev.Screen.Height()*4),
		done:   make(chan outcome, 1),
	}
	go func() {
		res, err := session.Run(ctx)
		g.done <- outcome{result: res, err: err}
	}()

	ebiten.SetWindowSize(dev.Screen.Width()*cfg.Zoom, dev.Screen.Height()*cfg.Zoom)
	ebiten.SetWindowTitle(info.Title)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		return engine.Result{}, fmt.Errorf("window: %w", err)
	}

	if g.outcome != nil {
		return g.outcome.result, g.outcome.err
	}
	// Window closed while the session was still running.
	cancel()
	o := <-g.done
	return o.result, o.err
}
