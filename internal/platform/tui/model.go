package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/device"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
	"github.com/vovakirdan/handheld-arcade/internal/storage"
)

// Config holds what every simulator needs to start a session.
type Config struct {
	Engine      config.EngineConfig
	Logger      *log.Logger
	Store       *storage.Store // Optional calibration store
	Profile     string
	Recalibrate bool
	Seed        int64
	FPS         int
	Renderer    *lipgloss.Renderer // Nil selects the default renderer
}

// SessionDoneMsg is delivered when the engine session returns.
type SessionDoneMsg struct {
	Result engine.Result
	Err    error
}

// Model is the Bubble Tea model running one variant on a simulated device.
// The session runs in a Bubble Tea command goroutine; the model only feeds
// the input panel and samples the framebuffer.
type Model struct {
	cfg     Config
	info    registry.VariantInfo
	device  *device.Device
	run     tea.Cmd
	cancel  context.CancelFunc
	keys    KeyMap
	help    help.Model
	painter *FrameRenderer

	width   int
	height  int
	view    string
	version uint64
	drawn   bool

	outcome    *SessionDoneMsg
	quitting   bool
	standalone bool // Quit the program when the session ends
}

// NewModel creates a simulator for the variant. The session is bounded by
// ctx and starts when the model is initialised.
func NewModel(ctx context.Context, info registry.VariantInfo, cfg Config) (Model, error) {
	variant, err := registry.Create(info.ID)
	if err != nil {
		return Model{}, err
	}

	dev := device.New(device.Options{Seed: cfg.Seed})
	opts := engine.Options{Profile: cfg.Profile, Recalibrate: cfg.Recalibrate}
	if cfg.Store != nil {
		opts.Store = cfg.Store
	}
	session := engine.NewSession(dev.Env(cfg.Engine, cfg.Logger), variant, opts)

	ctx, cancel := context.WithCancel(ctx)
	run := func() tea.Msg {
		res, err := session.Run(ctx)
		return SessionDoneMsg{Result: res, Err: err}
	}

	return Model{
		cfg:     cfg,
		info:    info,
		device:  dev,
		run:     run,
		cancel:  cancel,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		painter: NewFrameRenderer(cfg.Renderer),
		width:   dev.Screen.Width(),
		height:  dev.Screen.Height()/2 + chromeLines,
	}, nil
}

// chromeLines is the number of terminal lines below the framebuffer.
const chromeLines = 2

// Init starts the session and the sampling loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run, tickCmd(m.cfg.FPS))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.drawn = false
		return m, nil

	case TickMsg:
		return m.handleTick()

	case SessionDoneMsg:
		m.outcome = &msg
		m.cancel()
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	m.keys.Apply(msg, m.device.Panel)
	return m, nil
}

// handleTick re-renders the framebuffer when it changed since the last sample.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.outcome != nil {
		return m, nil
	}
	if v := m.device.Screen.Version(); !m.drawn || v != m.version {
		frame := m.device.Screen.Snapshot()
		m.view = m.painter.Render(frame, m.width, m.height-chromeLines)
		m.version = frame.Version
		m.drawn = true
	}
	return m, tickCmd(m.cfg.FPS)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	profile := m.cfg.Profile
	if profile == "" {
		profile = storage.DefaultProfile
	}
	status := fmt.Sprintf("%s  profile %s", m.info.Title, profile)
	return m.view + "\n" + statusStyle.Render(status) + "\n" + m.help.View(m.keys)
}

// Outcome returns the session result once the session has returned.
func (m Model) Outcome() (engine.Result, bool, error) {
	if m.outcome == nil {
		return engine.Result{}, false, nil
	}
	return m.outcome.Result, true, m.outcome.Err
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Device returns the simulated device the session runs on.
func (m Model) Device() *device.Device {
	return m.device
}

// Run plays one variant in the terminal and returns the session result.
func Run(ctx context.Context, info registry.VariantInfo, cfg Config) (engine.Result, error) {
	model, err := NewModel(ctx, info, cfg)
	if err != nil {
		return engine.Result{}, err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	model.cancel()
	if errors.Is(err, tea.ErrProgramKilled) {
		return engine.Result{Reason: engine.ReasonCancelled}, nil
	}
	if err != nil {
		return engine.Result{}, fmt.Errorf("tui: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return engine.Result{}, nil
	}
	res, done, sessErr := m.Outcome()
	if !done {
		res.Reason = engine.ReasonCancelled
	}
	return res, sessErr
}
