package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld-arcade/internal/config"
	"github.com/vovakirdan/handheld-arcade/internal/core"
	"github.com/vovakirdan/handheld-arcade/internal/device"
	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
)

// stubVariant never starts a round: its configuration is always rejected.
type stubVariant struct{}

func (stubVariant) ID() string                         { return "tui-stub" }
func (stubVariant) Title() string                      { return "Stub" }
func (stubVariant) Validate(config.EngineConfig) error { return errors.New("stub") }
func (stubVariant) Reset(engine.Env, uint32)           {}
func (stubVariant) Update(engine.Frame)                {}
func (stubVariant) Collide(engine.Frame)               {}
func (stubVariant) Render(engine.Frame)                {}
func (stubVariant) Score() int                         { return 0 }
func (stubVariant) Over() bool                         { return false }

func init() {
	registry.Register("tui-stub", func() engine.Variant { return stubVariant{} })
}

var stubInfo = registry.VariantInfo{ID: "tui-stub", Title: "Stub"}

func testConfig() Config {
	return Config{Engine: config.DefaultEngineConfig(), Seed: 1}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		expected   int
	}{
		{"full size", 240, 68, 1},
		{"wide terminal", 400, 100, 1},
		{"80 columns", 80, 23, 3},
		{"limited by height", 240, 20, 4},
		{"unknown size", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(core.DisplayWidth, core.DisplayHeight, tt.cols, tt.rows)
			if got != tt.expected {
				t.Errorf("Scale() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestRenderDimensions(t *testing.T) {
	screen := core.NewScreen(core.DisplayWidth, core.DisplayHeight)
	fr := NewFrameRenderer(lipgloss.DefaultRenderer())

	tests := []struct {
		cols, rows    int
		width, height int
	}{
		{240, 68, 240, 68},
		{80, 23, 80, 23},
	}
	for _, tt := range tests {
		out := fr.Render(screen.Snapshot(), tt.cols, tt.rows)
		lines := strings.Split(out, "\n")
		if len(lines) != tt.height {
			t.Errorf("Render(%d, %d) lines = %d, expected %d", tt.cols, tt.rows, len(lines), tt.height)
		}
		if w := lipgloss.Width(lines[0]); w != tt.width {
			t.Errorf("Render(%d, %d) width = %d, expected %d", tt.cols, tt.rows, w, tt.width)
		}
	}
}

func TestKeyMapApply(t *testing.T) {
	clock := device.NewSystemClock()
	tests := []struct {
		key    string
		axis   core.AxisID
		raw    int
		button core.ButtonID
		press  bool
	}{
		{key: "left", axis: core.AxisX, raw: core.AxisMin},
		{key: "d", axis: core.AxisX, raw: core.AxisMax},
		{key: "up", axis: core.AxisY, raw: core.AxisMin},
		{key: "s", axis: core.AxisY, raw: core.AxisMax},
		{key: " ", button: core.ButtonFire, press: true},
		{key: "esc", button: core.ButtonBack, press: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			panel := device.NewPanel(clock, 60_000)
			if !DefaultKeyMap().Apply(keyPress(tt.key), panel) {
				t.Fatalf("Apply(%s) = false, expected true", tt.key)
			}
			if tt.press {
				if panel.ReadButton(tt.button) {
					t.Errorf("button %d reads high after %s", tt.button, tt.key)
				}
				return
			}
			if got := panel.ReadAxis(tt.axis); got != tt.raw {
				t.Errorf("ReadAxis(%d) = %d, expected %d", tt.axis, got, tt.raw)
			}
		})
	}

	if DefaultKeyMap().Apply(keyPress("z"), device.NewPanel(clock, 0)) {
		t.Error("Apply(z) = true, expected false")
	}
}

func TestModelTickRendersChanges(t *testing.T) {
	m, err := NewModel(context.Background(), stubInfo, testConfig())
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 240, Height: 70})
	m = next.(Model)

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	first := m.view
	if first == "" {
		t.Fatal("view empty after first tick")
	}

	m.Device().Screen.FillRect(0, 0, 10, 10, core.ColorRed)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.version != m.Device().Screen.Version() {
		t.Errorf("version = %d, expected %d", m.version, m.Device().Screen.Version())
	}
	if !strings.Contains(m.View(), "Stub") {
		t.Error("status line missing the variant title")
	}
}

func TestModelKeysDrivePanel(t *testing.T) {
	m, err := NewModel(context.Background(), stubInfo, testConfig())
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	next, _ := m.Update(keyPress("left"))
	m = next.(Model)
	if got := m.Device().Panel.ReadAxis(core.AxisX); got != core.AxisMin {
		t.Errorf("ReadAxis() = %d, expected %d", got, core.AxisMin)
	}

	next, cmd := m.Update(keyPress("q"))
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
}

func TestModelSessionDone(t *testing.T) {
	m, err := NewModel(context.Background(), stubInfo, testConfig())
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	if _, done, _ := m.Outcome(); done {
		t.Fatal("Outcome() done before the session ran")
	}

	want := engine.Result{Reason: engine.ReasonExit, Best: 30, Rounds: 2}
	next, _ := m.Update(SessionDoneMsg{Result: want})
	m = next.(Model)
	res, done, err := m.Outcome()
	if !done || err != nil || res != want {
		t.Errorf("Outcome() = %+v, %v, %v, expected %+v", res, done, err, want)
	}

	_, cmd := m.Update(TickMsg{})
	if cmd != nil {
		t.Error("finished model kept ticking")
	}
}

func TestNewModelUnknownVariant(t *testing.T) {
	_, err := NewModel(context.Background(), registry.VariantInfo{ID: "nope"}, testConfig())
	if err == nil {
		t.Error("NewModel(nope) succeeded, expected error")
	}
}

func TestAppMenuFlow(t *testing.T) {
	app := NewAppModel(context.Background(), testConfig(), 100, 40)

	// Move the cursor onto the stub, whatever else is registered.
	for i, item := range app.menu.items {
		if item.ID == stubInfo.ID {
			app.menu.cursor = i
		}
	}

	next, cmd := app.Update(keyPress("enter"))
	app = next.(AppModel)
	if app.screen != screenGame || app.game == nil {
		t.Fatalf("screen = %d, expected game", app.screen)
	}
	if cmd == nil {
		t.Error("starting a game returned no command")
	}

	next, _ = app.Update(SessionDoneMsg{Result: engine.Result{Reason: engine.ReasonExit, Best: 7, Rounds: 1}})
	app = next.(AppModel)
	if app.screen != screenMenu || app.game != nil {
		t.Fatalf("screen = %d after session end, expected menu", app.screen)
	}
	if !strings.Contains(app.menu.status, "best 7") {
		t.Errorf("status = %q, expected the session summary", app.menu.status)
	}
}

func TestAppProfilesWithoutStore(t *testing.T) {
	app := NewAppModel(context.Background(), testConfig(), 100, 40)

	next, _ := app.Update(keyPress("tab"))
	app = next.(AppModel)
	if app.screen != screenProfiles {
		t.Fatalf("screen = %d, expected profiles", app.screen)
	}
	if !strings.Contains(app.View(), "No calibration store") {
		t.Error("profiles view without store did not explain itself")
	}

	next, _ = app.Update(keyPress("esc"))
	app = next.(AppModel)
	if app.screen != screenMenu {
		t.Errorf("screen = %d after back, expected menu", app.screen)
	}
}

func TestAppQuit(t *testing.T) {
	app := NewAppModel(context.Background(), testConfig(), 100, 40)
	next, cmd := app.Update(keyPress("q"))
	app = next.(AppModel)
	if !app.quitting || cmd == nil {
		t.Error("q did not quit the app")
	}
	if app.View() != "" {
		t.Error("View() not empty after quitting")
	}
}

func TestHostKeyPathCreatesDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := hostKeyPath(want)
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if got != want {
		t.Errorf("hostKeyPath() = %q, expected %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("key directory missing: %v", err)
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, expected :23234", cfg.Address)
	}
	if cfg.HostKeyPath != "" {
		t.Errorf("HostKeyPath = %q, expected empty", cfg.HostKeyPath)
	}
	if cfg.IdleTimeout <= 0 {
		t.Errorf("IdleTimeout = %v, expected positive", cfg.IdleTimeout)
	}
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(80, 24)
	m.items = []registry.VariantInfo{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}

	tests := []struct {
		key    string
		cursor int
	}{
		{"up", 2},
		{"up", 1},
		{"down", 2},
		{"down", 0},
	}
	for _, tc := range tests {
		next, _ := m.Update(keyPress(tc.key))
		m = next.(MenuModel)
		if m.cursor != tc.cursor {
			t.Errorf("after %s cursor = %d, expected %d", tc.key, m.cursor, tc.cursor)
		}
	}
	if !strings.Contains(m.View(), "(b)") {
		t.Error("View() missing variant ids")
	}
}
