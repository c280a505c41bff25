package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld-arcade/internal/engine"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenProfiles
)

// AppModel manages the full simulator flow: menu -> game -> menu, with a
// side trip to the calibration profiles. It is the top-level model of both
// the local menu and every SSH session.
type AppModel struct {
	ctx      context.Context // Bounds every session started from the menu
	cfg      Config
	screen   screen
	menu     MenuModel
	game     *Model
	profiles ProfilesModel
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the app, starting at the menu.
func NewAppModel(ctx context.Context, cfg Config, width, height int) AppModel {
	return AppModel{
		ctx:    ctx,
		cfg:    cfg,
		menu:   NewMenuModel(width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenProfiles:
		return m.updateProfiles(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsProfiles():
		m.menu.openProfiles = false
		m.profiles = NewProfilesModel(m.cfg.Store, m.width, m.height)
		m.screen = screenProfiles
		return m, m.profiles.Init()

	case m.menu.Selected() != nil:
		info := *m.menu.Selected()
		m.menu.selected = nil

		game, err := NewModel(m.ctx, info, m.cfg)
		if err != nil {
			m.menu.status = summarize(info.Title, engine.Result{}, err)
			return m, nil
		}
		game.width, game.height = m.width, m.height
		game.help.Width = m.width
		m.game = &game
		m.screen = screenGame
		return m, game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if res, done, err := m.game.Outcome(); done {
		m.menu.status = summarize(m.game.info.Title, res, err)
		m.game = nil
		m.screen = screenMenu
		return m, nil
	}

	return m, cmd
}

// updateProfiles handles updates when the profiles view is open.
func (m AppModel) updateProfiles(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.profiles.Update(msg)
	if profilesModel, ok := newModel.(ProfilesModel); ok {
		m.profiles = profilesModel
	}

	switch {
	case m.profiles.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.profiles.IsGoingBack():
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenProfiles:
		return m.profiles.View()
	default:
		return m.menu.View()
	}
}

// RunMenu runs the interactive menu until the user quits. width and height
// are the initial terminal size.
func RunMenu(ctx context.Context, cfg Config, width, height int) error {
	if cfg.Renderer == nil {
		cfg.Renderer = lipgloss.DefaultRenderer()
	}
	p := tea.NewProgram(NewAppModel(ctx, cfg, width, height), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
