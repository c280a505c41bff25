package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld-arcade/internal/engine"
	"github.com/vovakirdan/handheld-arcade/internal/registry"
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items        []registry.VariantInfo
	cursor       int
	width        int
	height       int
	keys         MenuKeyMap
	help         help.Model
	status       string // Summary of the last session
	quitting     bool
	selected     *registry.VariantInfo
	openProfiles bool
}

// NewMenuModel creates a menu listing every registered variant.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		items:  registry.List(),
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case key.Matches(msg, m.keys.Profiles):
		m.openProfiles = true
	}
	return m, nil
}

// move steps the cursor, wrapping at both ends of the list.
func (m *MenuModel) move(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		label := "  " + item.Title
		if i == m.cursor {
			label = cursorStyle.Render("> " + item.Title)
		}
		rows = append(rows, label+" "+idStyle.Render("("+item.ID+")"))
	}
	if len(rows) == 0 {
		rows = append(rows, statusStyle.Render("no games registered"))
	}

	blocks := []string{
		"",
		centerText(titleStyle.Render("H A N D H E L D"), m.width),
		"",
		centerText("Select a game", m.width),
		"",
		centerText(lipgloss.JoinVertical(lipgloss.Left, rows...), m.width),
	}
	if m.status != "" {
		blocks = append(blocks, "", centerText(statusStyle.Render(m.status), m.width))
	}
	blocks = append(blocks, "", centerText(m.help.View(m.keys), m.width), "")
	return strings.Join(blocks, "\n")
}

// Selected returns the selected variant, or nil if none selected.
func (m MenuModel) Selected() *registry.VariantInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProfiles returns true if user asked for the calibration profiles.
func (m MenuModel) WantsProfiles() bool {
	return m.openProfiles
}

// summarize describes a finished session for the menu status line.
func summarize(title string, res engine.Result, err error) string {
	if err != nil {
		return fmt.Sprintf("%s: %v", title, err)
	}
	return fmt.Sprintf("%s: best %d in %d round(s), %s", title, res.Best, res.Rounds, res.Reason)
}

// centerText centers every line of a block within width.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
