package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld-arcade/internal/storage"
)

// ProfilesKeyMap defines the key bindings for the calibration profiles view.
type ProfilesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProfilesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ProfilesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultProfilesKeyMap returns default key bindings.
func DefaultProfilesKeyMap() ProfilesKeyMap {
	return ProfilesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "forget profile"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProfilesModel lists stored calibration profiles. Forgetting a profile
// makes the next session on it calibrate again.
type ProfilesModel struct {
	store     *storage.Store
	profiles  []storage.Profile
	table     table.Model
	help      help.Model
	keys      ProfilesKeyMap
	width     int
	height    int
	err       error
	quitting  bool
	goingBack bool
}

// NewProfilesModel creates the profiles view. A nil store shows a notice.
func NewProfilesModel(store *storage.Store, width, height int) ProfilesModel {
	m := ProfilesModel{
		store:  store,
		keys:   DefaultProfilesKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProfilesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Profile", Width: 16},
		{Title: "X axis", Width: 18},
		{Title: "Y axis", Width: 18},
		{Title: "Updated", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the profiles from the store.
func (m *ProfilesModel) load() {
	m.profiles = nil
	if m.store != nil {
		m.profiles, m.err = m.store.Profiles()
	}
	m.updateTableRows()
}

func (m *ProfilesModel) updateTableRows() {
	rows := make([]table.Row, len(m.profiles))
	for i, p := range m.profiles {
		rows[i] = table.Row{
			p.Name,
			p.Calibration.X.String(),
			p.Calibration.Y.String(),
			p.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the profiles model.
func (m ProfilesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the profiles view.
func (m ProfilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ProfilesModel) deleteSelected() {
	if m.store == nil || len(m.profiles) == 0 {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.profiles) {
		return
	}
	if _, err := m.store.DeleteCalibration(m.profiles[i].Name); err != nil {
		m.err = err
		return
	}
	m.load()
	if i >= len(m.profiles) && i > 0 {
		m.table.SetCursor(len(m.profiles) - 1)
	}
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the profiles view.
func (m ProfilesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("CALIBRATION PROFILES", m.width)))
	b.WriteString("\n\n")

	var content string
	switch {
	case m.store == nil:
		content = emptyStyle.Render("No calibration store.\nStart with --db to keep calibrations.")
	case len(m.profiles) == 0:
		content = emptyStyle.Render("No profiles yet.\nPlay a game to calibrate the stick.")
	default:
		content = m.table.View()
	}
	b.WriteString(centerText(frameStyle.Render(content), m.width))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProfilesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProfilesModel) IsQuitting() bool {
	return m.quitting
}
