// Package tui hosts engine sessions in a terminal with Bubble Tea.
// The simulated framebuffer is drawn with half-block cells and key presses
// drive the device's virtual input panel.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is how often the terminal samples the framebuffer.
const DefaultFPS = 30

// TickMsg is sent to trigger a framebuffer sample.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
