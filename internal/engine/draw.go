package engine

import (
	"strings"

	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// DrawCentered draws text horizontally centered at row y.
func DrawCentered(d core.Display, y int, text string, size int, c core.Color) {
	w, _ := core.TextSize(text, size)
	d.DrawText((d.Width()-w)/2, y, text, size, c)
}

// DrawBanner clears a centered box and draws a title with optional lines
// under it.
func DrawBanner(d core.Display, title string, lines ...string) {
	tw, th := core.TextSize(title, 2)
	boxW := tw
	for _, l := range lines {
		w, _ := core.TextSize(l, 1)
		boxW = max(boxW, w)
	}
	boxW += 12
	boxH := th + len(lines)*(core.GlyphH+2) + 12
	box := core.NewRect((d.Width()-boxW)/2, (d.Height()-boxH)/2, boxW, boxH)

	d.FillRect(box.X, box.Y, box.W, box.H, core.ColorWhite)
	d.FillRect(box.X+1, box.Y+1, box.W-2, box.H-2, core.ColorBlack)

	y := box.Y + 6
	DrawCentered(d, y, title, 2, core.ColorYellow)
	y += th + 2
	for _, l := range lines {
		DrawCentered(d, y, l, 1, core.ColorWhite)
		y += core.GlyphH + 2
	}
}

// wrap splits text into lines of at most width characters.
func wrap(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
		for len(line) > width {
			lines = append(lines, line[:width])
			line = line[width:]
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
