package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld-arcade/internal/core"
)

// halfBlock shows the top pixel as foreground and the bottom as background.
const halfBlock = "▀"

type cellColors struct {
	top, bottom core.Color
}

// FrameRenderer converts framebuffer snapshots to styled terminal text.
// Every cell packs two vertically adjacent pixels.
type FrameRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[cellColors]lipgloss.Style
}

// NewFrameRenderer creates a renderer. A nil lipgloss renderer selects the
// default one; SSH sessions pass a renderer bound to the client's terminal.
func NewFrameRenderer(r *lipgloss.Renderer) *FrameRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &FrameRenderer{
		renderer: r,
		styles:   make(map[cellColors]lipgloss.Style),
	}
}

func (fr *FrameRenderer) style(c cellColors) lipgloss.Style {
	s, ok := fr.styles[c]
	if !ok {
		s = fr.renderer.NewStyle().
			Foreground(lipgloss.Color(c.top.Hex())).
			Background(lipgloss.Color(c.bottom.Hex()))
		fr.styles[c] = s
	}
	return s
}

// Scale returns the integer downsampling factor that fits a width x height
// framebuffer into cols x rows cells.
func Scale(width, height, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 1
	}
	return max(ceilDiv(width, cols), ceilDiv(height, 2*rows), 1)
}

// Render draws f into at most cols x rows cells using nearest-neighbour
// sampling. Runs of cells with the same colors share one escape sequence.
func (fr *FrameRenderer) Render(f core.Frame, cols, rows int) string {
	s := Scale(f.Width, f.Height, cols, rows)
	outW := f.Width / s
	pixRows := ceilDiv(f.Height, s)
	outH := ceilDiv(pixRows, 2)

	var sb strings.Builder
	sb.Grow(outW*outH*4 + outH)

	for y := range outH {
		if y > 0 {
			sb.WriteByte('\n')
		}
		top := 2 * y * s
		bottom := (2*y + 1) * s

		x := 0
		for x < outW {
			run := cellColors{f.At(x*s, top), f.At(x*s, bottom)}
			n := 0
			for x < outW && (cellColors{f.At(x*s, top), f.At(x*s, bottom)}) == run {
				n++
				x++
			}
			sb.WriteString(fr.style(run).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
