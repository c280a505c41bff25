package core

import (
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell of the built-in font at size 1.
const (
	GlyphW = 7
	GlyphH = 13
)

// TextSize returns the pixel extent of s drawn at the given size.
func TextSize(s string, size int) (int, int) {
	if size < 1 {
		size = 1
	}
	return len(s) * GlyphW * size, GlyphH * size
}

// Screen is a palette framebuffer implementing Display.
// The engine writes to it from its own goroutine while hosts read
// snapshots, so every access goes through the mutex.
type Screen struct {
	mu      sync.RWMutex
	width   int
	height  int
	pix     []Color
	version uint64
}

// NewScreen creates a black framebuffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	return &Screen{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the framebuffer width in pixels.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the framebuffer height in pixels.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the full-screen rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Clear fills r with c. Parts outside the screen are ignored.
func (s *Screen) Clear(r Rect, c Color) {
	s.FillRect(r.X, r.Y, r.W, r.H, c)
}

// FillRect fills a rectangle with c, clipped to the screen.
func (s *Screen) FillRect(x, y, w, h int, c Color) {
	r := NewRect(x, y, w, h).Clip(s.Bounds())
	if r.Empty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for py := r.Y; py < r.Bottom(); py++ {
		row := s.pix[py*s.width : (py+1)*s.width]
		for px := r.X; px < r.Right(); px++ {
			row[px] = c
		}
	}
	s.version++
}

// DrawText renders s with the built-in 7x13 font scaled by size.
// Only glyph pixels are written; the background is left untouched.
func (s *Screen) DrawText(x, y int, text string, size int, c Color) {
	if text == "" {
		return
	}
	if size < 1 {
		size = 1
	}
	w, h := TextSize(text, 1)
	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c.RGBA()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	dst := image.Rect(x, y, x+w*size, y+h*size)
	xdraw.NearestNeighbor.Scale(canvas{s}, dst, glyphs, glyphs.Bounds(), xdraw.Over, nil)
	s.version++
}

// At returns the color at (x, y), or black outside the screen.
func (s *Screen) At(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ColorBlack
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pix[y*s.width+x]
}

// Version increases on every write. Hosts use it to skip redundant redraws.
func (s *Screen) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Frame is an immutable copy of the framebuffer.
type Frame struct {
	Width, Height int
	Pix           []Color
	Version       uint64
}

// At returns the color at (x, y), or black outside the frame.
func (f Frame) At(x, y int) Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return ColorBlack
	}
	return f.Pix[y*f.Width+x]
}

// Snapshot copies the current framebuffer.
func (s *Screen) Snapshot() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pix := make([]Color, len(s.pix))
	copy(pix, s.pix)
	return Frame{Width: s.width, Height: s.height, Pix: pix, Version: s.version}
}

// canvas adapts a locked Screen to draw.Image for x/image scalers.
type canvas struct {
	s *Screen
}

func (c canvas) ColorModel() color.Model {
	return color.RGBAModel
}

func (c canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.s.width, c.s.height)
}

func (c canvas) At(x, y int) color.Color {
	if x < 0 || x >= c.s.width || y < 0 || y >= c.s.height {
		return color.RGBA{}
	}
	return c.s.pix[y*c.s.width+x].RGBA()
}

func (c canvas) Set(x, y int, v color.Color) {
	if x < 0 || x >= c.s.width || y < 0 || y >= c.s.height {
		return
	}
	c.s.pix[y*c.s.width+x] = Nearest(v)
}

// FillRGBA writes the frame as 8-bit RGBA into dst, which must hold
// Width*Height*4 bytes. Window hosts upload the result as a texture.
func (f Frame) FillRGBA(dst []byte) {
	for i, c := range f.Pix {
		rgb := c.RGBA()
		dst[i*4] = rgb.R
		dst[i*4+1] = rgb.G
		dst[i*4+2] = rgb.B
		dst[i*4+3] = 255
	}
}
