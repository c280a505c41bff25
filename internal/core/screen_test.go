package core

import (
	"image/color"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(DisplayWidth, DisplayHeight)

	if s.Width() != 240 {
		t.Errorf("Width() = %d, expected 240", s.Width())
	}
	if s.Height() != 135 {
		t.Errorf("Height() = %d, expected 135", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.At(x, y) != ColorBlack {
				t.Fatalf("New screen should be black, got %v at (%d, %d)", s.At(x, y), x, y)
			}
		}
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(20, 10)

	s.FillRect(2, 3, 4, 2, ColorRed)

	tests := []struct {
		x, y     int
		expected Color
	}{
		{2, 3, ColorRed},
		{5, 4, ColorRed},
		{6, 4, ColorBlack}, // right edge is exclusive
		{2, 5, ColorBlack}, // bottom edge is exclusive
		{1, 3, ColorBlack},
	}
	for _, tc := range tests {
		if got := s.At(tc.x, tc.y); got != tc.expected {
			t.Errorf("At(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestScreenFillRectClipped(t *testing.T) {
	s := NewScreen(10, 10)

	// Must not panic and must paint only the visible part.
	s.FillRect(-5, -5, 8, 8, ColorBlue)
	s.FillRect(8, 8, 10, 10, ColorGreen)
	s.FillRect(50, 50, 3, 3, ColorWhite)

	if s.At(0, 0) != ColorBlue || s.At(2, 2) != ColorBlue {
		t.Error("visible part of a clipped rect should be painted")
	}
	if s.At(3, 3) != ColorBlack {
		t.Error("pixels outside the clipped rect should stay black")
	}
	if s.At(9, 9) != ColorGreen {
		t.Error("bottom-right clipped rect should be painted")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(0, 0, 10, 10, ColorWhite)
	s.Clear(NewRect(0, 0, 5, 10), ColorDarkGreen)

	if s.At(4, 9) != ColorDarkGreen {
		t.Errorf("At(4, 9) = %v, expected ColorDarkGreen", s.At(4, 9))
	}
	if s.At(5, 0) != ColorWhite {
		t.Errorf("At(5, 0) = %v, expected ColorWhite", s.At(5, 0))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(100, 40)
	s.DrawText(2, 2, "HI", 1, ColorYellow)

	lit := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.At(x, y)
			if c == ColorYellow {
				lit++
				w, h := TextSize("HI", 1)
				if !NewRect(2, 2, w, h).Contains(x, y) {
					t.Fatalf("glyph pixel outside text box at (%d, %d)", x, y)
				}
			} else if c != ColorBlack {
				t.Fatalf("unexpected color %v at (%d, %d)", c, x, y)
			}
		}
	}
	if lit == 0 {
		t.Error("DrawText() should light some pixels")
	}
}

func TestScreenDrawTextScaled(t *testing.T) {
	small := NewScreen(60, 60)
	big := NewScreen(60, 60)
	small.DrawText(0, 0, "A", 1, ColorWhite)
	big.DrawText(0, 0, "A", 2, ColorWhite)

	count := func(s *Screen) int {
		n := 0
		for _, c := range s.Snapshot().Pix {
			if c == ColorWhite {
				n++
			}
		}
		return n
	}
	if count(big) != 4*count(small) {
		t.Errorf("size 2 text lit %d pixels, expected %d", count(big), 4*count(small))
	}
}

func TestScreenVersionAndSnapshot(t *testing.T) {
	s := NewScreen(4, 4)
	v0 := s.Version()
	s.FillRect(0, 0, 1, 1, ColorRed)
	if s.Version() == v0 {
		t.Error("Version() should change after a write")
	}

	frame := s.Snapshot()
	s.FillRect(0, 0, 1, 1, ColorBlue)
	if frame.At(0, 0) != ColorRed {
		t.Error("Snapshot() should not alias the live framebuffer")
	}
	if frame.At(-1, 0) != ColorBlack {
		t.Error("Frame.At() outside bounds should be black")
	}

	// Off-screen writes are dropped and do not bump the version.
	v1 := s.Version()
	s.FillRect(10, 10, 2, 2, ColorRed)
	if s.Version() != v1 {
		t.Error("off-screen FillRect should not change Version()")
	}
}

func TestNearestColor(t *testing.T) {
	for i := Color(0); i < colorCount; i++ {
		if got := Nearest(i.RGBA()); got != i {
			t.Errorf("Nearest(%v) = %v, expected %v", i.RGBA(), got, i)
		}
	}
	if Nearest(color.RGBA{}) != ColorBlack {
		t.Error("transparent should map to black")
	}
	if ColorRed.Hex() != "#e62937" {
		t.Errorf("Hex() = %s, expected #e62937", ColorRed.Hex())
	}
}

func TestFrameFillRGBA(t *testing.T) {
	s := NewScreen(3, 2)
	s.FillRect(1, 1, 1, 1, ColorRed)
	f := s.Snapshot()
	pix := make([]byte, f.Width*f.Height*4)
	f.FillRGBA(pix)

	red := ColorRed.RGBA()
	i := (1*3 + 1) * 4
	if pix[i] != red.R || pix[i+1] != red.G || pix[i+2] != red.B || pix[i+3] != 255 {
		t.Errorf("pixel (1,1) = %v, expected %v", pix[i:i+4], red)
	}
	if pix[0] != 0 || pix[3] != 255 {
		t.Errorf("pixel (0,0) = %v, expected opaque black", pix[0:4])
	}
}
