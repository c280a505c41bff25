package core

import "image/color"

// Color is an entry of the fixed display palette.
// Sprites and backgrounds are drawn with palette entries only, which keeps
// the framebuffer small and lets terminal hosts map colors 1:1.
type Color uint8

// Palette entries used by the games.
const (
	ColorBlack Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorDarkGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorMagenta
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBrown
	colorCount
)

var palette = [colorCount]color.RGBA{
	ColorBlack:     {0, 0, 0, 255},
	ColorWhite:     {255, 255, 255, 255},
	ColorRed:       {230, 41, 55, 255},
	ColorGreen:     {0, 200, 80, 255},
	ColorDarkGreen: {20, 90, 40, 255},
	ColorYellow:    {253, 220, 0, 255},
	ColorBlue:      {30, 90, 230, 255},
	ColorCyan:      {0, 200, 220, 255},
	ColorMagenta:   {200, 60, 200, 255},
	ColorOrange:    {255, 140, 0, 255},
	ColorGray:      {110, 110, 110, 255},
	ColorDarkGray:  {55, 55, 55, 255},
	ColorBrown:     {120, 80, 40, 255},
}

// RGBA returns the 8-bit RGB value of the palette entry.
// Unknown entries map to black.
func (c Color) RGBA() color.RGBA {
	if c >= colorCount {
		return palette[ColorBlack]
	}
	return palette[c]
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	rgb := c.RGBA()
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{rgb.R, rgb.G, rgb.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

// Nearest returns the palette entry closest to c by squared RGB distance.
func Nearest(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return ColorBlack
	}
	best, bestDist := ColorBlack, uint32(1<<32-1)
	for i, p := range palette {
		dr := int32(r>>8) - int32(p.R)
		dg := int32(g>>8) - int32(p.G)
		db := int32(b>>8) - int32(p.B)
		d := uint32(dr*dr + dg*dg + db*db)
		if d < bestDist {
			best, bestDist = Color(i), d
		}
	}
	return best
}
