package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear float32 RGB triple. Components may exceed 1 before
// presentation (glow, doppler); conversion to 8-bit clamps.
type Color struct {
	R, G, B float32
}

var (
	Black = Color{}
	White = Color{1, 1, 1}
)

func (c Color) Add(o Color) Color       { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Scale(s float32) Color   { return Color{c.R * s, c.G * s, c.B * s} }
func (c Color) Mix(o Color, t float32) Color {
	return Color{c.R + (o.R-c.R)*t, c.G + (o.G-c.G)*t, c.B + (o.B-c.B)*t}
}

// Luminance returns Rec.709 relative luminance.
func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// RGBA converts to an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: float64(clamp01(c.R)), G: float64(clamp01(c.G)), B: float64(clamp01(c.B))}.Hex()
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("render: bad color %q: %w", s, err)
	}
	return Color{float32(cf.R), float32(cf.G), float32(cf.B)}, nil
}

// MustHex is ParseHex for package-level tables.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func clamp01(v float32) float32 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
