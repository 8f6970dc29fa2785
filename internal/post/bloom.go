// Package post holds optional raster effects applied after composition.
package post

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/san-kum/horizon/internal/render"
)

type Settings struct {
	Enabled   bool    `yaml:"enabled" toml:"enabled"`
	Threshold float32 `yaml:"threshold" toml:"threshold"`
	Radius    float64 `yaml:"radius" toml:"radius"`
	Intensity float32 `yaml:"intensity" toml:"intensity"`
}

func DefaultSettings() Settings {
	return Settings{Threshold: 0.7, Radius: 3, Intensity: 0.6}
}

// Bloom adds a blurred copy of the pixels brighter than the threshold back
// onto r. Depth is untouched.
func Bloom(r *render.Raster, s Settings) {
	if !s.Enabled || s.Radius <= 0 || s.Intensity <= 0 {
		return
	}
	bright := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	found := false
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.At(x, y)
			if c.Luminance() < s.Threshold {
				continue
			}
			bright.SetRGBA(x, y, c.RGBA())
			found = true
		}
	}
	if !found {
		return
	}
	glow := blur.Gaussian(bright, s.Radius)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			g := glow.RGBAAt(x, y)
			if g == (color.RGBA{}) {
				continue
			}
			add := render.Color{R: float32(g.R) / 255, G: float32(g.G) / 255, B: float32(g.B) / 255}
			r.Set(x, y, r.At(x, y).Add(add.Scale(s.Intensity)))
		}
	}
}
