package post

import (
	"testing"

	"github.com/san-kum/horizon/internal/render"
)

func TestBloomSpreadsBrightPixels(t *testing.T) {
	r, _ := render.NewRaster(21, 21)
	r.Set(10, 10, render.White)
	s := DefaultSettings()
	s.Enabled = true
	Bloom(r, s)
	if c := r.At(12, 10); c.Luminance() <= 0 {
		t.Errorf("expected glow next to the bright pixel, got %v", c)
	}
	if c := r.At(0, 0); c.Luminance() != 0 {
		t.Errorf("expected far corner untouched, got %v", c)
	}
}

func TestBloomDisabledIsNoop(t *testing.T) {
	r, _ := render.NewRaster(8, 8)
	r.Set(4, 4, render.White)
	Bloom(r, DefaultSettings())
	if c := r.At(5, 4); c != render.Black {
		t.Errorf("expected no change, got %v", c)
	}
}

func TestBloomIgnoresDimScene(t *testing.T) {
	r, _ := render.NewRaster(8, 8)
	dim := render.Color{R: 0.2, G: 0.2, B: 0.2}
	r.Clear(dim)
	s := DefaultSettings()
	s.Enabled = true
	Bloom(r, s)
	if c := r.At(3, 3); c != dim {
		t.Errorf("expected %v, got %v", dim, c)
	}
}
