package shading

import "github.com/chewxy/math32"

func fract(x float32) float32 { return x - math32.Floor(x) }

func hash(n float32) float32 { return fract(math32.Sin(n) * 43758.5453123) }

// valueNoise is smoothed lattice noise in [0,1). Deterministic for a given
// input; lattice rows are 57 apart in hash space.
func valueNoise(x, y float32) float32 {
	px, py := math32.Floor(x), math32.Floor(y)
	fx, fy := x-px, y-py
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	n := px + py*57
	a := mix(hash(n), hash(n+1), fx)
	b := mix(hash(n+57), hash(n+58), fx)
	return mix(a, b, fy)
}

func mix(a, b, t float32) float32 { return a + (b-a)*t }

// Smoothstep is the GLSL smoothstep. Edges must satisfy lo < hi.
func Smoothstep(lo, hi, x float32) float32 {
	t := (x - lo) / (hi - lo)
	switch {
	case t <= 0 || math32.IsNaN(t):
		return 0
	case t >= 1:
		return 1
	}
	return t * t * (3 - 2*t)
}

func (e Edge) step(x float32) float32 { return Smoothstep(e.Lo, e.Hi, x) }
