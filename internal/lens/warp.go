package lens

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const minRadius = 1e-6

// Params are the static lens tuning constants, in screen UV units.
type Params struct {
	Enabled       bool    `yaml:"enabled" toml:"enabled"`
	Strength      float64 `yaml:"strength" toml:"strength"`
	MaxDeflection float64 `yaml:"max_deflection" toml:"max_deflection"`
	FalloffRadius float64 `yaml:"falloff_radius" toml:"falloff_radius"`
}

func DefaultParams() Params {
	return Params{Strength: 0.012, MaxDeflection: 0.08, FalloffRadius: 0.35}
}

// Uniforms change per frame (Center) or per resize (Aspect).
type Uniforms struct {
	Center mgl64.Vec2
	Aspect float64
}

// Warp maps a screen UV to the UV the background is sampled from. The pull
// toward center is capped at MaxDeflection and fades to zero at
// FalloffRadius. The result always lies in the unit square.
func Warp(p, center mgl64.Vec2, aspect float64, prm Params) mgl64.Vec2 {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	d := p.Sub(center)
	d[0] *= aspect
	r := d.Len()

	out := p
	if r > minRadius && r < prm.FalloffRadius {
		defl := math.Min(prm.MaxDeflection, prm.Strength/r)
		f := 1 - r/prm.FalloffRadius
		k := defl * f * f / r
		out = mgl64.Vec2{p[0] - d[0]*k/aspect, p[1] - d[1]*k}
	}
	return mgl64.Vec2{unit(out[0]), unit(out[1])}
}

func unit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
