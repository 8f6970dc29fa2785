package shading

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Compile validates p and builds the shader. Every problem is reported, not
// only the first; the error wraps ErrCompile.
func Compile(p DiskParams) (*DiskShader, error) {
	var errs []error
	bad := func(field, reason string) {
		errs = append(errs, &ParamError{Field: field, Reason: reason})
	}

	if !finite(p.InnerRadius) || p.InnerRadius <= 0 {
		bad("inner_radius", "must be positive")
	}
	if !finite(p.OuterRadius) || p.OuterRadius <= p.InnerRadius {
		bad("outer_radius", "must exceed inner_radius")
	}
	for i, c := range p.Ramp {
		if !finite(c.R) || !finite(c.G) || !finite(c.B) || c.R < 0 || c.G < 0 || c.B < 0 {
			bad(fmt.Sprintf("ramp[%d]", i), "must be a non-negative color")
		}
	}
	for name, v := range map[string]float32{
		"glow_gain":    p.GlowGain,
		"doppler_gain": p.DopplerGain,
		"swirl_rate":   p.SwirlRate,
		"thickness":    p.Thickness,
		"lift":         p.Lift,
		"noise.bands":  p.Noise.Bands,
	} {
		if !finite(v) || v < 0 {
			bad(name, "must be finite and non-negative")
		}
	}
	if !finite(p.Noise.Amp) || p.Noise.Amp <= 0 {
		bad("noise.amp", "must be positive")
	}
	for name, e := range map[string]Edge{
		"streak":   p.Streak,
		"ramp_mid": p.RampMid,
		"ramp_hot": p.RampHot,
		"fade_in":  p.FadeIn,
		"fade_out": p.FadeOut,
	} {
		if !finite(e.Lo) || !finite(e.Hi) || e.Lo >= e.Hi {
			bad(name, "edges must satisfy lo < hi")
		}
	}
	if p.RampMid.Hi > p.RampHot.Lo {
		bad("ramp_hot", "must start after ramp_mid ends")
	}
	if p.FadeIn.Lo < 0 || p.FadeOut.Hi > 1 || p.FadeIn.Hi > p.FadeOut.Lo {
		bad("fade", "windows must lie in [0,1] without overlapping")
	}
	if !finite(p.GlowFrom) || p.GlowFrom >= 1 {
		bad("glow_from", "must be below 1")
	}
	if !finite(p.AlphaFloor) || p.AlphaFloor <= 0 || p.AlphaFloor > 1 {
		bad("alpha_floor", "must be in (0,1]")
	}
	if sh := p.Shimmer; sh.Enabled {
		if !finite(sh.InnerRadius) || sh.InnerRadius <= 0 || !finite(sh.OuterRadius) || sh.OuterRadius <= sh.InnerRadius {
			bad("shimmer.radius", "must satisfy 0 < inner_radius < outer_radius")
		}
		if !finite(sh.Opacity) || sh.Opacity < 0 || sh.Opacity > 1 {
			bad("shimmer.opacity", "must be in [0,1]")
		}
		if !finite(sh.Fade.Lo) || !finite(sh.Fade.Hi) || sh.Fade.Lo >= sh.Fade.Hi {
			bad("shimmer.fade", "edges must satisfy lo < hi")
		}
		if !finite(sh.Ripple) || !finite(sh.Speed) {
			bad("shimmer.ripple", "must be finite")
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrCompile, errors.Join(errs...))
	}
	return &DiskShader{p: p, span: p.OuterRadius - p.InnerRadius}, nil
}

func finite(v float32) bool { return !math32.IsNaN(v) && !math32.IsInf(v, 0) }
