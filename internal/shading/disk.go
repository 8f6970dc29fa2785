// Package shading holds the procedural accretion disk model: streaky value
// noise swirling with time, a three-color ramp, beaming and glow, and soft
// radial alpha edges.
package shading

import (
	"github.com/chewxy/math32"
	"github.com/san-kum/horizon/internal/render"
)

// DiskShader is a compiled, immutable disk model. Only time varies.
type DiskShader struct {
	p    DiskParams
	span float32
}

func (d *DiskShader) Params() DiskParams { return d.p }

// Normalize maps r onto [0,1] across the disk radii.
func (d *DiskShader) Normalize(r float32) float32 {
	tr := (r - d.p.InnerRadius) / d.span
	switch {
	case tr <= 0 || math32.IsNaN(tr):
		return 0
	case tr >= 1:
		return 1
	}
	return tr
}

// Streak returns the streak intensity in [0,1] at normalized radius tr.
func (d *DiskShader) Streak(tr, phi, t float32) float32 {
	np := d.p.Noise
	time := t * d.p.SwirlRate
	band := tr * np.Bands
	n1 := valueNoise(phi*np.Freq[0]-time*np.Drift[0], band+time*np.BandDrift[0])
	n2 := valueNoise(phi*np.Freq[1]-time*np.Drift[1], band+time*np.BandDrift[1])
	return d.p.Streak.step(0.5 * (n1 + n2) * np.Amp)
}

// Alpha is the soft-edged coverage for a given radius and streak.
func (d *DiskShader) Alpha(tr, streak float32) float32 {
	inner := d.p.FadeIn.step(tr)
	outer := 1 - d.p.FadeOut.step(tr)
	return inner * outer * mix(d.p.AlphaFloor, 1, streak)
}

// Shade evaluates color and alpha at local polar (r, φ) and time t seconds.
func (d *DiskShader) Shade(r, phi, t float32) (render.Color, float32) {
	tr := d.Normalize(r)
	s := d.Streak(tr, phi, t)

	ramp := d.p.Ramp
	col := ramp[0].Mix(ramp[1], d.p.RampMid.step(s))
	col = col.Mix(ramp[2], d.p.RampHot.step(s))

	gain := 1 + d.p.DopplerGain*math32.Max(0, math32.Cos(phi))
	gain *= 1 + d.p.GlowGain*Smoothstep(d.p.GlowFrom, 1, s)

	return col.Scale(gain), d.Alpha(tr, s)
}

// Displace returns the out-of-plane offset of a disk vertex: an undulating
// thickness plus a lift of the inner edge, both fading to zero outward.
func (d *DiskShader) Displace(r, phi float32) float32 {
	in := 1 - d.Normalize(r)
	return d.p.Thickness*in*math32.Sin(2*phi) + d.p.Lift*in
}

// Shimmer returns the shimmer ring color and alpha at radius r and time t.
// Alpha is zero outside the ring.
func (d *DiskShader) Shimmer(r, t float32) (render.Color, float32) {
	sh := d.p.Shimmer
	if !sh.Enabled || !(r >= sh.InnerRadius && r <= sh.OuterRadius) {
		return sh.Color, 0
	}
	u := r / (2 * sh.OuterRadius)
	ripple := 0.5 + 0.5*math32.Sin(sh.Ripple*u-sh.Speed*t)
	return sh.Color, sh.Opacity * (1 - sh.Fade.step(u)) * ripple
}
