package shading

import "github.com/san-kum/horizon/internal/render"

// Edge is a smoothstep window [Lo, Hi].
type Edge struct {
	Lo float32 `yaml:"lo" toml:"lo"`
	Hi float32 `yaml:"hi" toml:"hi"`
}

// NoiseParams places the two value-noise samples. Each sample reads the field
// at (φ·Freq − t·Drift, band ± t·Band) where band = t_r·Bands.
type NoiseParams struct {
	Bands     float32    `yaml:"bands" toml:"bands"`
	Freq      [2]float32 `yaml:"freq" toml:"freq"`
	Drift     [2]float32 `yaml:"drift" toml:"drift"`
	BandDrift [2]float32 `yaml:"band_drift" toml:"band_drift"`
	Amp       float32    `yaml:"amp" toml:"amp"`
}

// DiskParams is the full tuning table for the accretion disk. It is copied
// into a DiskShader by Compile and never changes afterwards.
type DiskParams struct {
	InnerRadius float32         `yaml:"inner_radius" toml:"inner_radius"`
	OuterRadius float32         `yaml:"outer_radius" toml:"outer_radius"`
	Ramp        [3]render.Color `yaml:"ramp" toml:"ramp"`
	GlowGain    float32         `yaml:"glow_gain" toml:"glow_gain"`
	DopplerGain float32         `yaml:"doppler_gain" toml:"doppler_gain"`
	SwirlRate   float32         `yaml:"swirl_rate" toml:"swirl_rate"`

	Noise      NoiseParams `yaml:"noise" toml:"noise"`
	Streak     Edge        `yaml:"streak" toml:"streak"`
	RampMid    Edge        `yaml:"ramp_mid" toml:"ramp_mid"`
	RampHot    Edge        `yaml:"ramp_hot" toml:"ramp_hot"`
	GlowFrom   float32     `yaml:"glow_from" toml:"glow_from"`
	FadeIn     Edge        `yaml:"fade_in" toml:"fade_in"`
	FadeOut    Edge        `yaml:"fade_out" toml:"fade_out"`
	AlphaFloor float32     `yaml:"alpha_floor" toml:"alpha_floor"`

	// Out-of-plane vertex offset. Shape only, unrelated to the lens warp.
	Thickness float32 `yaml:"thickness" toml:"thickness"`
	Lift      float32 `yaml:"lift" toml:"lift"`

	Shimmer ShimmerParams `yaml:"shimmer" toml:"shimmer"`
}

// ShimmerParams is the faint rippling ring drawn flat over the disk plane.
// With u = r/(2·OuterRadius) its alpha is
// Opacity·(1−smoothstep(Fade, u))·(0.5+0.5·sin(Ripple·u − Speed·t)).
type ShimmerParams struct {
	Enabled     bool         `yaml:"enabled" toml:"enabled"`
	InnerRadius float32      `yaml:"inner_radius" toml:"inner_radius"`
	OuterRadius float32      `yaml:"outer_radius" toml:"outer_radius"`
	Color       render.Color `yaml:"color" toml:"color"`
	Opacity     float32      `yaml:"opacity" toml:"opacity"`
	Fade        Edge         `yaml:"fade" toml:"fade"`
	Ripple      float32      `yaml:"ripple" toml:"ripple"`
	Speed       float32      `yaml:"speed" toml:"speed"`
}

const (
	HorizonRadius = 0.78
	DiskOuter     = 1.95
)

var (
	WarmRamp = [3]render.Color{render.MustHex("#fff6e8"), render.MustHex("#ffd166"), render.MustHex("#ff8c42")}
	MonoRamp = [3]render.Color{render.White, render.White, render.White}
)

// DefaultDiskParams returns the warm disk.
func DefaultDiskParams() DiskParams {
	return DiskParams{
		InnerRadius: HorizonRadius * 1.05,
		OuterRadius: DiskOuter,
		Ramp:        WarmRamp,
		GlowGain:    1.3,
		DopplerGain: 0.6,
		SwirlRate:   0.22,
		Noise: NoiseParams{
			Bands:     6,
			Freq:      [2]float32{12, 13.4},
			Drift:     [2]float32{3, 2.6},
			BandDrift: [2]float32{1.1, -0.9},
			Amp:       1,
		},
		Streak:     Edge{0.45, 0.98},
		RampMid:    Edge{0.35, 0.45},
		RampHot:    Edge{0.65, 0.75},
		GlowFrom:   0.6,
		FadeIn:     Edge{0.02, 0.10},
		FadeOut:    Edge{0.88, 1},
		AlphaFloor: 0.55,
		Thickness:  0.20,
		Lift:       0.32,
		Shimmer:    DefaultShimmerParams(),
	}
}

// DefaultShimmerParams returns the shimmer ring, switched off.
func DefaultShimmerParams() ShimmerParams {
	return ShimmerParams{
		InnerRadius: 0.8,
		OuterRadius: 1.5,
		Color:       render.Color{R: 0.98, G: 0.98, B: 0.98},
		Opacity:     0.08,
		Fade:        Edge{0.32, 0.5},
		Ripple:      10,
		Speed:       0.6,
	}
}

// MonoDiskParams is the white ring: texture through alpha only.
func MonoDiskParams() DiskParams {
	p := DefaultDiskParams()
	p.Ramp = MonoRamp
	p.GlowGain = 0
	p.DopplerGain = 0
	return p
}
