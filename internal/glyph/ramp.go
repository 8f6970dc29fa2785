package glyph

// DefaultRamp runs from no ink to full ink.
const DefaultRamp = " .:-=+*#%@"

// Ramp is an ordered glyph sequence, sparse to dense.
type Ramp []rune

func NewRamp(s string) Ramp {
	r := Ramp(s)
	if len(r) == 0 {
		return Ramp(DefaultRamp)
	}
	return r
}

// Index maps a level in [0,1] to a ramp position. It never decreases as
// level grows; out-of-range and NaN levels are clamped.
func (r Ramp) Index(level float32) int {
	level = clamp01(level)
	return int(level*float32(len(r)-1) + 0.5)
}

func (r Ramp) Glyph(level float32) rune { return r[r.Index(level)] }

func clamp01(v float32) float32 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
