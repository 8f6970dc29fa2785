package camera

import "github.com/go-gl/mathgl/mgl64"

type Mode int

const (
	Idle Mode = iota
	Flying
)

func (m Mode) String() string {
	if m == Flying {
		return "flying"
	}
	return "idle"
}

// FlightState is the single live camera flight. Progress only grows, in
// fixed steps, and reaching 1 ends the flight.
type FlightState struct {
	Mode       Mode
	Start, End mgl64.Vec3
	Progress   float64
	steps      int
}

// advance moves progress forward by one step. Progress is derived from the
// step count so that a flight always ends after exactly ceil(1/step) calls.
func (f *FlightState) advance(step float64) {
	if step <= 0 {
		f.Progress = 1
		return
	}
	f.steps++
	p := float64(f.steps) * step
	if p >= 1-1e-9 {
		p = 1
	}
	f.Progress = p
}

// Ease is the cubic smoothstep p²(3−2p).
func Ease(p float64) float64 {
	return p * p * (3 - 2*p)
}

// Lerp interpolates a→b; s=0 yields a and s=1 yields b exactly.
func Lerp(a, b mgl64.Vec3, s float64) mgl64.Vec3 {
	return a.Mul(1 - s).Add(b.Mul(s))
}

// Position returns the eased position for the current progress.
func (f FlightState) Position() mgl64.Vec3 {
	return Lerp(f.Start, f.End, Ease(f.Progress))
}
