// Package camera implements the camera rig: a pose that is either flying
// between named targets or idly drifting, with damped orbit input layered on
// top and a look-at toward the world origin recomputed every frame.
package camera

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/horizon/internal/render"
)

// Rig owns the camera position and its flight state.
type Rig struct {
	settings Settings
	position mgl64.Vec3
	flight   FlightState
	orbit    *Orbit
}

func NewRig(s Settings) *Rig {
	return &Rig{
		settings: s,
		position: s.Home,
		flight:   FlightState{Mode: Idle, Start: s.Home, End: s.Home, Progress: 1},
		orbit:    NewOrbit(s.Orbit),
	}
}

// Target resolves a target name. Unknown names resolve to home.
func (r *Rig) Target(name string) (mgl64.Vec3, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == HomeTarget {
		return r.settings.Home, true
	}
	if p, ok := r.settings.Targets[name]; ok {
		return p, true
	}
	return r.settings.Home, false
}

// RequestFlight starts a flight from the current position to the named
// target, replacing any flight in progress.
func (r *Rig) RequestFlight(name string) {
	end, _ := r.Target(name)
	r.flight = FlightState{Mode: Flying, Start: r.position, End: end}
}

// Update runs once per frame. elapsed is total session time in seconds.
func (r *Rig) Update(elapsed float64) {
	if r.flight.Mode == Flying {
		r.flight.advance(r.settings.FlightStep)
		r.position = r.flight.Position()
		if r.flight.Progress >= 1 {
			r.flight.Mode = Idle
		}
	} else {
		d := r.settings.Drift
		r.position[0] += math.Sin(elapsed*d.FreqX) * d.AmpX
		r.position[1] += math.Sin(elapsed*d.FreqY) * d.AmpY
	}
	r.position = r.orbit.Apply(r.position)
}

// Drag forwards pointer input to the orbit controls.
func (r *Rig) Drag(dx, dy float64) { r.orbit.Drag(dx, dy) }

// Zoom forwards a zoom factor to the orbit controls.
func (r *Rig) Zoom(factor float64) { r.orbit.Zoom(factor) }

func (r *Rig) Position() mgl64.Vec3 { return r.position }
func (r *Rig) Flight() FlightState  { return r.flight }
func (r *Rig) Settings() Settings   { return r.settings }

// View builds the look-at view for the current position and viewport. The
// orientation is derived here every time and never stored.
func (r *Rig) View(w, h int) render.View {
	s := r.settings
	return render.NewView(r.position, mgl64.Vec3{}, s.FOV, s.Near, s.Far, w, h)
}
