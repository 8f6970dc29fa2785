package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	settleEpsilon = 1e-6
	polarEpsilon  = 1e-3
)

// Orbit is the damped drag/zoom input around the world origin. Pending
// deltas are fed in by the host and bleed into the camera a fraction per
// frame, decaying by the same fraction.
type Orbit struct {
	settings OrbitSettings
	azimuth  float64
	polar    float64
	scale    float64
}

func NewOrbit(s OrbitSettings) *Orbit {
	return &Orbit{settings: s, scale: 1}
}

// Drag queues a rotation from a pointer delta.
func (o *Orbit) Drag(dx, dy float64) {
	o.azimuth -= dx * o.settings.RotateSpeed
	o.polar -= dy * o.settings.RotateSpeed
}

// Zoom queues a distance factor; values below 1 move closer. Like a drag it
// is applied a damped fraction per frame.
func (o *Orbit) Zoom(factor float64) {
	if factor > 0 {
		o.scale *= factor
	}
}

// Active reports whether any input is still pending.
func (o *Orbit) Active() bool {
	return o.azimuth != 0 || o.polar != 0 || o.scale != 1
}

// Apply returns pos rotated and scaled by a damped share of the pending
// input. The distance limits hold only while input is pending, so with
// nothing queued pos is returned untouched.
func (o *Orbit) Apply(pos mgl64.Vec3) mgl64.Vec3 {
	dist := pos.Len()
	if dist == 0 || !o.Active() {
		return pos
	}

	theta := math.Atan2(pos.X(), pos.Z())
	phi := math.Acos(clamp(pos.Y()/dist, -1, 1))

	k := o.settings.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	theta += o.azimuth * k
	phi += o.polar * k
	phi = clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	// zoom bleeds in log space so repeated factors compose
	zoom := math.Log(o.scale)
	dist *= math.Exp(zoom * k)
	if minD := o.settings.MinDistance; minD > 0 {
		dist = math.Max(dist, minD)
	}
	if maxD := o.settings.MaxDistance; maxD > 0 {
		dist = math.Min(dist, maxD)
	}

	o.azimuth *= 1 - k
	o.polar *= 1 - k
	zoom *= 1 - k
	if math.Abs(o.azimuth) < settleEpsilon {
		o.azimuth = 0
	}
	if math.Abs(o.polar) < settleEpsilon {
		o.polar = 0
	}
	if math.Abs(zoom) < settleEpsilon {
		o.scale = 1
	} else {
		o.scale = math.Exp(zoom)
	}

	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		dist * sinPhi * math.Sin(theta),
		dist * math.Cos(phi),
		dist * sinPhi * math.Cos(theta),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
