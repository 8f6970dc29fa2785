package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitingBody is a planet on a circular orbit in the XZ plane. Angle is
// unbounded; trig wraps it.
type OrbitingBody struct {
	Angle         float64
	AngularSpeed  float64
	OrbitalRadius float64
	SelfSpinRate  float64
	Spin          float64

	Radius float64
	Tilt   float64
	Ring   bool
}

// Advance integrates one frame of motion with a fixed step.
func (b *OrbitingBody) Advance(step float64) {
	b.Angle += b.AngularSpeed * step
	b.Spin += b.SelfSpinRate
}

func (b OrbitingBody) Position() mgl64.Vec3 {
	return mgl64.Vec3{
		math.Cos(b.Angle) * b.OrbitalRadius,
		0,
		math.Sin(b.Angle) * b.OrbitalRadius,
	}
}

// Orientation rotates body-local geometry (the ring plane) into world space.
func (b OrbitingBody) Orientation() mgl64.Mat3 {
	return mgl64.Rotate3DY(b.Spin).Mul3(mgl64.Rotate3DZ(b.Tilt)).Mul3(mgl64.Rotate3DX(b.Tilt))
}
