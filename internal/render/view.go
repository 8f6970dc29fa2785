package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis used by every look-at.
var Up = mgl64.Vec3{0, 1, 0}

// View is a perspective camera looking at a fixed target, bound to a
// viewport size. It is rebuilt every frame and never persisted.
type View struct {
	Eye, Target   mgl64.Vec3
	FOV           float64 // vertical, degrees
	Near, Far     float64
	Width, Height int

	vp    mgl64.Mat4
	focal float64 // pixels per unit at depth 1
}

// NewView builds the view/projection for an eye looking at target.
func NewView(eye, target mgl64.Vec3, fov, near, far float64, w, h int) View {
	v := View{Eye: eye, Target: target, FOV: fov, Near: near, Far: far, Width: w, Height: h}
	proj := mgl64.Perspective(mgl64.DegToRad(fov), v.Aspect(), near, far)
	look := mgl64.LookAtV(eye, target, Up)
	v.vp = proj.Mul4(look)
	v.focal = float64(h) / 2 / math.Tan(mgl64.DegToRad(fov)/2)
	return v
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v View) Aspect() float64 {
	if v.Height <= 0 || v.Width <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// Project converts a world position to pixel coordinates. depth is the
// view-space distance along the view axis; ok is false for points behind the
// near plane. Points outside the viewport still project with ok set.
func (v View) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := v.vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < v.Near {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	x = (ndc.X()*0.5 + 0.5) * float64(v.Width)
	y = (1 - (ndc.Y()*0.5 + 0.5)) * float64(v.Height)
	return x, y, w, true
}

// ProjectUV projects to screen texture coordinates (origin top-left).
func (v View) ProjectUV(p mgl64.Vec3) (mgl64.Vec2, bool) {
	x, y, _, ok := v.Project(p)
	if !ok {
		return mgl64.Vec2{0.5, 0.5}, false
	}
	return mgl64.Vec2{x / float64(v.Width), y / float64(v.Height)}, true
}

// PixelRadius returns the on-screen radius of a world-space length at depth.
func (v View) PixelRadius(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return size * v.focal / depth
}
