package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DrawPoint splats a size-attenuated round sprite (stars). size is the world
// space diameter; sprites never shrink below one pixel.
func DrawPoint(r *Raster, v View, p mgl64.Vec3, size float64, c Color) {
	sx, sy, depth, ok := v.Project(p)
	if !ok || depth > v.Far {
		return
	}
	rad := math.Max(0.5, v.PixelRadius(size/2, depth))
	x0, x1 := int(math.Floor(sx-rad)), int(math.Ceil(sx+rad))
	y0, y1 := int(math.Floor(sy-rad)), int(math.Ceil(sy+rad))
	z := float32(depth)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-sx, float64(y)+0.5-sy
			d := math.Sqrt(dx*dx+dy*dy) / rad
			if d > 1 {
				continue
			}
			if !r.DepthTest(x, y, z, false) {
				continue
			}
			r.Blend(x, y, c, float32(1-d*d))
		}
	}
}

// Shader colors a sphere fragment given its view-facing normal.
type Shader func(n mgl64.Vec3) Color

// DrawSphere rasterizes a sphere as a projected disc with per-pixel
// spherical depth. The depth buffer is written.
func DrawSphere(r *Raster, v View, center mgl64.Vec3, radius float64, shade Shader) {
	sx, sy, depth, ok := v.Project(center)
	if !ok || depth-radius > v.Far {
		return
	}
	rad := v.PixelRadius(radius, depth)
	if rad < 0.5 {
		rad = 0.5
	}
	x0, x1 := int(math.Floor(sx-rad)), int(math.Ceil(sx+rad))
	y0, y1 := int(math.Floor(sy-rad)), int(math.Ceil(sy+rad))
	for y := max(y0, 0); y <= min(y1, r.Height-1); y++ {
		for x := max(x0, 0); x <= min(x1, r.Width-1); x++ {
			nx := (float64(x) + 0.5 - sx) / rad
			ny := (sy - float64(y) - 0.5) / rad
			d2 := nx*nx + ny*ny
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			z := float32(depth - radius*nz)
			if !r.DepthTest(x, y, z, true) {
				continue
			}
			r.Set(x, y, shade(mgl64.Vec3{nx, ny, nz}))
		}
	}
}

// Vertex is a mesh vertex with two interpolated attributes.
type Vertex struct {
	Pos  mgl64.Vec3
	Attr [2]float32
}

// Fragment returns color and coverage for interpolated attributes.
type Fragment func(attr [2]float32) (Color, float32)

// DrawTriangle rasterizes a double-sided triangle with perspective-correct
// attribute interpolation. Fragments are depth tested; depth is written only
// when depthWrite is set. Triangles touching the near plane are dropped.
func DrawTriangle(r *Raster, v View, a, b, c Vertex, frag Fragment, depthWrite bool) {
	var px, py, pw [3]float64
	for i, vert := range [3]Vertex{a, b, c} {
		x, y, w, ok := v.Project(vert.Pos)
		if !ok {
			return
		}
		px[i], py[i], pw[i] = x, y, w
	}
	area := edge(px[0], py[0], px[1], py[1], px[2], py[2])
	if math.Abs(area) < 1e-9 {
		return
	}
	x0 := max(int(math.Floor(min(px[0], px[1], px[2]))), 0)
	x1 := min(int(math.Ceil(max(px[0], px[1], px[2]))), r.Width-1)
	y0 := max(int(math.Floor(min(py[0], py[1], py[2]))), 0)
	y1 := min(int(math.Ceil(max(py[0], py[1], py[2]))), r.Height-1)

	attrs := [3][2]float32{a.Attr, b.Attr, c.Attr}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			w0 := edge(px[1], py[1], px[2], py[2], cx, cy) / area
			w1 := edge(px[2], py[2], px[0], py[0], cx, cy) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			// perspective-correct weights
			q0, q1, q2 := w0/pw[0], w1/pw[1], w2/pw[2]
			qs := q0 + q1 + q2
			z := float32(1 / qs)
			if !r.DepthTest(x, y, z, depthWrite) {
				continue
			}
			k0, k1, k2 := float32(q0/qs), float32(q1/qs), float32(q2/qs)
			var at [2]float32
			for j := range at {
				at[j] = attrs[0][j]*k0 + attrs[1][j]*k1 + attrs[2][j]*k2
			}
			col, alpha := frag(at)
			r.Blend(x, y, col, alpha)
		}
	}
}

func edge(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// FullscreenPass writes every pixel from fn evaluated at the pixel center's
// texture coordinates and resets depth, like a background quad.
func FullscreenPass(r *Raster, fn func(u, v float64) Color) {
	inf := float32(math.Inf(1))
	for y := 0; y < r.Height; y++ {
		v := (float64(y) + 0.5) / float64(r.Height)
		for x := 0; x < r.Width; x++ {
			u := (float64(x) + 0.5) / float64(r.Width)
			i := y*r.Width + x
			r.Pix[i] = fn(u, v)
			r.Depth[i] = inf
		}
	}
}
