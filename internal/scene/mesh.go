package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/horizon/internal/render"
)

// Annulus is a flat ring tessellated into segments × rings quads in the
// local XZ plane.
type Annulus struct {
	Inner, Outer     float64
	Segments, Rings  int
	cos, sin, radius []float64
}

func NewAnnulus(inner, outer float64, segments, rings int) *Annulus {
	segments = max(segments, 3)
	rings = max(rings, 1)
	a := &Annulus{Inner: inner, Outer: outer, Segments: segments, Rings: rings}
	a.cos = make([]float64, segments+1)
	a.sin = make([]float64, segments+1)
	for i := 0; i <= segments; i++ {
		th := 2 * math.Pi * float64(i) / float64(segments)
		a.cos[i], a.sin[i] = math.Cos(th), math.Sin(th)
	}
	a.radius = make([]float64, rings+1)
	for j := 0; j <= rings; j++ {
		a.radius[j] = inner + (outer-inner)*float64(j)/float64(rings)
	}
	return a
}

// Draw rasterizes the ring. place maps a rest-pose local point (x, 0, z) to
// world space; fragments receive the rest-pose (x, z) as attributes.
func (a *Annulus) Draw(r *render.Raster, v render.View, place func(mgl64.Vec3) mgl64.Vec3, frag render.Fragment, depthWrite bool) {
	vert := func(i, j int) render.Vertex {
		x, z := a.radius[j]*a.cos[i], a.radius[j]*a.sin[i]
		return render.Vertex{
			Pos:  place(mgl64.Vec3{x, 0, z}),
			Attr: [2]float32{float32(x), float32(z)},
		}
	}
	for j := 0; j < a.Rings; j++ {
		for i := 0; i < a.Segments; i++ {
			v00, v10 := vert(i, j), vert(i+1, j)
			v01, v11 := vert(i, j+1), vert(i+1, j+1)
			render.DrawTriangle(r, v, v00, v10, v11, frag, depthWrite)
			render.DrawTriangle(r, v, v00, v11, v01, frag, depthWrite)
		}
	}
}
