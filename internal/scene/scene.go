// Package scene owns the world geometry: a starfield shell, the black core,
// the accretion disk mesh and a few slowly orbiting bodies.
package scene

import (
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/shading"
)

const ringSegments = 48

type Scene struct {
	settings Settings
	stars    []mgl64.Vec3
	bodies   []OrbitingBody
	rings    map[int]*Annulus
	disk     *Annulus
	diskKey  [2]float32
	shimmer  *Annulus
	shimKey  [2]float32
}

// New builds the scene. Star positions and initial body angles come from a
// generator seeded with s.Seed; zero picks a random seed.
func New(s Settings) *Scene {
	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sc := &Scene{settings: s, rings: make(map[int]*Annulus)}
	sc.stars = makeStars(rng, s.Stars)
	for i, bs := range s.Bodies {
		sc.bodies = append(sc.bodies, OrbitingBody{
			Angle:         rng.Float64() * 2 * math.Pi,
			AngularSpeed:  bs.Speed,
			OrbitalRadius: bs.Distance,
			SelfSpinRate:  s.SelfSpin,
			Radius:        bs.Radius,
			Tilt:          bs.Tilt,
			Ring:          bs.Ring,
		})
		if bs.Ring {
			sc.rings[i] = NewAnnulus(bs.Radius*1.6, bs.Radius*2.4, ringSegments, 1)
		}
	}
	return sc
}

// makeStars scatters stars uniformly over a thick spherical shell.
func makeStars(rng *rand.Rand, s StarSettings) []mgl64.Vec3 {
	stars := make([]mgl64.Vec3, 0, max(s.Count, 0))
	lo, hi := s.Spread[0], s.Spread[1]
	for range s.Count {
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)
		r := s.Radius * (lo + rng.Float64()*(hi-lo))
		stars = append(stars, mgl64.Vec3{
			r * math.Sin(phi) * math.Cos(theta),
			r * math.Sin(phi) * math.Sin(theta),
			r * math.Cos(phi),
		})
	}
	return stars
}

// Update advances every body by one fixed step.
func (s *Scene) Update() {
	for i := range s.bodies {
		s.bodies[i].Advance(FixedStep)
	}
}

func (s *Scene) Settings() Settings { return s.settings }

func (s *Scene) Stars() []mgl64.Vec3 { return s.stars }

// Bodies returns a copy of the body states.
func (s *Scene) Bodies() []OrbitingBody {
	out := make([]OrbitingBody, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// DrawBackground clears r and draws what lies behind the compact object:
// stars and bodies. Nothing here is touched by the disk or the core.
func (s *Scene) DrawBackground(r *render.Raster, v render.View) {
	r.Clear(s.settings.Background)
	st := s.settings.Stars
	for _, p := range s.stars {
		render.DrawPoint(r, v, p, st.Size, st.Color)
	}
	for i, b := range s.bodies {
		center := b.Position()
		render.DrawSphere(r, v, center, b.Radius, s.bodyShader(v, s.settings.bodyColor(i)))
		if ring, ok := s.rings[i]; ok {
			rot := b.Orientation()
			col := s.settings.ringColor()
			alpha := s.settings.RingOpacity
			ring.Draw(r, v, func(p mgl64.Vec3) mgl64.Vec3 {
				return center.Add(rot.Mul3x1(p))
			}, func([2]float32) (render.Color, float32) {
				return col, alpha
			}, false)
		}
	}
}

// bodyShader lights a view-space normal with the key light transformed into
// the same frame.
func (s *Scene) bodyShader(v render.View, col render.Color) render.Shader {
	l := s.settings.Light
	if l.Key == 0 {
		flat := col.Scale(l.Ambient)
		return func(mgl64.Vec3) render.Color { return flat }
	}
	fwd := v.Target.Sub(v.Eye).Normalize()
	right := fwd.Cross(render.Up).Normalize()
	up := right.Cross(fwd)
	dir := mgl64.Vec3(l.Dir).Normalize()
	lv := mgl64.Vec3{dir.Dot(right), dir.Dot(up), -dir.Dot(fwd)}
	return func(n mgl64.Vec3) render.Color {
		diff := float32(math.Max(0, n.Dot(lv)))
		return col.Scale(l.Ambient + l.Key*diff)
	}
}

// DrawForeground draws the core sphere at true depth and then the disk,
// blended and depth tested against it. Disk displacement points down -Y.
// An enabled shimmer ring goes last, flat in the disk plane. t is elapsed
// seconds.
func (s *Scene) DrawForeground(r *render.Raster, v render.View, d *shading.DiskShader, t float64) {
	black := func(mgl64.Vec3) render.Color { return render.Black }
	render.DrawSphere(r, v, mgl64.Vec3{}, s.settings.CoreRadius, black)

	p := d.Params()
	key := [2]float32{p.InnerRadius, p.OuterRadius}
	if s.disk == nil || s.diskKey != key {
		m := s.settings.Disk
		s.disk = NewAnnulus(float64(p.InnerRadius), float64(p.OuterRadius), m.Segments, m.Rings)
		s.diskKey = key
	}

	tt := float32(t)
	s.disk.Draw(r, v, func(q mgl64.Vec3) mgl64.Vec3 {
		rad := float32(math.Hypot(q.X(), q.Z()))
		phi := float32(math.Atan2(q.Z(), q.X()))
		q[1] -= float64(d.Displace(rad, phi))
		return q
	}, func(at [2]float32) (render.Color, float32) {
		rad := math32.Hypot(at[0], at[1])
		phi := math32.Atan2(at[1], at[0])
		return d.Shade(rad, phi, tt)
	}, false)
	s.drawShimmer(r, v, d, tt)
}

func (s *Scene) drawShimmer(r *render.Raster, v render.View, d *shading.DiskShader, t float32) {
	sh := d.Params().Shimmer
	if !sh.Enabled {
		return
	}
	key := [2]float32{sh.InnerRadius, sh.OuterRadius}
	if s.shimmer == nil || s.shimKey != key {
		s.shimmer = NewAnnulus(float64(sh.InnerRadius), float64(sh.OuterRadius), s.settings.Disk.Segments, 4)
		s.shimKey = key
	}
	flat := func(q mgl64.Vec3) mgl64.Vec3 { return q }
	s.shimmer.Draw(r, v, flat, func(at [2]float32) (render.Color, float32) {
		return d.Shimmer(math32.Hypot(at[0], at[1]), t)
	}, false)
}
