package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/shading"
)

func testView(w, h int) render.View {
	return render.NewView(mgl64.Vec3{0, 0.25, 4}, mgl64.Vec3{}, 55, 0.1, 500, w, h)
}

func TestStarsOnShell(t *testing.T) {
	s := DefaultSettings()
	sc := New(s)
	if len(sc.Stars()) != s.Stars.Count {
		t.Fatalf("expected %d stars, got %d", s.Stars.Count, len(sc.Stars()))
	}
	lo := s.Stars.Radius * s.Stars.Spread[0]
	hi := s.Stars.Radius * s.Stars.Spread[1]
	for _, p := range sc.Stars() {
		if d := p.Len(); d < lo-1e-9 || d > hi+1e-9 {
			t.Fatalf("expected star radius in [%f,%f], got %f", lo, hi, d)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, b := New(DefaultSettings()), New(DefaultSettings())
	for i := range a.Stars() {
		if a.Stars()[i] != b.Stars()[i] {
			t.Fatal("expected identical starfields for the same seed")
		}
	}
	for i := range a.Bodies() {
		if a.Bodies()[i] != b.Bodies()[i] {
			t.Fatal("expected identical bodies for the same seed")
		}
	}
}

func TestUpdateIntegratesFixedStep(t *testing.T) {
	sc := New(DefaultSettings())
	before := sc.Bodies()
	for i := 0; i < 10; i++ {
		sc.Update()
	}
	after := sc.Bodies()
	if len(after) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(after))
	}
	for i := range after {
		want := before[i].Angle
		for j := 0; j < 10; j++ {
			want += before[i].AngularSpeed * FixedStep
		}
		if after[i].Angle != want {
			t.Errorf("body %d: expected angle %v, got %v", i, want, after[i].Angle)
		}
		if math.Abs(after[i].Spin-10*0.0015) > 1e-12 {
			t.Errorf("body %d: expected spin %v, got %v", i, 10*0.0015, after[i].Spin)
		}
		if d := after[i].Position().Len(); math.Abs(d-after[i].OrbitalRadius) > 1e-9 {
			t.Errorf("body %d: expected orbit radius %v, got %v", i, after[i].OrbitalRadius, d)
		}
	}
	if !after[1].Ring || after[0].Ring {
		t.Error("expected only the second body to carry a ring")
	}
}

func TestBodiesReturnsCopy(t *testing.T) {
	sc := New(DefaultSettings())
	b := sc.Bodies()
	b[0].Angle = 42
	if sc.Bodies()[0].Angle == 42 {
		t.Error("expected Bodies to return a copy")
	}
}

func TestForegroundDrawsCoreAndDisk(t *testing.T) {
	s := DefaultSettings()
	s.Stars.Count = 0
	s.Bodies = nil
	sc := New(s)
	d, err := shading.Compile(shading.MonoDiskParams())
	if err != nil {
		t.Fatal(err)
	}

	r, _ := render.NewRaster(160, 120)
	v := testView(160, 120)
	sc.DrawBackground(r, v)
	sc.DrawForeground(r, v, d, 1.5)

	if c := r.At(80, 60); c != render.Black {
		t.Errorf("expected black core at center, got %v", c)
	}
	if z := r.Depth[60*160+80]; z >= float32(math.Inf(1)) {
		t.Error("expected core to write depth")
	}
	lit := 0
	for _, c := range r.Pix {
		if c.Luminance() > 0.05 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected the disk to cover some pixels")
	}
}

func TestBackgroundHasNoCore(t *testing.T) {
	s := DefaultSettings()
	s.Bodies = nil
	s.Background = render.MustHex("#204060")
	sc := New(s)
	r, _ := render.NewRaster(64, 48)
	sc.DrawBackground(r, testView(64, 48))
	if c := r.At(32, 24); c.Luminance() == 0 {
		t.Errorf("expected background color at center, got %v", c)
	}
}

func TestShimmerOverlaysDiskPlane(t *testing.T) {
	s := DefaultSettings()
	s.Stars.Count = 0
	s.Bodies = nil

	draw := func(shimmer bool) *render.Raster {
		p := shading.MonoDiskParams()
		p.Shimmer.Enabled = shimmer
		d, err := shading.Compile(p)
		if err != nil {
			t.Fatal(err)
		}
		r, _ := render.NewRaster(160, 120)
		v := testView(160, 120)
		sc := New(s)
		sc.DrawBackground(r, v)
		sc.DrawForeground(r, v, d, 1.5)
		return r
	}
	plain, lit := draw(false), draw(true)

	changed := 0
	for i := range plain.Pix {
		if plain.Pix[i] != lit.Pix[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Error("expected the shimmer to change some pixels")
	}
	if c := lit.At(80, 60); c != render.Black {
		t.Errorf("expected the core to hide the shimmer at center, got %v", c)
	}
}

func TestBodiesUseTheirOwnColor(t *testing.T) {
	s := DefaultSettings()
	s.Stars.Count = 0
	s.Bodies[0].Color = render.MustHex("#8aa4ff")
	s.RingColor = render.MustHex("#b3a186")

	if got := s.bodyColor(0); got != s.Bodies[0].Color {
		t.Errorf("expected body color %v, got %v", s.Bodies[0].Color, got)
	}
	if got := s.bodyColor(1); got != s.BodyColor {
		t.Errorf("expected fallback %v, got %v", s.BodyColor, got)
	}
	if got := s.ringColor(); got != s.RingColor {
		t.Errorf("expected ring color %v, got %v", s.RingColor, got)
	}
	if got := DefaultSettings().ringColor(); got != render.White {
		t.Errorf("expected ring fallback to body color, got %v", got)
	}

	sc := New(s)
	center := sc.Bodies()[0].Position()
	eye := center.Add(center.Normalize().Mul(1))
	v := render.NewView(eye, center, 55, 0.1, 500, 64, 48)
	r, _ := render.NewRaster(64, 48)
	sc.DrawBackground(r, v)

	got, want := r.At(32, 24), s.Bodies[0].Color
	if math.Abs(float64(got.R-want.R)) > 1e-3 || math.Abs(float64(got.G-want.G)) > 1e-3 || math.Abs(float64(got.B-want.B)) > 1e-3 {
		t.Errorf("expected body pixel %v, got %v", want, got)
	}
}
