package session

import (
	"errors"
	"testing"

	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/shading"
)

func smallConfig(preset string) *config.Config {
	cfg := config.GetPreset(preset)
	cfg.Cols, cfg.Rows = 40, 15
	cfg.Scene.Stars.Count = 300
	return cfg
}

func newScheduler(t *testing.T, cfg *config.Config, opts ...Option) *Scheduler {
	t.Helper()
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewScheduler(s)
}

func TestTickPresentsGlyphGrid(t *testing.T) {
	sc := newScheduler(t, smallConfig("mono"))
	f, err := sc.Tick(1.0 / 60)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Surface.IsGlyph() || f.Surface.Raster != nil {
		t.Fatal("expected a glyph surface")
	}
	if f.Surface.Grid.Cols != 40 || f.Surface.Grid.Rows != 15 {
		t.Errorf("expected 40x15 grid, got %dx%d", f.Surface.Grid.Cols, f.Surface.Grid.Rows)
	}

	sc.Session().SetGlyphMode(false)
	f, err = sc.Tick(1.0 / 60)
	if err != nil {
		t.Fatal(err)
	}
	if f.Surface.Raster == nil || f.Surface.Raster.Width != 80 || f.Surface.Raster.Height != 60 {
		t.Errorf("expected an 80x60 raster surface, got %+v", f.Surface)
	}
	if f.Index != 2 {
		t.Errorf("expected frame index 2, got %d", f.Index)
	}
}

func TestFlightThroughScheduler(t *testing.T) {
	cfg := smallConfig("mono")
	sc := newScheduler(t, cfg)
	sc.Session().RequestFlight("about")
	for i := 0; i < 134; i++ {
		if _, err := sc.Tick(1.0 / 60); err != nil {
			t.Fatal(err)
		}
		if i < 133 && sc.Session().State().Flight.Mode != camera.Flying {
			t.Fatalf("expected flying at tick %d", i+1)
		}
	}
	st := sc.Session().State()
	if st.Flight.Mode != camera.Idle {
		t.Fatal("expected idle after 134 ticks")
	}
	if st.Position != cfg.Camera.Targets["about"] {
		t.Errorf("expected exact arrival at about, got %v", st.Position)
	}
}

func TestResizeUpdatesLensBeforeNextPass(t *testing.T) {
	cfg := smallConfig("lensed")
	sc := newScheduler(t, cfg)
	s := sc.Session()
	if err := s.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	if err := s.Resize(1600, 1200); err != nil {
		t.Fatal(err)
	}
	b := s.lens.Buffer()
	if b.Width != 1600 || b.Height != 1200 {
		t.Errorf("expected 1600x1200 buffer, got %dx%d", b.Width, b.Height)
	}
	if got := s.lens.Uniforms().Aspect; got != 1600.0/1200.0 {
		t.Errorf("expected aspect %v, got %v", 1600.0/1200.0, got)
	}
	if s.frame.Width != 1600 || s.frame.Height != 1200 {
		t.Errorf("expected 1600x1200 frame, got %dx%d", s.frame.Width, s.frame.Height)
	}
}

func TestCompileFailureIsFatalAtStartup(t *testing.T) {
	cfg := smallConfig("warm")
	cfg.Disk.OuterRadius = cfg.Disk.InnerRadius
	_, err := New(cfg)
	if !errors.Is(err, shading.ErrCompile) {
		t.Errorf("expected ErrCompile, got %v", err)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := smallConfig("mono")
	cfg.FPS = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newScheduler(t, smallConfig("mono"))
	b := newScheduler(t, smallConfig("mono"))
	a.Session().RequestFlight("contact")
	for i := 0; i < 10; i++ {
		a.Tick(1.0 / 60)
		b.Tick(1.0 / 60)
	}
	if a.Session().State().Position == b.Session().State().Position {
		t.Error("expected a flight in one session to leave the other alone")
	}
	if a.Session().ID() == b.Session().ID() {
		t.Error("expected distinct session ids")
	}
}

func TestTargetsListsHomeFirst(t *testing.T) {
	s := newScheduler(t, smallConfig("mono")).Session()
	got := s.Targets()
	want := []string{"home", "about", "contact", "projects"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestStatsTrackFrames(t *testing.T) {
	sc := newScheduler(t, smallConfig("mono"))
	for i := 0; i < 5; i++ {
		sc.Tick(0.5)
	}
	st := sc.Stats()
	if st.Frames != 5 || st.Elapsed != 2.5 || len(st.Recent) != 5 {
		t.Errorf("expected 5 frames over 2.5s, got %+v", st)
	}
}
