package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/session"
)

func newScheduler(t *testing.T) *session.Scheduler {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Cols, cfg.Rows = 24, 8
	cfg.Scene.Stars.Count = 50
	s, err := session.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return session.NewScheduler(s)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	src := `name: short
fps: 30
steps:
  - fly: about
    hold: 1
  - glyph: false
    frames: 5
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "short" || len(s.Steps) != 2 {
		t.Fatalf("unexpected script %+v", s)
	}
	if s.Steps[1].Glyph == nil || *s.Steps[1].Glyph {
		t.Error("expected explicit glyph off")
	}
	if got := s.TotalFrames(); got != 35 {
		t.Errorf("expected 35 frames, got %d", got)
	}
}

func TestRunFliesAndPresents(t *testing.T) {
	sc := newScheduler(t)
	s := &Script{Steps: []Step{{Fly: "about", Frames: 134}}}
	glyphs := 0
	res, err := Run(context.Background(), sc, s, func(f session.Frame) error {
		if f.Surface.IsGlyph() {
			glyphs++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 134 || glyphs != 134 {
		t.Errorf("expected 134 glyph frames, got %d (%d glyph)", res.Frames, glyphs)
	}
	st := sc.Session().State()
	if st.Flight.Mode != camera.Idle || st.Position != camera.DefaultSettings().Targets["about"] {
		t.Errorf("expected arrival at about, got %+v", st)
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	sc := newScheduler(t)
	stop := errors.New("disk full")
	n := 0
	_, err := Run(context.Background(), sc, DefaultTour(), func(session.Frame) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected sink error, got %v", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, newScheduler(t), DefaultTour(), nil)
	if !errors.Is(err, context.Canceled) || res.Frames != 0 {
		t.Errorf("expected immediate cancel, got %v after %d frames", err, res.Frames)
	}
}

func TestDefaultTourLength(t *testing.T) {
	if got := DefaultTour().TotalFrames(); got != 660 {
		t.Errorf("expected 660 frames, got %d", got)
	}
}
