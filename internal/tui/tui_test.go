package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/session"
)

func splitRaster(t *testing.T) *render.Raster {
	t.Helper()
	r, err := render.NewRaster(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 4 {
		for x := range 4 {
			if y < 2 {
				r.Set(x, y, render.Color{R: 1})
			} else {
				r.Set(x, y, render.Color{B: 1})
			}
		}
	}
	return r
}

func TestHalfBlockAscii(t *testing.T) {
	got := HalfBlock(splitRaster(t), 2, 1, termenv.Ascii)
	if got != "▀▀" {
		t.Errorf("expected two bare half blocks, got %q", got)
	}
	if got := HalfBlock(splitRaster(t), 3, 2, termenv.Ascii); strings.Count(got, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", got)
	}
	if HalfBlock(nil, 2, 2, termenv.Ascii) != "" {
		t.Error("expected empty output for nil raster")
	}
}

func TestHalfBlockTrueColor(t *testing.T) {
	got := HalfBlock(splitRaster(t), 1, 1, termenv.TrueColor)
	if !strings.Contains(got, "38;2;255;0;0") {
		t.Errorf("expected red upper half, got %q", got)
	}
	if !strings.Contains(got, "48;2;0;0;255") {
		t.Errorf("expected blue lower half, got %q", got)
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	cfg := config.GetPreset("mono")
	cfg.Cols, cfg.Rows = 30, 10
	cfg.Scene.Stars.Count = 200
	s, err := session.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(session.NewScheduler(s), opts)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick(m Model) Model {
	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		panic("expected the next tick to be scheduled")
	}
	return next.(Model)
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	sess := m.sched.Session()

	m = press(m, "m")
	if sess.GlyphMode() {
		t.Error("expected m to switch to raw mode")
	}
	m = press(m, "m")
	if !sess.GlyphMode() {
		t.Error("expected m to switch back to glyph mode")
	}

	m = press(m, "1")
	if sess.State().Flight.Mode != camera.Flying {
		t.Error("expected 1 to start a flight")
	}

	before := sess.Theme().Name
	m = press(m, "t")
	if sess.Theme().Name == before {
		t.Error("expected t to change the theme")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected q to quit")
	}
}

func TestModelTickPresentsFrame(t *testing.T) {
	m := newTestModel(t, Options{HUD: true})
	m = tick(m)
	if m.frame.Index != 1 || !m.frame.Surface.IsGlyph() {
		t.Fatalf("expected first glyph frame, got %+v", m.frame)
	}
	view := m.View()
	if !strings.Contains(view, "glyph") {
		t.Errorf("expected status line in view, got %q", view)
	}

	m = press(m, "m")
	m = tick(m)
	if m.frame.Surface.Raster == nil {
		t.Fatal("expected a raw frame after toggling")
	}
	if !strings.Contains(m.View(), upperHalf) {
		t.Error("expected half blocks in raw mode")
	}
}

func TestModelWindowResize(t *testing.T) {
	m := newTestModel(t, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 21})
	m = next.(Model)

	sess := m.sched.Session()
	cw, ch := sess.CellSize()
	w, h := sess.Size()
	if w != 50*cw || h != 20*ch {
		t.Errorf("expected %dx%d raster, got %dx%d", 50*cw, 20*ch, w, h)
	}
	m = tick(m)
	if g := m.frame.Surface.Grid; g == nil || g.Cols != 50 || g.Rows != 20 {
		t.Errorf("expected 50x20 grid after resize")
	}
}

func TestModelRecording(t *testing.T) {
	store := record.NewStore(t.TempDir())
	m := newTestModel(t, Options{Store: store})

	m = press(m, "g")
	for range 3 {
		m = tick(m)
	}
	m = press(m, "g")
	if m.recording {
		t.Fatal("expected recording to stop")
	}
	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Frames != 3 {
		t.Errorf("expected one 3-frame recording, got %+v", list)
	}
}

func TestStreamWritesFrames(t *testing.T) {
	m := newTestModel(t, Options{})
	f, err := m.sched.Tick(1.0 / 60)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	s := NewStream(&buf, "horizon", 30, 10, 60, termenv.WithProfile(termenv.Ascii))
	if err := s.Write(f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "frame 1") {
		t.Errorf("expected header, got %q", out)
	}
	if !strings.Contains(out, f.Surface.Grid.Line(0)) {
		t.Error("expected the first grid line in output")
	}

	buf.Reset()
	if err := s.Write(f); err != nil || buf.Len() != 0 {
		t.Errorf("expected second frame within the interval to be dropped, wrote %d bytes", buf.Len())
	}
}

func TestModelReload(t *testing.T) {
	m := newTestModel(t, Options{})
	next, _ := m.Update(ReloadMsg{Config: config.GetPreset("cyan")})
	m = next.(Model)
	if m.status != "config reloaded" {
		t.Errorf("expected reload status, got %q", m.status)
	}
	if got := m.sched.Session().Theme().Name; got != "cyan" {
		t.Errorf("expected cyan theme after reload, got %s", got)
	}

	bad := config.GetPreset("mono")
	bad.Disk.OuterRadius = 0
	next, _ = m.Update(ReloadMsg{Config: bad})
	m = next.(Model)
	if !strings.HasPrefix(m.status, "reload failed") {
		t.Errorf("expected rejected reload, got %q", m.status)
	}
	if got := m.sched.Session().Theme().Name; got != "cyan" {
		t.Errorf("expected the previous config to stay, got theme %s", got)
	}
}
