// Package session wires the renderer together. A Session owns one camera rig,
// scene, disk shader, lens compositor and glyph post-process; a Scheduler
// drives it one frame at a time. Sessions share nothing, so any number may
// run side by side.
package session

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/lens"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/scene"
	"github.com/san-kum/horizon/internal/shading"
)

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithAllocator sets how both the frame raster and the offscreen buffer are
// allocated.
func WithAllocator(a lens.Allocator) Option {
	return func(s *Session) { s.alloc = a }
}

type Session struct {
	id  string
	cfg *config.Config
	log *slog.Logger

	rig    *camera.Rig
	scene  *scene.Scene
	shader *shading.DiskShader
	lens   *lens.Compositor
	glyph  *glyph.PostProcess

	alloc   lens.Allocator
	frame   *render.Raster
	size    [2]int
	pending bool
}

// New builds a session from cfg. A disk that fails to compile or an invalid
// config is returned as an error; nothing is started. A failed initial
// buffer allocation is not fatal and is retried on the first tick.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shader, err := shading.Compile(cfg.Disk)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		log:    slog.New(slog.DiscardHandler),
		rig:    camera.NewRig(cfg.Camera),
		scene:  scene.New(cfg.Scene),
		shader: shader,
		glyph:  glyph.New(cfg.Glyph),
		alloc:  render.NewRaster,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("session", s.id)

	w, h := cfg.RasterSize()
	if err := s.Resize(w, h); err != nil {
		s.log.Warn("initial allocation failed", "err", err)
	}
	s.log.Info("session started", "preset", cfg.Preset, "width", w, "height", h)
	return s, nil
}

func (s *Session) ID() string             { return s.id }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Logger() *slog.Logger   { return s.log }

// RequestFlight starts a camera flight. Unknown names fly home.
func (s *Session) RequestFlight(name string) {
	if _, ok := s.rig.Target(name); !ok {
		s.log.Debug("unknown target, flying home", "target", name)
	}
	s.rig.RequestFlight(name)
}

// Targets lists the flight targets, home first.
func (s *Session) Targets() []string {
	names := []string{camera.HomeTarget}
	for _, name := range sortedKeys(s.cfg.Camera.Targets) {
		if name != camera.HomeTarget {
			names = append(names, name)
		}
	}
	return names
}

func (s *Session) SetGlyphMode(on bool) { s.glyph.SetEnabled(on) }
func (s *Session) ToggleGlyphMode()     { s.glyph.Toggle() }
func (s *Session) GlyphMode() bool      { return s.glyph.Enabled() }

func (s *Session) Theme() glyph.Theme { return s.glyph.Theme() }

// CycleTheme switches the glyph colors to the next theme.
func (s *Session) CycleTheme() glyph.Theme {
	t := s.glyph.Theme().Next()
	s.glyph.SetTheme(t)
	return t
}

func (s *Session) Drag(dx, dy float64) { s.rig.Drag(dx, dy) }
func (s *Session) Zoom(f float64)      { s.rig.Zoom(f) }

// CellSize is the raster footprint of one glyph.
func (s *Session) CellSize() (int, int) { return s.glyph.CellSize() }

// Size is the requested frame raster size.
func (s *Session) Size() (int, int) { return s.size[0], s.size[1] }

// Resize reallocates the frame raster and the lens buffer. Both are built
// before they replace the current ones. On failure the new size stays
// pending and is retried by the next tick.
func (s *Session) Resize(w, h int) error {
	if w == s.size[0] && h == s.size[1] && !s.pending {
		return nil
	}
	s.size = [2]int{w, h}
	s.pending = true
	if err := s.ensureFrame(); err != nil {
		s.log.Warn("resize failed", "width", w, "height", h, "err", err)
		return err
	}
	s.log.Debug("resized", "width", w, "height", h)
	return nil
}

// ResizeCells sizes the raster for a cols×rows glyph grid.
func (s *Session) ResizeCells(cols, rows int) error {
	cw, ch := s.glyph.CellSize()
	return s.Resize(cols*cw, rows*ch)
}

func (s *Session) ensureFrame() error {
	if !s.pending {
		return nil
	}
	w, h := s.size[0], s.size[1]
	next, err := s.alloc(w, h)
	if err != nil {
		return fmt.Errorf("%w: %dx%d: %w", lens.ErrBufferUnavailable, w, h, err)
	}
	if s.cfg.Lens.Enabled {
		if s.lens == nil {
			s.lens, err = lens.New(s.cfg.Lens, w, h, lens.WithAllocator(s.alloc))
		} else {
			err = s.lens.Resize(w, h)
		}
		if err != nil {
			return err
		}
	}
	s.frame = next
	s.pending = false
	return nil
}

// Reload applies new presentation and shading settings. The camera and the
// scene kinematics are left exactly as they are. On error nothing changes.
func (s *Session) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	shader, err := shading.Compile(cfg.Disk)
	if err != nil {
		return err
	}

	next := *cfg
	next.Camera = s.cfg.Camera
	next.Scene = s.cfg.Scene

	oldW, oldH := s.glyph.CellSize()
	gs := cfg.Glyph
	gs.Enabled = s.glyph.Enabled()
	s.glyph = glyph.New(gs)
	s.shader = shader
	s.cfg = &next

	switch {
	case !cfg.Lens.Enabled:
		s.lens = nil
	case s.lens == nil:
		s.pending = true
	default:
		s.lens.SetParams(cfg.Lens)
	}

	// a failed allocation here stays pending for the next tick
	cw, ch := s.glyph.CellSize()
	switch {
	case cw != oldW || ch != oldH:
		cols, rows := max(s.size[0]/oldW, 1), max(s.size[1]/oldH, 1)
		_ = s.Resize(cols*cw, rows*ch)
	case s.pending:
		_ = s.ensureFrame()
	}
	s.log.Info("config reloaded", "preset", cfg.Preset)
	return nil
}

// State is a read-only snapshot for HUDs and tests.
type State struct {
	Position mgl64.Vec3
	Flight   camera.FlightState
	Bodies   []scene.OrbitingBody
}

func (s *Session) State() State {
	return State{Position: s.rig.Position(), Flight: s.rig.Flight(), Bodies: s.scene.Bodies()}
}
