package session

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/horizon/internal/post"
)

const statsWindow = 120

// Scheduler drives a session. The host owns the loop and calls Tick once per
// display refresh; each call is one whole frame.
type Scheduler struct {
	s       *Session
	elapsed float64
	frames  int
	skipped int
	cost    []float64
}

func NewScheduler(s *Session) *Scheduler {
	return &Scheduler{s: s}
}

func (sc *Scheduler) Session() *Session { return sc.s }

// Tick advances time by dt seconds and renders one frame: camera, then body
// kinematics, then the background pass, the lens composite, the core and
// disk, and finally presentation. A frame whose buffers cannot be allocated
// comes back Skipped with an error wrapping ErrFrameSkipped; the next Tick
// retries.
func (sc *Scheduler) Tick(dt float64) (Frame, error) {
	start := time.Now()
	s := sc.s
	sc.elapsed += dt
	sc.frames++
	f := Frame{Index: sc.frames, Elapsed: sc.elapsed}

	s.rig.Update(sc.elapsed)
	s.scene.Update()

	if err := s.ensureFrame(); err != nil {
		return sc.skip(f, err)
	}
	r := s.frame
	view := s.rig.View(r.Width, r.Height)

	if s.lens != nil && s.cfg.Lens.Enabled {
		uv, _ := view.ProjectUV(mgl64.Vec3{})
		s.lens.SetCenter(uv)
		if err := s.lens.PassA(view, s.scene.DrawBackground); err != nil {
			return sc.skip(f, err)
		}
		s.lens.PassB(r)
	} else {
		s.scene.DrawBackground(r, view)
	}
	s.scene.DrawForeground(r, view, s.shader, sc.elapsed)
	post.Bloom(r, s.cfg.Bloom)

	if s.glyph.Enabled() {
		g := s.glyph.Process(r)
		f.Surface.Grid = &g
	} else {
		f.Surface.Raster = r
	}
	sc.record(time.Since(start))
	return f, nil
}

func (sc *Scheduler) skip(f Frame, err error) (Frame, error) {
	sc.skipped++
	f.Skipped = true
	sc.s.log.Warn("frame skipped", "frame", f.Index, "err", err)
	return f, fmt.Errorf("%w: %w", ErrFrameSkipped, err)
}

func (sc *Scheduler) record(d time.Duration) {
	sc.cost = append(sc.cost, float64(d.Microseconds())/1000)
	if len(sc.cost) > statsWindow {
		sc.cost = sc.cost[len(sc.cost)-statsWindow:]
	}
}

// Stats summarizes recent frame costs in milliseconds.
type Stats struct {
	Frames  int
	Skipped int
	Elapsed float64
	Recent  []float64
}

func (sc *Scheduler) Stats() Stats {
	return Stats{
		Frames:  sc.frames,
		Skipped: sc.skipped,
		Elapsed: sc.elapsed,
		Recent:  slices.Clone(sc.cost),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
