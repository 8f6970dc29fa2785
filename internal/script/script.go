// Package script runs YAML flight scripts against a session without a
// display: tours, demos and recordings.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/horizon/internal/session"
	"gopkg.in/yaml.v3"
)

// Script is a scripted sequence of camera and presentation actions.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	FPS         int    `yaml:"fps"`
	Steps       []Step `yaml:"steps"`
}

// Step applies its actions, then renders Hold seconds (or Frames frames)
// of animation.
type Step struct {
	Fly    string     `yaml:"fly,omitempty"`
	Glyph  *bool      `yaml:"glyph,omitempty"`
	Theme  bool       `yaml:"next_theme,omitempty"`
	Drag   [2]float64 `yaml:"drag,omitempty"`
	Zoom   float64    `yaml:"zoom,omitempty"`
	Hold   float64    `yaml:"hold,omitempty"`
	Frames int        `yaml:"frames,omitempty"`
}

// Result counts what a run rendered.
type Result struct {
	Frames  int
	Skipped int
}

// Load reads a script from a YAML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return &s, nil
}

// DefaultTour visits every stock target and returns home.
func DefaultTour() *Script {
	on, off := true, false
	return &Script{
		Name:        "tour",
		Description: "home, about, projects, contact, home",
		FPS:         60,
		Steps: []Step{
			{Hold: 1},
			{Fly: "about", Hold: 2.5},
			{Fly: "projects", Hold: 2.5, Glyph: &off},
			{Fly: "contact", Hold: 2.5, Glyph: &on},
			{Fly: "home", Hold: 2.5},
		},
	}
}

func (s *Script) fps() int {
	if s.FPS > 0 {
		return s.FPS
	}
	return 60
}

// TotalFrames is the number of ticks Run will issue.
func (s *Script) TotalFrames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.frames(s.fps())
	}
	return n
}

func (st Step) frames(fps int) int {
	if st.Frames > 0 {
		return st.Frames
	}
	return int(st.Hold*float64(fps) + 0.5)
}

// Run plays the script on sc at a fixed frame time. sink, when set, receives
// every presented frame; a sink error stops the run. Skipped frames are
// counted and otherwise ignored.
func Run(ctx context.Context, sc *session.Scheduler, s *Script, sink func(session.Frame) error) (Result, error) {
	var res Result
	sess := sc.Session()
	log := sess.Logger()
	dt := 1 / float64(s.fps())

	for i, st := range s.Steps {
		log.Info("script step", "script", s.Name, "step", i+1, "of", len(s.Steps), "fly", st.Fly)
		if st.Fly != "" {
			sess.RequestFlight(st.Fly)
		}
		if st.Glyph != nil {
			sess.SetGlyphMode(*st.Glyph)
		}
		if st.Theme {
			sess.CycleTheme()
		}
		if st.Drag != [2]float64{} {
			sess.Drag(st.Drag[0], st.Drag[1])
		}
		if st.Zoom > 0 {
			sess.Zoom(st.Zoom)
		}

		for range st.frames(s.fps()) {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			f, err := sc.Tick(dt)
			if errors.Is(err, session.ErrFrameSkipped) {
				res.Skipped++
				continue
			}
			if err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
			res.Frames++
			if sink != nil {
				if err := sink(f); err != nil {
					return res, fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		}
	}
	return res, nil
}
