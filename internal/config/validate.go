package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/horizon/internal/glyph"
)

// Validate checks everything except the disk table, which shading.Compile
// owns.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Cols <= 0 || c.Rows <= 0 {
		bad("cols and rows must be positive, got %dx%d", c.Cols, c.Rows)
	}
	if c.FPS <= 0 {
		bad("fps must be positive, got %d", c.FPS)
	}

	cam := c.Camera
	if !(cam.FlightStep > 0 && cam.FlightStep <= 1) {
		bad("camera.flight_step must be in (0,1], got %v", cam.FlightStep)
	}
	if !(cam.FOV > 0 && cam.FOV < 180) {
		bad("camera.fov must be in (0,180), got %v", cam.FOV)
	}
	if !(cam.Near > 0 && cam.Far > cam.Near) {
		bad("camera near/far must satisfy 0 < near < far, got %v/%v", cam.Near, cam.Far)
	}
	if cam.Home.Len() == 0 {
		bad("camera.home must not sit on the origin")
	}
	for name, p := range cam.Targets {
		if p.Len() == 0 {
			bad("camera.targets.%s must not sit on the origin", name)
		}
	}
	if cam.Orbit.MaxDistance > 0 && cam.Orbit.MinDistance > cam.Orbit.MaxDistance {
		bad("camera.orbit min_distance exceeds max_distance")
	}

	l := c.Lens
	for name, v := range map[string]float64{
		"strength":       l.Strength,
		"max_deflection": l.MaxDeflection,
		"falloff_radius": l.FalloffRadius,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			bad("lens.%s must be finite and non-negative, got %v", name, v)
		}
	}

	g := c.Glyph
	if g.CellWidth < 1 || g.CellHeight < 1 {
		bad("glyph cell size must be at least 1x1, got %dx%d", g.CellWidth, g.CellHeight)
	}
	if g.Mode != "" && g.Mode != glyph.ModeRamp && g.Mode != glyph.ModeBraille {
		bad("glyph.mode must be ramp or braille, got %q", g.Mode)
	}

	s := c.Scene
	if s.CoreRadius <= 0 {
		bad("scene.core_radius must be positive")
	}
	if s.Stars.Count < 0 || s.Stars.Radius <= 0 {
		bad("scene.stars needs a non-negative count and positive radius")
	}
	for i, b := range s.Bodies {
		if b.Radius <= 0 || b.Distance <= 0 {
			bad("scene.bodies[%d] needs positive radius and distance", i)
		}
	}

	if c.Bloom.Radius < 0 || c.Bloom.Intensity < 0 {
		bad("bloom radius and intensity must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
