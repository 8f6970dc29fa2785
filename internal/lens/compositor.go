// Package lens implements the two-pass screen-space lensing composite. Pass A
// renders background content into an offscreen buffer; pass B samples that
// buffer through a radial warp centered on the projected compact object.
package lens

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/horizon/internal/render"
)

// Allocator creates an offscreen buffer of the given size.
type Allocator func(w, h int) (*render.Raster, error)

type Option func(*Compositor)

// WithAllocator replaces render.NewRaster as the buffer source.
func WithAllocator(a Allocator) Option {
	return func(c *Compositor) { c.alloc = a }
}

// Compositor owns the offscreen buffer exclusively.
type Compositor struct {
	params   Params
	uniforms Uniforms
	buf      *render.Raster
	alloc    Allocator

	want    [2]int
	pending bool
}

// New allocates the initial buffer. An allocation failure here is returned
// but leaves a usable compositor that retries on the next pass.
func New(p Params, w, h int, opts ...Option) (*Compositor, error) {
	c := &Compositor{
		params:   p,
		alloc:    render.NewRaster,
		uniforms: Uniforms{Center: mgl64.Vec2{0.5, 0.5}, Aspect: 1},
	}
	for _, o := range opts {
		o(c)
	}
	return c, c.Resize(w, h)
}

func (c *Compositor) Params() Params         { return c.params }
func (c *Compositor) SetParams(p Params)     { c.params = p }
func (c *Compositor) Uniforms() Uniforms     { return c.uniforms }
func (c *Compositor) Buffer() *render.Raster { return c.buf }

// Pending reports whether a resize is still waiting for a buffer.
func (c *Compositor) Pending() bool { return c.pending }

// Resize reallocates the buffer for a new viewport. The new buffer is built
// first and swapped in only on success; the old one is dropped after the
// swap. On failure the size stays pending for the next pass.
func (c *Compositor) Resize(w, h int) error {
	c.want = [2]int{w, h}
	c.pending = true
	return c.ensure()
}

func (c *Compositor) ensure() error {
	if !c.pending {
		return nil
	}
	w, h := c.want[0], c.want[1]
	next, err := c.alloc(w, h)
	if err != nil {
		return fmt.Errorf("%w: %dx%d: %w", ErrBufferUnavailable, w, h, err)
	}
	c.buf = next
	c.pending = false
	c.uniforms.Aspect = float64(w) / float64(h)
	return nil
}

// SetCenter sets the warp center in screen UV. Called every frame with the
// fresh projection of the world origin.
func (c *Compositor) SetCenter(uv mgl64.Vec2) { c.uniforms.Center = uv }

// PassA draws background-only content into the offscreen buffer.
func (c *Compositor) PassA(v render.View, draw func(*render.Raster, render.View)) error {
	if err := c.ensure(); err != nil {
		return err
	}
	draw(c.buf, v)
	return nil
}

// PassB fills dst with the warped buffer. dst depth is reset so that
// anything drawn afterwards lands on top.
func (c *Compositor) PassB(dst *render.Raster) {
	if c.buf == nil {
		return
	}
	src, u, p := c.buf, c.uniforms, c.params
	render.FullscreenPass(dst, func(x, y float64) render.Color {
		s := Warp(mgl64.Vec2{x, y}, u.Center, u.Aspect, p)
		return src.Sample(s[0], s[1])
	})
}
