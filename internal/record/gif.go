package record

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/render"
)

// DefaultMaxFrames caps a recording at ten seconds of 60 Hz frames.
const DefaultMaxFrames = 600

// GIF accumulates frames for an animated GIF.
type GIF struct {
	Scale     int
	Delay     int // hundredths of a second
	MaxFrames int
	frames    []*image.Paletted
}

func NewGIF(scale int) *GIF {
	return &GIF{Scale: scale, Delay: 2, MaxFrames: DefaultMaxFrames}
}

func (g *GIF) Len() int { return len(g.frames) }

// AddRaster quantizes a raw frame onto the web-safe palette with dithering.
func (g *GIF) AddRaster(r *render.Raster) bool {
	return g.add(ScaleRaster(r, g.Scale))
}

// AddGrid renders a glyph frame.
func (g *GIF) AddGrid(grid glyph.Grid) bool {
	return g.add(GridImage(grid))
}

func (g *GIF) add(src *image.RGBA) bool {
	if g.MaxFrames > 0 && len(g.frames) >= g.MaxFrames {
		return false
	}
	p := image.NewPaletted(src.Bounds(), palette.WebSafe)
	xdraw.FloydSteinberg.Draw(p, p.Bounds(), src, image.Point{})
	g.frames = append(g.frames, p)
	return true
}

// Encode writes the animation, looping forever.
func (g *GIF) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("record: no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.Delay)
	}
	anim.Config.Width, anim.Config.Height = g.Size()
	return gif.EncodeAll(w, &anim)
}

// Size is the animation canvas: the largest frame in each dimension, since
// frames differ in size when the mode changed mid-recording.
func (g *GIF) Size() (w, h int) {
	for _, frame := range g.frames {
		w = max(w, frame.Bounds().Dx())
		h = max(h, frame.Bounds().Dy())
	}
	return w, h
}

func (g *GIF) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (g *GIF) Reset() { g.frames = g.frames[:0] }
