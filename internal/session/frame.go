package session

import (
	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/render"
)

// Surface is the presentable output of a frame: a raster in raw mode or a
// glyph grid in glyph mode. Exactly one is set.
type Surface struct {
	Raster *render.Raster
	Grid   *glyph.Grid
}

func (s Surface) IsGlyph() bool { return s.Grid != nil }

// Frame is the result of one Tick.
type Frame struct {
	Index   int
	Elapsed float64
	Skipped bool
	Surface Surface
}
