package tui

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/san-kum/horizon/internal/render"
)

const upperHalf = "▀"

// HalfBlock renders r into cols×rows terminal cells. Each cell shows two
// vertically stacked samples: the foreground paints the upper half and the
// background the lower one.
func HalfBlock(r *render.Raster, cols, rows int, p termenv.Profile) string {
	if r == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	var b strings.Builder
	r.HalfCells(cols, rows, func(col, row int, top, bottom render.Color) {
		if col == 0 && row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.String(upperHalf).
			Foreground(p.Color(top.Hex())).
			Background(p.Color(bottom.Hex())).
			String())
	})
	return b.String()
}
