package record

import (
	"fmt"
	"html"
	"image/png"
	"io"
	"strings"

	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/render"
)

func WritePNG(w io.Writer, r *render.Raster, scale int) error {
	return png.Encode(w, ScaleRaster(r, scale))
}

func WriteGridPNG(w io.Writer, g glyph.Grid) error {
	return png.Encode(w, GridImage(g))
}

func WriteText(w io.Writer, g glyph.Grid) error {
	_, err := io.WriteString(w, g.String()+"\n")
	return err
}

// GridToSVG renders a glyph grid as SVG text rows in the theme colors.
// Braille cells become dots.
func GridToSVG(g glyph.Grid, scale float64) string {
	cw, ch := scale*0.6, scale
	width, height := float64(g.Cols)*cw, float64(g.Rows)*ch

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s" font-family="monospace" font-size="%.1f" xml:space="preserve">
`, width, height, width, height, g.Theme.Background, g.Theme.Foreground, scale)

	dotR := cw * 0.2
	for row := 0; row < g.Rows; row++ {
		var text strings.Builder
		for col := 0; col < g.Cols; col++ {
			r := g.At(col, row)
			if r < 0x2800 || r > 0x28ff {
				text.WriteRune(r)
				continue
			}
			text.WriteRune(' ')
			pattern := r - 0x2800
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := float64(col)*cw + (float64(dx)+0.5)*cw/2
					cy := float64(row)*ch + (float64(dy)+0.5)*ch/4
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotR)
				}
			}
		}
		if line := strings.TrimRight(text.String(), " "); line != "" {
			fmt.Fprintf(&sb, "<text x=\"0\" y=\"%.1f\">%s</text>\n", float64(row+1)*ch-ch*0.2, html.EscapeString(line))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
