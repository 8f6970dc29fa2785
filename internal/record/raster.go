package record

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/render"
)

const (
	charW = 7
	charH = 13
)

// ScaleRaster converts r to RGBA, enlarged by an integer factor with
// nearest-neighbour sampling so pixel edges stay crisp.
func ScaleRaster(r *render.Raster, scale int) *image.RGBA {
	src := r.Image()
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Width*scale, r.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// GridImage draws a glyph grid with the fixed 7x13 font in its theme colors.
// Braille cells are drawn as dots since the font has no Braille glyphs.
func GridImage(g glyph.Grid) *image.RGBA {
	fg := hexColor(string(g.Theme.Foreground), color.White)
	bg := hexColor(string(g.Theme.Background), color.Black)

	img := image.NewRGBA(image.Rect(0, 0, g.Cols*charW, g.Rows*charH))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)

	d := font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: basicfont.Face7x13}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			ch := g.At(col, row)
			if ch >= 0x2800 && ch <= 0x28ff {
				drawBraille(img, col*charW, row*charH, ch, fg)
				continue
			}
			if ch == ' ' {
				continue
			}
			d.Dot = fixed.P(col*charW, row*charH+basicfont.Face7x13.Ascent)
			d.DrawString(string(ch))
		}
	}
	return img
}

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func drawBraille(img *image.RGBA, baseX, baseY int, ch rune, c color.Color) {
	pattern := ch - 0x2800
	dotW, dotH := charW/2, charH/4
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			if pattern&dotBits[dy][dx] == 0 {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.Set(baseX+dx*dotW+px, baseY+dy*dotH+py, c)
				}
			}
		}
	}
}

func hexColor(s string, fallback color.Color) color.Color {
	c, err := render.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c.RGBA()
}
