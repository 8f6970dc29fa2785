package render

import (
	"fmt"
	"image"
	"math"
)

// Raster is a color + depth render target. Depth holds view-space distance;
// cleared pixels have depth +Inf.
type Raster struct {
	Width, Height int
	Pix           []Color
	Depth         []float32
}

func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	r := &Raster{
		Width:  w,
		Height: h,
		Pix:    make([]Color, w*h),
		Depth:  make([]float32, w*h),
	}
	r.Clear(Black)
	return r, nil
}

// Clear fills every pixel with bg and resets depth.
func (r *Raster) Clear(bg Color) {
	inf := float32(math.Inf(1))
	for i := range r.Pix {
		r.Pix[i] = bg
		r.Depth[i] = inf
	}
}

func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}

func (r *Raster) At(x, y int) Color {
	if !r.InBounds(x, y) {
		return Black
	}
	return r.Pix[y*r.Width+x]
}

func (r *Raster) Set(x, y int, c Color) {
	if r.InBounds(x, y) {
		r.Pix[y*r.Width+x] = c
	}
}

// Blend composites c over the existing pixel with the given alpha.
func (r *Raster) Blend(x, y int, c Color, a float32) {
	if !r.InBounds(x, y) || a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := y*r.Width + x
	r.Pix[i] = r.Pix[i].Mix(c, a)
}

// DepthTest reports whether z is nearer than the stored depth, writing it
// when write is set.
func (r *Raster) DepthTest(x, y int, z float32, write bool) bool {
	if !r.InBounds(x, y) {
		return false
	}
	i := y*r.Width + x
	if z >= r.Depth[i] {
		return false
	}
	if write {
		r.Depth[i] = z
	}
	return true
}

// Luminance returns the Rec.709 luminance of a pixel.
func (r *Raster) Luminance(x, y int) float32 {
	return r.At(x, y).Luminance()
}

// Sample reads the raster at texture coordinates (u, v) in [0,1]² with
// bilinear filtering and clamp-to-edge addressing.
func (r *Raster) Sample(u, v float64) Color {
	fx := u*float64(r.Width) - 0.5
	fy := v*float64(r.Height) - 0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := float32(fx-float64(x0)), float32(fy-float64(y0))

	c00 := r.clampedAt(x0, y0)
	c10 := r.clampedAt(x0+1, y0)
	c01 := r.clampedAt(x0, y0+1)
	c11 := r.clampedAt(x0+1, y0+1)
	return c00.Mix(c10, tx).Mix(c01.Mix(c11, tx), ty)
}

func (r *Raster) clampedAt(x, y int) Color {
	x = min(max(x, 0), r.Width-1)
	y = min(max(y, 0), r.Height-1)
	return r.Pix[y*r.Width+x]
}

// Average is the mean color over [x0,x1)×[y0,y1) clamped to the raster. An
// empty region samples the nearest pixel instead.
func (r *Raster) Average(x0, y0, x1, y1 int) Color {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.Width), min(y1, r.Height)
	if x1 <= x0 || y1 <= y0 {
		return r.clampedAt(x0, y0)
	}
	var sum Color
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum = sum.Add(r.Pix[y*r.Width+x])
		}
	}
	return sum.Scale(1 / float32((x1-x0)*(y1-y0)))
}

// HalfCells splits the raster into a cols×rows grid and reports the mean
// color of the upper and lower half of each cell, row by row.
func (r *Raster) HalfCells(cols, rows int, fn func(col, row int, top, bottom Color)) {
	for row := range rows {
		y0 := row * r.Height / rows
		y1 := (row + 1) * r.Height / rows
		ym := (y0 + y1) / 2
		for col := range cols {
			x0 := col * r.Width / cols
			x1 := (col + 1) * r.Width / cols
			fn(col, row, r.Average(x0, y0, x1, ym), r.Average(x0, ym, x1, y1))
		}
	}
}

// Image converts the raster to an 8-bit RGBA image.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetRGBA(x, y, r.Pix[y*r.Width+x].RGBA())
		}
	}
	return img
}
