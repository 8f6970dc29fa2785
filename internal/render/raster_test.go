package render

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewRasterInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"too wide", MaxDimension + 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaster(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("expected ErrInvalidSize, got %v", err)
			}
		})
	}
}

func TestRasterClearResetsDepth(t *testing.T) {
	r, err := NewRaster(4, 3)
	if err != nil {
		t.Fatalf("alloc failed: %v", err)
	}
	r.DepthTest(1, 1, 2, true)
	r.Clear(White)
	if !math.IsInf(float64(r.Depth[r.Width+1]), 1) {
		t.Errorf("expected +Inf depth after clear, got %f", r.Depth[r.Width+1])
	}
	if r.At(3, 2) != White {
		t.Errorf("expected white, got %+v", r.At(3, 2))
	}
}

func TestRasterBlend(t *testing.T) {
	r, _ := NewRaster(1, 1)
	r.Blend(0, 0, White, 0.5)
	if got := r.At(0, 0).R; math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("expected 0.5, got %f", got)
	}
	r.Blend(5, 5, White, 1) // out of bounds is ignored
}

func TestRasterSampleClampsToEdge(t *testing.T) {
	r, _ := NewRaster(2, 1)
	r.Set(0, 0, Black)
	r.Set(1, 0, White)

	if c := r.Sample(-3, 0.5); c != Black {
		t.Errorf("expected left edge black, got %+v", c)
	}
	if c := r.Sample(4, 0.5); c != White {
		t.Errorf("expected right edge white, got %+v", c)
	}
	mid := r.Sample(0.5, 0.5).R
	if math.Abs(float64(mid)-0.5) > 1e-6 {
		t.Errorf("expected 0.5 in the middle, got %f", mid)
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c, err := ParseHex("#ff8c42")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c.Hex() != "#ff8c42" {
		t.Errorf("expected #ff8c42, got %s", c.Hex())
	}
	if _, err := ParseHex("nope"); err == nil {
		t.Error("expected error for bad hex")
	}
}

func TestViewProjectsOriginToCenter(t *testing.T) {
	v := NewView(mgl64.Vec3{0, 0, 4}, mgl64.Vec3{}, 55, 0.1, 500, 800, 600)
	x, y, depth, ok := v.Project(mgl64.Vec3{})
	if !ok {
		t.Fatal("expected origin to be visible")
	}
	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("expected (400,300), got (%f,%f)", x, y)
	}
	if math.Abs(depth-4) > 1e-9 {
		t.Errorf("expected depth 4, got %f", depth)
	}

	uv, ok := v.ProjectUV(mgl64.Vec3{})
	if !ok || math.Abs(uv.X()-0.5) > 1e-9 || math.Abs(uv.Y()-0.5) > 1e-9 {
		t.Errorf("expected uv (0.5,0.5), got %v", uv)
	}
}

func TestViewBehindCamera(t *testing.T) {
	v := NewView(mgl64.Vec3{0, 0, 4}, mgl64.Vec3{}, 55, 0.1, 500, 800, 600)
	if _, _, _, ok := v.Project(mgl64.Vec3{0, 0, 10}); ok {
		t.Error("expected point behind the eye to be rejected")
	}
}

func TestDrawSphereWritesDepth(t *testing.T) {
	r, _ := NewRaster(64, 64)
	v := NewView(mgl64.Vec3{0, 0, 4}, mgl64.Vec3{}, 55, 0.1, 500, 64, 64)
	DrawSphere(r, v, mgl64.Vec3{}, 0.78, func(mgl64.Vec3) Color { return White })

	if r.At(32, 32) != White {
		t.Errorf("expected sphere at center, got %+v", r.At(32, 32))
	}
	d := float64(r.Depth[32*64+32])
	if math.Abs(d-(4-0.78)) > 0.05 {
		t.Errorf("expected front depth ~3.22, got %f", d)
	}
	if r.At(0, 0) != Black {
		t.Error("expected corner untouched")
	}
}

func TestRasterHalfCells(t *testing.T) {
	r, _ := NewRaster(4, 4)
	for x := range 4 {
		r.Set(x, 0, White)
		r.Set(x, 1, White)
	}
	cells := 0
	r.HalfCells(2, 1, func(col, row int, top, bottom Color) {
		cells++
		if top != White || bottom != Black {
			t.Errorf("cell %d,%d: expected white over black, got %v %v", col, row, top, bottom)
		}
	})
	if cells != 2 {
		t.Errorf("expected 2 cells, got %d", cells)
	}
	if got := r.Average(0, 0, 4, 4); math.Abs(float64(got.R)-0.5) > 1e-6 {
		t.Errorf("expected mean 0.5, got %v", got)
	}
	if got := r.Average(2, 2, 2, 2); got != Black {
		t.Errorf("expected nearest pixel for empty region, got %v", got)
	}
}
