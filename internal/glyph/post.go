// Package glyph turns a rendered raster into a monospace glyph grid. Each
// fixed-size cell contributes its mean luminance, mapped onto a density ramp
// or onto Braille dots. Scene hues are discarded.
package glyph

import (
	"strings"

	"github.com/san-kum/horizon/internal/render"
)

type Mode string

const (
	ModeRamp    Mode = "ramp"
	ModeBraille Mode = "braille"
)

type Settings struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	Mode       Mode    `yaml:"mode" toml:"mode"`
	Ramp       string  `yaml:"ramp" toml:"ramp"`
	Invert     bool    `yaml:"invert" toml:"invert"`
	CellWidth  int     `yaml:"cell_width" toml:"cell_width"`
	CellHeight int     `yaml:"cell_height" toml:"cell_height"`
	Threshold  float32 `yaml:"threshold" toml:"threshold"`
	Theme      string  `yaml:"theme" toml:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		Enabled:    true,
		Mode:       ModeRamp,
		Ramp:       DefaultRamp,
		CellWidth:  2,
		CellHeight: 4,
		Threshold:  0.35,
		Theme:      ThemeMono.Name,
	}
}

// PostProcess holds presentation state only. Toggling it never reaches the
// camera or the scene.
type PostProcess struct {
	settings Settings
	ramp     Ramp
	theme    Theme
}

func New(s Settings) *PostProcess {
	if s.CellWidth < 1 {
		s.CellWidth = 1
	}
	if s.CellHeight < 1 {
		s.CellHeight = 1
	}
	if s.Mode == "" {
		s.Mode = ModeRamp
	}
	return &PostProcess{settings: s, ramp: NewRamp(s.Ramp), theme: GetTheme(s.Theme)}
}

func (p *PostProcess) Settings() Settings { return p.settings }
func (p *PostProcess) Enabled() bool      { return p.settings.Enabled }
func (p *PostProcess) SetEnabled(on bool) { p.settings.Enabled = on }
func (p *PostProcess) Toggle()            { p.settings.Enabled = !p.settings.Enabled }
func (p *PostProcess) Theme() Theme       { return p.theme }

func (p *PostProcess) SetTheme(t Theme) {
	p.theme = t
	p.settings.Theme = t.Name
}

// CellSize is the raster pixel footprint of one glyph.
func (p *PostProcess) CellSize() (w, h int) {
	return p.settings.CellWidth, p.settings.CellHeight
}

// Process converts r into a grid. Trailing pixels that do not fill a whole
// cell are ignored.
func (p *PostProcess) Process(r *render.Raster) Grid {
	cw, ch := p.CellSize()
	g := Grid{Cols: r.Width / cw, Rows: r.Height / ch, Theme: p.theme}
	g.Cells = make([]rune, g.Cols*g.Rows)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x0, y0 := col*cw, row*ch
			var glyph rune
			if p.settings.Mode == ModeBraille {
				glyph = p.brailleAt(r, x0, y0, cw, ch)
			} else {
				glyph = p.ramp.Glyph(p.level(meanLuminance(r, x0, y0, x0+cw, y0+ch)))
			}
			g.Cells[row*g.Cols+col] = glyph
		}
	}
	return g
}

func (p *PostProcess) level(l float32) float32 {
	l = clamp01(l)
	if p.settings.Invert {
		return 1 - l
	}
	return l
}

func (p *PostProcess) brailleAt(r *render.Raster, x0, y0, cw, ch int) rune {
	var levels [4][2]float32
	for sy := range 4 {
		ya, yb := y0+sy*ch/4, y0+(sy+1)*ch/4
		if yb == ya {
			yb = ya + 1
		}
		for sx := range 2 {
			xa, xb := x0+sx*cw/2, x0+(sx+1)*cw/2
			if xb == xa {
				xb = xa + 1
			}
			levels[sy][sx] = p.level(meanLuminance(r, xa, ya, xb, yb))
		}
	}
	return brailleCell(&levels, p.settings.Threshold)
}

// meanLuminance averages Rec.709 luminance over [x0,x1)×[y0,y1).
func meanLuminance(r *render.Raster, x0, y0, x1, y1 int) float32 {
	var sum float32
	n := 0
	for y := y0; y < y1 && y < r.Height; y++ {
		for x := x0; x < x1 && x < r.Width; x++ {
			sum += clamp01(r.Luminance(x, y))
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

// Help describes the ramp, for HUDs.
func (p *PostProcess) Help() string {
	var b strings.Builder
	b.WriteString(string(p.settings.Mode))
	if p.settings.Invert {
		b.WriteString(" inverted")
	}
	b.WriteString(" [")
	b.WriteString(string(p.ramp))
	b.WriteString("]")
	return b.String()
}
