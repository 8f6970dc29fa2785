package config

import (
	"sort"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/shading"
)

// Presets are the named looks. GetPreset hands out deep copies, so callers
// may edit the result freely.
var Presets = map[string]*Config{
	"mono":    monoPreset(),
	"warm":    warmPreset(),
	"cyan":    cyanPreset(),
	"lensed":  lensedPreset(),
	"classic": classicPreset(),
}

var presetInfo = map[string]string{
	"mono":    "white ring, alpha-only texture, white glyphs",
	"warm":    "white-hot to orange disk with lens shimmer, tinted planets",
	"cyan":    "pastel disk, teal glyphs, quick flights",
	"lensed":  "warm disk with the screen-space lens pass",
	"classic": "warm disk with the earlier quick flight pacing",
}

func monoPreset() *Config {
	return DefaultConfig()
}

var warmBodyColors = []string{"#8aa4ff", "#c4a484", "#7ad3a1"}

func warmPreset() *Config {
	c := DefaultConfig()
	c.Preset = "warm"
	c.Disk = shading.DefaultDiskParams()
	c.Glyph.Theme = glyph.ThemeNeutral.Name
	c.Disk.Shimmer.Enabled = true
	c.Scene.BodyColor = render.MustHex("#d8d2c4")
	for i, hex := range warmBodyColors {
		if i < len(c.Scene.Bodies) {
			c.Scene.Bodies[i].Color = render.MustHex(hex)
		}
	}
	c.Scene.RingColor = render.MustHex("#b3a186")
	c.Scene.RingOpacity = 0.4
	c.Scene.Light.Ambient = 0.1
	c.Scene.Light.Key = 0.8
	c.Bloom.Enabled = true
	return c
}

func cyanPreset() *Config {
	c := DefaultConfig()
	c.Preset = "cyan"
	c.Disk = shading.DefaultDiskParams()
	c.Disk.Ramp = [3]render.Color{render.MustHex("#ffadad"), render.MustHex("#ffd6a5"), render.MustHex("#caffbf")}
	c.Disk.GlowGain = 1.4
	c.Disk.DopplerGain = 0.3
	c.Camera.FlightStep = camera.ClassicFlightStep
	c.Glyph.Theme = glyph.ThemeCyan.Name
	return c
}

func lensedPreset() *Config {
	c := warmPreset()
	c.Preset = "lensed"
	c.Lens.Enabled = true
	return c
}

func classicPreset() *Config {
	c := warmPreset()
	c.Preset = "classic"
	c.Camera.FlightStep = camera.ClassicFlightStep
	return c
}

// GetPreset returns a deep copy of the named preset, or nil.
func GetPreset(name string) *Config {
	src, ok := Presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return src.Clone()
}

// Clone returns a deep copy of c, target map included.
func (c *Config) Clone() *Config {
	dst := new(Config)
	if err := copier.CopyWithOption(dst, c, copier.Option{DeepCopy: true}); err != nil {
		return nil
	}
	return dst
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line summary of a preset.
func Describe(name string) string { return presetInfo[name] }
