package scene

import "github.com/san-kum/horizon/internal/render"

// FixedStep is the kinematic time step applied once per frame, independent of
// the real frame time.
const FixedStep = 0.016

type StarSettings struct {
	Count  int          `yaml:"count" toml:"count"`
	Radius float64      `yaml:"radius" toml:"radius"`
	Spread [2]float64   `yaml:"spread" toml:"spread"`
	Size   float64      `yaml:"size" toml:"size"`
	Color  render.Color `yaml:"color" toml:"color"`
}

// MeshSettings sets the disk ring tessellation.
type MeshSettings struct {
	Segments int `yaml:"segments" toml:"segments"`
	Rings    int `yaml:"rings" toml:"rings"`
}

// BodySettings describes one orbiting body. A zero Color uses the scene's
// BodyColor.
type BodySettings struct {
	Radius   float64      `yaml:"radius" toml:"radius"`
	Distance float64      `yaml:"distance" toml:"distance"`
	Speed    float64      `yaml:"speed" toml:"speed"`
	Tilt     float64      `yaml:"tilt" toml:"tilt"`
	Ring     bool         `yaml:"ring,omitempty" toml:"ring"`
	Color    render.Color `yaml:"color,omitempty" toml:"color,omitempty"`
}

// Light is an ambient term plus one directional key light for the bodies.
// Ambient 1 and Key 0 gives flat unlit bodies.
type Light struct {
	Dir     [3]float64 `yaml:"dir" toml:"dir"`
	Ambient float32    `yaml:"ambient" toml:"ambient"`
	Key     float32    `yaml:"key" toml:"key"`
}

type Settings struct {
	Seed        uint64         `yaml:"seed" toml:"seed"`
	Background  render.Color   `yaml:"background" toml:"background"`
	Stars       StarSettings   `yaml:"stars" toml:"stars"`
	CoreRadius  float64        `yaml:"core_radius" toml:"core_radius"`
	Disk        MeshSettings   `yaml:"disk" toml:"disk"`
	Bodies      []BodySettings `yaml:"bodies" toml:"bodies"`
	BodyColor   render.Color   `yaml:"body_color" toml:"body_color"`
	RingColor   render.Color   `yaml:"ring_color,omitempty" toml:"ring_color,omitempty"`
	RingOpacity float32        `yaml:"ring_opacity" toml:"ring_opacity"`
	SelfSpin    float64        `yaml:"self_spin" toml:"self_spin"`
	Light       Light          `yaml:"light" toml:"light"`
}

// bodyColor resolves the color of body i.
func (s Settings) bodyColor(i int) render.Color {
	if i < len(s.Bodies) && s.Bodies[i].Color != render.Black {
		return s.Bodies[i].Color
	}
	return s.BodyColor
}

// ringColor resolves the planetary ring color.
func (s Settings) ringColor() render.Color {
	if s.RingColor != render.Black {
		return s.RingColor
	}
	return s.BodyColor
}

func DefaultSettings() Settings {
	return Settings{
		Seed:       1,
		Background: render.Black,
		Stars: StarSettings{
			Count:  2000,
			Radius: 130,
			Spread: [2]float64{0.85, 1.10},
			Size:   0.55,
			Color:  render.White,
		},
		CoreRadius: 0.78,
		Disk:       MeshSettings{Segments: 192, Rings: 6},
		Bodies: []BodySettings{
			{Radius: 0.18, Distance: 8.5, Speed: 0.03, Tilt: 0.2},
			{Radius: 0.28, Distance: 11.5, Speed: 0.02, Tilt: -0.15, Ring: true},
			{Radius: 0.22, Distance: 14, Speed: 0.018, Tilt: 0.05},
		},
		BodyColor:   render.White,
		RingOpacity: 0.5,
		SelfSpin:    0.0015,
		Light:       Light{Dir: [3]float64{3, 2, 1}, Ambient: 1, Key: 0},
	}
}
