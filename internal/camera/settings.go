package camera

import "github.com/go-gl/mathgl/mgl64"

// HomeTarget names the fallback flight target.
const HomeTarget = "home"

// Settings configures a Rig. Vectors are written as [x, y, z] in config files.
type Settings struct {
	Home       mgl64.Vec3            `yaml:"home" toml:"home"`
	Targets    map[string]mgl64.Vec3 `yaml:"targets" toml:"targets"`
	FlightStep float64               `yaml:"flight_step" toml:"flight_step"`
	FOV        float64               `yaml:"fov" toml:"fov"`
	Near       float64               `yaml:"near" toml:"near"`
	Far        float64               `yaml:"far" toml:"far"`
	Drift      Drift                 `yaml:"drift" toml:"drift"`
	Orbit      OrbitSettings         `yaml:"orbit" toml:"orbit"`
}

// Drift is the idle sway: two independent low-frequency sinusoids of elapsed
// time added to x and y every idle frame.
type Drift struct {
	AmpX  float64 `yaml:"amp_x" toml:"amp_x"`
	FreqX float64 `yaml:"freq_x" toml:"freq_x"`
	AmpY  float64 `yaml:"amp_y" toml:"amp_y"`
	FreqY float64 `yaml:"freq_y" toml:"freq_y"`
}

// OrbitSettings tunes the damped drag controls.
type OrbitSettings struct {
	Damping     float64 `yaml:"damping" toml:"damping"`
	RotateSpeed float64 `yaml:"rotate_speed" toml:"rotate_speed"`
	MinDistance float64 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance" toml:"max_distance"`
}

const (
	DefaultFlightStep = 0.0075
	// ClassicFlightStep is the earlier, faster pacing (~34 frames).
	ClassicFlightStep = 0.03
)

func DefaultSettings() Settings {
	return Settings{
		Home: mgl64.Vec3{0, 0.25, 4},
		Targets: map[string]mgl64.Vec3{
			"about":    {1.5, 0.9, 3.2},
			"projects": {-1.8, 0.7, 3.2},
			"contact":  {1.8, 0.7, 3.2},
		},
		FlightStep: DefaultFlightStep,
		FOV:        55,
		Near:       0.1,
		Far:        500,
		Drift:      Drift{AmpX: 0.0005, FreqX: 0.1, AmpY: 0.0003, FreqY: 0.07},
		Orbit:      OrbitSettings{Damping: 0.05, RotateSpeed: 0.005, MinDistance: 2.5, MaxDistance: 6},
	}
}
