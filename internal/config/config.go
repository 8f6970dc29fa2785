package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/lens"
	"github.com/san-kum/horizon/internal/post"
	"github.com/san-kum/horizon/internal/scene"
	"github.com/san-kum/horizon/internal/shading"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCols = 100
	DefaultRows = 36
	DefaultFPS  = 60
)

type Config struct {
	Preset string `yaml:"preset,omitempty" toml:"preset,omitempty"`
	Cols   int    `yaml:"cols" toml:"cols"`
	Rows   int    `yaml:"rows" toml:"rows"`
	FPS    int    `yaml:"fps" toml:"fps"`

	Camera camera.Settings    `yaml:"camera" toml:"camera"`
	Disk   shading.DiskParams `yaml:"disk" toml:"disk"`
	Lens   lens.Params        `yaml:"lens" toml:"lens"`
	Glyph  glyph.Settings     `yaml:"glyph" toml:"glyph"`
	Scene  scene.Settings     `yaml:"scene" toml:"scene"`
	Bloom  post.Settings      `yaml:"bloom" toml:"bloom"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: "mono",
		Cols:   DefaultCols,
		Rows:   DefaultRows,
		FPS:    DefaultFPS,
		Camera: camera.DefaultSettings(),
		Disk:   shading.MonoDiskParams(),
		Lens:   lens.DefaultParams(),
		Glyph:  glyph.DefaultSettings(),
		Scene:  scene.DefaultSettings(),
		Bloom:  post.DefaultSettings(),
	}
}

// RasterSize is the pixel size of the frame raster: one glyph cell per
// terminal column/row.
func (c *Config) RasterSize() (w, h int) {
	return c.Cols * c.Glyph.CellWidth, c.Rows * c.Glyph.CellHeight
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return formatTOML
	}
	return formatYAML
}

func decode(f format, data []byte, v any) error {
	if f == formatTOML {
		return toml.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// Load reads a YAML or TOML (by extension) config. Fields absent from the
// file keep the values of the named preset, or of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, formatOf(path) == formatTOML)
}

// Parse decodes config bytes; isTOML selects the format.
func Parse(data []byte, isTOML bool) (*Config, error) {
	f := formatYAML
	if isTOML {
		f = formatTOML
	}
	var head struct {
		Preset string `yaml:"preset" toml:"preset"`
		Camera struct {
			Targets map[string]mgl64.Vec3 `yaml:"targets" toml:"targets"`
		} `yaml:"camera" toml:"camera"`
	}
	if err := decode(f, data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		p := GetPreset(head.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalid, head.Preset)
		}
		cfg = p
	}
	if err := decode(f, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	// maps merge on decode; a target table in the file replaces the preset's
	if head.Camera.Targets != nil {
		cfg.Camera.Targets = head.Camera.Targets
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if formatOf(path) == formatTOML {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
