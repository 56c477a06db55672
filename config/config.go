// Package config loads emitter settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/smasonuk/texemit"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the emitter settings.
type Config struct {
	Particle         string          `yaml:"particle"`
	CreateParticles  bool            `yaml:"create_particles"`
	Sample           int             `yaml:"sample"`            // pixel stride for mode "pixels"
	NormalsDirection int             `yaml:"normals_direction"` // 1 or -1
	UVPrecision      float64         `yaml:"uv_precision"`      // uv step for mode "uv"
	Mode             string          `yaml:"mode"`              // uv | pixels
	NormalLookup     string          `yaml:"normal_lookup"`     // dot | nearest
	KeepUnmapped     bool            `yaml:"keep_unmapped"`
	IndexCells       int             `yaml:"index_cells"` // 0 = linear triangle scan
	Workers          int             `yaml:"workers"`
	Transform        TransformConfig `yaml:"transform"`
	Preview          PreviewConfig   `yaml:"preview"`
}

// TransformConfig places the emitter. Rotation is in degrees.
type TransformConfig struct {
	Position [3]float64 `yaml:"position"`
	Rotation [3]float64 `yaml:"rotation"`
	Scale    [3]float64 `yaml:"scale"`
}

type PreviewConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Distance float64 `yaml:"distance"` // camera distance from the emitter
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load reads the defaults and overlays the file at path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.UVPrecision <= 0:
		return fmt.Errorf("%w: uv_precision must be positive, got %v", ErrInvalidConfig, c.UVPrecision)
	case c.Sample <= 0:
		return fmt.Errorf("%w: sample must be positive, got %d", ErrInvalidConfig, c.Sample)
	case c.NormalsDirection != 1 && c.NormalsDirection != -1:
		return fmt.Errorf("%w: normals_direction must be 1 or -1, got %d", ErrInvalidConfig, c.NormalsDirection)
	case c.IndexCells < 0:
		return fmt.Errorf("%w: index_cells must not be negative", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	switch texemit.ScanMode(c.Mode) {
	case texemit.ScanModeUV, texemit.ScanModePixels:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	switch texemit.NormalMode(c.NormalLookup) {
	case texemit.NormalModeDot, texemit.NormalModeNearest:
	default:
		return fmt.Errorf("%w: unknown normal_lookup %q", ErrInvalidConfig, c.NormalLookup)
	}
	return nil
}

// Options converts the config to emitter options.
func (c *Config) Options() texemit.Options {
	return texemit.Options{
		CreateParticles:  c.CreateParticles,
		Sample:           c.Sample,
		NormalsDirection: c.NormalsDirection,
		UVPrecision:      c.UVPrecision,
		Mode:             texemit.ScanMode(c.Mode),
		Normals:          texemit.NormalMode(c.NormalLookup),
		KeepUnmapped:     c.KeepUnmapped,
		IndexCells:       c.IndexCells,
		Workers:          c.Workers,
	}
}

func (c *Config) EmitterTransform() texemit.Transform {
	t := c.Transform
	return texemit.Transform{
		Position: mgl64.Vec3(t.Position),
		Rotation: texemit.EulerRotation(mgl64.Vec3(t.Rotation)),
		Scale:    mgl64.Vec3(t.Scale),
	}
}

// WriteYAML saves the config, for example next to exported points.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
