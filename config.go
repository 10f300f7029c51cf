package pxhost

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/pxhost/rigid"
)

const (
	DefaultFrequencyHz    = 360
	MaxFrequencyHz        = 1_000_000
	DefaultSleepThreshold = 0.05
	DefaultSleepTime      = 1.0
	DefaultCellSize       = 2.0
)

// StandardGravity is used when gravity is enabled without an explicit
// vector.
var StandardGravity = mgl32.Vec3{0, -9.81, 0}

type Config struct {
	FrequencyHz uint32 `yaml:"frequency_hz"`
	// Gravity is applied only when GravityEnabled is set; otherwise the
	// scene starts weightless.
	Gravity        []float32                     `yaml:"gravity"`
	GravityEnabled bool                          `yaml:"gravity_enabled"`
	Materials      map[string]MaterialProperties `yaml:"materials,omitempty"`
	Cooking        CookingConfig                 `yaml:"cooking"`
	Sleep          SleepConfig                   `yaml:"sleep"`
	CellSize       float32                       `yaml:"cell_size"`
	Debug          bool                          `yaml:"debug"`
}

type CookingConfig struct {
	VertexLimit int `yaml:"vertex_limit"`
}

type SleepConfig struct {
	Threshold float32 `yaml:"threshold"`
	// Time is how long a body must stay below Threshold before it sleeps.
	// Zero disables sleeping.
	Time float32 `yaml:"time"`
}

func DefaultConfig() Config {
	return Config{
		FrequencyHz: DefaultFrequencyHz,
		Gravity:     []float32{StandardGravity[0], StandardGravity[1], StandardGravity[2]},
		Cooking:     CookingConfig{VertexLimit: rigid.DefaultVertexLimit},
		Sleep: SleepConfig{
			Threshold: DefaultSleepThreshold,
			Time:      DefaultSleepTime,
		},
		CellSize: DefaultCellSize,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c Config) Validate() error {
	if !validFrequency(c.FrequencyHz) {
		return fmt.Errorf("%w: frequency_hz %d outside 1..%d", ErrInvalidConfig, c.FrequencyHz, MaxFrequencyHz)
	}
	if len(c.Gravity) != 3 {
		return fmt.Errorf("%w: gravity needs 3 components, got %d", ErrInvalidConfig, len(c.Gravity))
	}
	for _, g := range c.Gravity {
		if math.IsNaN(float64(g)) || math.IsInf(float64(g), 0) {
			return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
		}
	}
	if c.Cooking.VertexLimit < 4 {
		return fmt.Errorf("%w: cooking.vertex_limit %d", ErrInvalidConfig, c.Cooking.VertexLimit)
	}
	if c.Sleep.Threshold < 0 || c.Sleep.Time < 0 {
		return fmt.Errorf("%w: sleep settings must not be negative", ErrInvalidConfig)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %g", ErrInvalidConfig, c.CellSize)
	}
	for name := range c.Materials {
		if _, err := ParseMaterialID(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// GravityVec returns the gravity the scene starts with: the configured
// vector when enabled, zero otherwise.
func (c Config) GravityVec() mgl32.Vec3 {
	if !c.GravityEnabled || len(c.Gravity) != 3 {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{c.Gravity[0], c.Gravity[1], c.Gravity[2]}
}
