package pxhost

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint32(360), cfg.FrequencyHz)
	assert.Equal(t, 256, cfg.Cooking.VertexLimit)
	assert.False(t, cfg.GravityEnabled)
	assert.Equal(t, mgl32.Vec3{}, cfg.GravityVec())

	cfg.GravityEnabled = true
	assert.Equal(t, StandardGravity, cfg.GravityVec())
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero frequency":   func(c *Config) { c.FrequencyHz = 0 },
		"high frequency":   func(c *Config) { c.FrequencyHz = MaxFrequencyHz + 1 },
		"short gravity":    func(c *Config) { c.Gravity = []float32{0, -1} },
		"nan gravity":      func(c *Config) { c.Gravity = []float32{0, float32(math.NaN()), 0} },
		"low vertex limit": func(c *Config) { c.Cooking.VertexLimit = 3 },
		"negative sleep":   func(c *Config) { c.Sleep.Time = -1 },
		"zero cell size":   func(c *Config) { c.CellSize = 0 },
		"unknown material": func(c *Config) { c.Materials = map[string]MaterialProperties{"glass": {}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	data := `
frequency_hz: 120
gravity: [0, -1.5, 0]
gravity_enabled: true
materials:
  wood:
    static_friction: 0.5
    dynamic_friction: 0.4
    restitution: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(120), cfg.FrequencyHz)
	assert.Equal(t, mgl32.Vec3{0, -1.5, 0}, cfg.GravityVec())
	assert.Equal(t, float32(0.25), cfg.Materials["wood"].Restitution)
	// Unset keys keep their defaults.
	assert.Equal(t, 256, cfg.Cooking.VertexLimit)
	assert.Equal(t, float32(DefaultSleepTime), cfg.Sleep.Time)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("frequency_hz: [1, 2"), 0644))
	_, err = LoadConfig(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("frequency_hz: 0\n"), 0644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.FrequencyHz = 90
	cfg.Debug = true
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
