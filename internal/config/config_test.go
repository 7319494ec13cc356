package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxelbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  size: 32
  seed: 99
  noise: perlin
player:
  mode: creative
  touch: true
metrics:
  addr: ":9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.World.Size)
	assert.Equal(t, int64(99), cfg.World.Seed)
	assert.Equal(t, "perlin", cfg.World.Noise)
	assert.Equal(t, 4, cfg.World.Octaves, "unset keys keep defaults")
	assert.Equal(t, "creative", cfg.Player.Mode)
	assert.Equal(t, 0.15, cfg.Player.EffectiveHoldDelay())
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "world:\n  size: 16\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.World.Size)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Zero(t, cfg.Player.EffectiveHoldDelay())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "world: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world:\n  noise: simplex\n"))
	assert.ErrorContains(t, err, "world.noise")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"size", func(c *Config) { c.World.Size = 0 }, "world.size"},
		{"octaves", func(c *Config) { c.World.Octaves = 9 }, "world.octaves"},
		{"terrain top", func(c *Config) { c.World.SeaLevel, c.World.MaxHeight = 200, 41 }, "world.max_height"},
		{"tree chance", func(c *Config) { c.World.TreeChance = 2 }, "world.tree_chance"},
		{"mode", func(c *Config) { c.Player.Mode = "spectator" }, "player.mode"},
		{"fov", func(c *Config) { c.Player.FOV = 10 }, "player.fov"},
		{"workers", func(c *Config) { c.Mesh.Workers = 0 }, "mesh.workers"},
		{"window", func(c *Config) { c.Window.Height = -1 }, "window size"},
		{"fps", func(c *Config) { c.Window.FPSLimit = -5 }, "window.fps_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestRuntimeSettings(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())
	defer SetMouseSensitivity(GetMouseSensitivity())

	SetFPSLimit(-3)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, 1000, GetFPSLimit())

	SetMouseSensitivity(0)
	assert.Equal(t, 0.01, GetMouseSensitivity())

	c := Default()
	c.Window.FPSLimit = 60
	c.Player.MouseSensitivity = 0.25
	Apply(c)
	assert.Equal(t, 60, GetFPSLimit())
	assert.Equal(t, 0.25, GetMouseSensitivity())
}
