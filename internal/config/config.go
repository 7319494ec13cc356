package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file when no path is given explicitly.
const EnvConfigPath = "VOXELBOX_CONFIG"

// MaxTerrainTop bounds sea_level + max_height, the highest generated surface.
const MaxTerrainTop = 240

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Window  WindowConfig  `yaml:"window"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type WorldConfig struct {
	Size       int     `yaml:"size"`
	Seed       int64   `yaml:"seed"`
	Noise      string  `yaml:"noise"` // "value" or "perlin"
	Octaves    int     `yaml:"octaves"`
	SeaLevel   int     `yaml:"sea_level"`
	MaxHeight  int     `yaml:"max_height"`
	TreeChance float64 `yaml:"tree_chance"`
}

type PlayerConfig struct {
	Mode             string  `yaml:"mode"` // "survival" or "creative"
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	FOV              float32 `yaml:"fov"`
	Touch            bool    `yaml:"touch"`
	// HoldDelay is how long a press must last before mining starts.
	HoldDelay      float64 `yaml:"hold_delay"`
	TouchHoldDelay float64 `yaml:"touch_hold_delay"`
	DragThreshold  float64 `yaml:"drag_threshold"`
}

type MeshConfig struct {
	Workers int `yaml:"workers"`
}

type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	FPSLimit int    `yaml:"fps_limit"` // 0 = unlimited
	VSync    bool   `yaml:"vsync"`
}

type MetricsConfig struct {
	// Addr serves /metrics when set, e.g. ":9100".
	Addr string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Size:       64,
			Seed:       1337,
			Noise:      "value",
			Octaves:    4,
			SeaLevel:   4,
			MaxHeight:  12,
			TreeChance: 0.02,
		},
		Player: PlayerConfig{
			Mode:             "survival",
			MouseSensitivity: 0.1,
			FOV:              70,
			HoldDelay:        0,
			TouchHoldDelay:   0.15,
			DragThreshold:    8,
		},
		Mesh: MeshConfig{
			Workers: 2,
		},
		Window: WindowConfig{
			Width:    1280,
			Height:   720,
			Title:    "voxelbox",
			FPSLimit: 120,
		},
	}
}

// Load reads a YAML file over Default. An empty path falls back to
// $VOXELBOX_CONFIG, and to the defaults alone when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	w := c.World
	if w.Size <= 0 || w.Size > 1024 {
		return fmt.Errorf("world.size must be in 1..1024, got %d", w.Size)
	}
	if w.Noise != "value" && w.Noise != "perlin" {
		return fmt.Errorf("world.noise must be value or perlin, got %q", w.Noise)
	}
	if w.Octaves < 1 || w.Octaves > 8 {
		return fmt.Errorf("world.octaves must be in 1..8, got %d", w.Octaves)
	}
	if w.MaxHeight <= 0 {
		return fmt.Errorf("world.max_height must be positive, got %d", w.MaxHeight)
	}
	if w.SeaLevel < 0 {
		return fmt.Errorf("world.sea_level must not be negative, got %d", w.SeaLevel)
	}
	if w.SeaLevel+w.MaxHeight > MaxTerrainTop {
		return fmt.Errorf("world.sea_level + world.max_height must be at most %d, got %d",
			MaxTerrainTop, w.SeaLevel+w.MaxHeight)
	}
	if w.TreeChance < 0 || w.TreeChance > 1 {
		return fmt.Errorf("world.tree_chance must be in [0,1], got %g", w.TreeChance)
	}

	p := c.Player
	if p.Mode != "survival" && p.Mode != "creative" {
		return fmt.Errorf("player.mode must be survival or creative, got %q", p.Mode)
	}
	if p.MouseSensitivity <= 0 {
		return fmt.Errorf("player.mouse_sensitivity must be positive, got %g", p.MouseSensitivity)
	}
	if p.FOV < 30 || p.FOV > 120 {
		return fmt.Errorf("player.fov must be in 30..120, got %g", p.FOV)
	}
	if p.HoldDelay < 0 || p.TouchHoldDelay < 0 || p.DragThreshold < 0 {
		return fmt.Errorf("player hold delays and drag threshold must not be negative")
	}

	if c.Mesh.Workers < 1 {
		return fmt.Errorf("mesh.workers must be at least 1, got %d", c.Mesh.Workers)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPSLimit < 0 {
		return fmt.Errorf("window.fps_limit must not be negative, got %d", c.Window.FPSLimit)
	}
	return nil
}

// EffectiveHoldDelay is the hold delay for the configured input device.
func (p PlayerConfig) EffectiveHoldDelay() float64 {
	if p.Touch {
		return p.TouchHoldDelay
	}
	return p.HoldDelay
}
