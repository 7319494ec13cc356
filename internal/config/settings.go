package config

import "sync"

// Settings holds values the user can change while the game runs.
type Settings struct {
	mu               sync.RWMutex
	fpsLimit         int
	mouseSensitivity float64
}

var globalSettings = &Settings{
	fpsLimit:         120,
	mouseSensitivity: 0.1,
}

// Apply copies the runtime-adjustable parts of c into the global settings.
func Apply(c *Config) {
	SetFPSLimit(c.Window.FPSLimit)
	SetMouseSensitivity(c.Player.MouseSensitivity)
}

// GetFPSLimit returns the frame cap; 0 means unlimited.
func GetFPSLimit() int {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.fpsLimit
}

func SetFPSLimit(limit int) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalSettings.fpsLimit = limit
}

// GetMouseSensitivity returns degrees of rotation per pixel of look input.
func GetMouseSensitivity() float64 {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.mouseSensitivity
}

func SetMouseSensitivity(s float64) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()

	// Clamp to reasonable values
	if s < 0.01 {
		s = 0.01
	}
	if s > 2 {
		s = 2
	}
	globalSettings.mouseSensitivity = s
}
