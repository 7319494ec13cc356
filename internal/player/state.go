package player

import (
	"voxelbox/internal/entity"
	"voxelbox/internal/inventory"
	"voxelbox/internal/physics"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	WalkSpeed    = 4.3
	JumpVelocity = 9.4

	// PickupReach is the distance from the body center at which dropped
	// items are collected.
	PickupReach = 1.5
)

type GameMode int

const (
	GameModeSurvival GameMode = iota
	GameModeCreative
)

// ParseGameMode maps a config value to a GameMode, defaulting to survival.
func ParseGameMode(s string) GameMode {
	if s == "creative" {
		return GameModeCreative
	}
	return GameModeSurvival
}

func (m GameMode) String() string {
	if m == GameModeCreative {
		return "creative"
	}
	return "survival"
}

type Player struct {
	GameMode GameMode
	Position mgl32.Vec3 // feet, horizontally centered
	VelY     float32
	OnGround bool

	CamYaw   float64
	CamPitch float64
	FOV      float32

	// Window size used to aim pointer input.
	ViewportWidth, ViewportHeight int

	// Interaction
	Hover physics.RaycastResult
	Miner *Miner

	Inventory *inventory.Inventory

	World    *world.World
	Entities *entity.Manager
}

func New(w *world.World, entities *entity.Manager, mode GameMode, miner *Miner) *Player {
	if miner == nil {
		miner = NewMiner(0, 8)
	}
	return &Player{
		GameMode:       mode,
		FOV:            70,
		ViewportWidth:  1280,
		ViewportHeight: 720,
		Miner:          miner,
		Inventory:      inventory.New(),
		World:          w,
		Entities:       entities,
	}
}

// HasHoveredBlock reports whether the crosshair or pointer is on a block.
func (p *Player) HasHoveredBlock() bool {
	return p.Hover.Hit
}
