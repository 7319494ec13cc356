package entity

import (
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// BlockSource abstracts the World for entities
type BlockSource interface {
	Get(x, y, z int) world.BlockType
}

// Entity is anything the Manager ticks.
type Entity interface {
	GetID() uuid.UUID
	Update(dt float64, src BlockSource)
	Position() mgl32.Vec3
	IsDead() bool
	SetDead()
}
