package entity

import (
	"math"

	"voxelbox/internal/item"
	"voxelbox/internal/registry"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	ItemEntityHalfWidth = 0.125

	ItemGravity          = 18.0
	ItemTerminalVelocity = -40.0

	// DespawnAge is how long a dropped item lives, in seconds.
	DespawnAge = 300.0
	// DefaultPickupDelay keeps a freshly dropped item out of reach for a moment.
	DefaultPickupDelay = 0.5

	// MergeRange is the horizontal distance within which equal drops combine.
	MergeRange = 0.5
)

// ItemEntity is a dropped stack lying in the world.
type ItemEntity struct {
	ID          uuid.UUID
	Stack       item.Stack
	Pos         mgl32.Vec3 // bottom center
	VelY        float32
	Age         float64
	PickupDelay float64
	OnGround    bool
	Dead        bool
}

func NewItemEntity(pos mgl32.Vec3, stack item.Stack) *ItemEntity {
	return &ItemEntity{
		ID:          uuid.New(),
		Stack:       stack,
		Pos:         pos,
		PickupDelay: DefaultPickupDelay,
	}
}

// DropAt creates an item for a block removed at p, resting inside p's cell.
func DropAt(p world.Pos, stack item.Stack) *ItemEntity {
	return NewItemEntity(mgl32.Vec3{float32(p.X) + 0.5, float32(p.Y) + 0.25, float32(p.Z) + 0.5}, stack)
}

func (e *ItemEntity) Update(dt float64, src BlockSource) {
	if e.Dead {
		return
	}

	e.Age += dt
	if e.PickupDelay > 0 {
		e.PickupDelay -= dt
	}
	if e.Age >= DespawnAge {
		e.Dead = true
		return
	}

	if e.OnGround && e.solidAt(e.Pos.Y()-0.01, src) {
		return
	}
	e.OnGround = false

	e.VelY -= ItemGravity * float32(dt)
	if e.VelY < ItemTerminalVelocity {
		e.VelY = ItemTerminalVelocity
	}
	nextY := e.Pos.Y() + e.VelY*float32(dt)

	// Land on the first solid cell top crossed on the way down.
	for y := int(math.Floor(float64(e.Pos.Y()))); float32(y) >= nextY; y-- {
		if e.solidAt(float32(y)-0.5, src) {
			e.Pos = mgl32.Vec3{e.Pos.X(), float32(y), e.Pos.Z()}
			e.VelY = 0
			e.OnGround = true
			return
		}
	}
	e.Pos = mgl32.Vec3{e.Pos.X(), nextY, e.Pos.Z()}
}

// solidAt reports whether the cell at height y in the item's column is solid.
func (e *ItemEntity) solidAt(y float32, src BlockSource) bool {
	bx := int(math.Floor(float64(e.Pos.X())))
	by := int(math.Floor(float64(y)))
	bz := int(math.Floor(float64(e.Pos.Z())))
	return registry.IsSolid(src.Get(bx, by, bz))
}

// Cell returns the voxel the item currently occupies.
func (e *ItemEntity) Cell() world.Pos {
	return world.Pos{
		X: int(math.Floor(float64(e.Pos.X()))),
		Y: int(math.Floor(float64(e.Pos.Y()))),
		Z: int(math.Floor(float64(e.Pos.Z()))),
	}
}

// CanPickup reports whether the pickup delay has run out.
func (e *ItemEntity) CanPickup() bool {
	return !e.Dead && e.PickupDelay <= 0
}

// combineItems merges e into other when both hold equal stacks that fit
// together. The smaller stack always merges into the larger one.
// Returns true if e was consumed.
func (e *ItemEntity) combineItems(other *ItemEntity) bool {
	if other == e || other.Dead || e.Dead {
		return false
	}
	if !e.Stack.IsItemEqual(other.Stack) {
		return false
	}
	if other.Stack.Count < e.Stack.Count {
		return other.combineItems(e)
	}
	if other.Stack.Count+e.Stack.Count > e.Stack.GetMaxStackSize() {
		return false
	}

	other.Stack.Count += e.Stack.Count
	if e.PickupDelay > other.PickupDelay {
		other.PickupDelay = e.PickupDelay
	}
	// Younger age survives longer.
	if e.Age < other.Age {
		other.Age = e.Age
	}
	e.SetDead()
	return true
}

func (e *ItemEntity) GetID() uuid.UUID {
	return e.ID
}

func (e *ItemEntity) Position() mgl32.Vec3 {
	return e.Pos
}

func (e *ItemEntity) IsDead() bool {
	return e.Dead
}

func (e *ItemEntity) SetDead() {
	e.Dead = true
}
