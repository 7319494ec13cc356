package player

import (
	"math"
	"testing"

	"voxelbox/internal/entity"
	"voxelbox/internal/input"
	"voxelbox/internal/item"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStanding returns a survival player standing on a flat stone floor,
// looking straight down.
func newStanding(t *testing.T) *Player {
	t.Helper()
	w := world.NewFlat(8, 0, world.BlockTypeStone)
	p := New(w, entity.NewManager(), GameModeSurvival, nil)
	p.Position = mgl32.Vec3{2.5, 1, 2.5}
	p.OnGround = true
	p.CamPitch = -89
	return p
}

func TestApplyLookClampsPitch(t *testing.T) {
	p := newStanding(t)
	p.ApplyLook(0, 100000)
	assert.Equal(t, -89.0, p.CamPitch)
	p.ApplyLook(0, -100000)
	assert.Equal(t, 89.0, p.CamPitch)

	p.CamYaw = 350
	p.ApplyLook(200, 0)
	assert.GreaterOrEqual(t, p.CamYaw, 0.0)
	assert.Less(t, p.CamYaw, 360.0)
}

func TestHoverLooksDown(t *testing.T) {
	p := newStanding(t)
	p.UpdateHover(input.Intent{})
	require.True(t, p.HasHoveredBlock())
	assert.Equal(t, world.Pos{X: 2, Y: 0, Z: 2}, p.Hover.Position)
	assert.Equal(t, world.Pos{X: 2, Y: 1, Z: 2}, p.Hover.Place)
}

func TestHoldToMineDropsItem(t *testing.T) {
	p := newStanding(t)
	version := p.World.Version()

	for range 90 {
		p.Update(1.0/60, input.Intent{Primary: true})
	}

	assert.Equal(t, world.BlockTypeAir, p.World.Get(2, 0, 2))
	assert.Greater(t, p.World.Version(), version)
	items := p.Entities.Items()
	require.Len(t, items, 1)
	assert.Equal(t, world.Pos{X: 2, Y: 0, Z: 2}, items[0].Cell())
	assert.Equal(t, item.OfBlock(world.BlockTypeStone, 1), items[0].Stack)
}

func TestPlaceAgainstHoveredFace(t *testing.T) {
	p := newStanding(t)
	p.CamPitch = -45
	p.CamYaw = 0
	p.UpdateHover(input.Intent{})
	require.True(t, p.HasHoveredBlock())

	assert.False(t, p.PlaceBlock(), "empty hotbar")

	p.Inventory.Add(item.OfBlock(world.BlockTypeDirt, 2))
	target := p.Hover.Place
	require.True(t, p.PlaceBlock())
	assert.Equal(t, world.BlockTypeDirt, p.World.Get(target.X, target.Y, target.Z))
	assert.Equal(t, 1, p.Inventory.Selected().Count)
}

func TestPlaceIntoOwnBodyRejected(t *testing.T) {
	p := newStanding(t)
	p.Inventory.Add(item.OfBlock(world.BlockTypeDirt, 1))
	p.UpdateHover(input.Intent{})
	version := p.World.Version()

	assert.False(t, p.PlaceBlock())
	assert.Equal(t, version, p.World.Version())
	assert.Equal(t, 1, p.Inventory.Selected().Count)
}

func TestItemsAreNotPlaceable(t *testing.T) {
	p := newStanding(t)
	p.CamPitch = -45
	p.Inventory.Add(item.OfItem(item.KindStick, 1))
	p.UpdateHover(input.Intent{})
	assert.False(t, p.PlaceBlock())
}

func TestCreativeKeepsStackAndDropsNothing(t *testing.T) {
	p := newStanding(t)
	p.GameMode = GameModeCreative
	p.CamPitch = -45
	p.Inventory.Add(item.OfBlock(world.BlockTypePlanks, 1))
	p.UpdateHover(input.Intent{})
	require.True(t, p.PlaceBlock())
	assert.Equal(t, 1, p.Inventory.Selected().Count)

	p.BreakBlock(Break{Pos: world.Pos{X: 0, Y: 0, Z: 0}, Block: world.BlockTypeStone})
	assert.Equal(t, world.BlockTypeAir, p.World.Get(0, 0, 0))
	assert.Zero(t, p.Entities.Len())
}

func TestCollectItems(t *testing.T) {
	p := newStanding(t)
	near := entity.NewItemEntity(mgl32.Vec3{3, 1, 2.5}, item.OfBlock(world.BlockTypeSand, 3))
	far := entity.NewItemEntity(mgl32.Vec3{6, 1, 6}, item.OfBlock(world.BlockTypeSand, 1))
	p.Entities.Add(near)
	p.Entities.Add(far)

	p.CollectItems()
	assert.Zero(t, p.Inventory.Count(item.OfBlock(world.BlockTypeSand, 1)), "pickup delay not over")

	near.PickupDelay = 0
	far.PickupDelay = 0
	p.CollectItems()
	assert.Equal(t, 3, p.Inventory.Count(item.OfBlock(world.BlockTypeSand, 1)))
	assert.True(t, near.IsDead())
	assert.False(t, far.IsDead())

	// Collected items leave the manager before the next entity tick.
	assert.Equal(t, 1, p.Entities.Len())
	_, ok := p.Entities.Get(near.ID)
	assert.False(t, ok)
	got, ok := p.Entities.Get(far.ID)
	require.True(t, ok)
	assert.Same(t, far, got)
}

func TestWalkForward(t *testing.T) {
	p := newStanding(t)
	p.CamPitch = 0
	p.CamYaw = 90 // +Z
	for range 60 {
		p.UpdatePosition(1.0/60, input.Intent{Forward: 1})
	}
	assert.InDelta(t, 2.5, p.Position.X(), 1e-4)
	assert.InDelta(t, 2.5+WalkSpeed, p.Position.Z(), 1e-3)
	assert.Equal(t, float32(1), p.Position.Y())
}

func TestIdleKeepsColumn(t *testing.T) {
	p := newStanding(t)
	p.CamYaw = 37
	for range 30 {
		p.UpdatePosition(1.0/60, input.Intent{})
	}
	assert.Equal(t, mgl32.Vec3{2.5, 1, 2.5}, p.Position)
}

func TestDiagonalWalkIsNormalized(t *testing.T) {
	p := newStanding(t)
	dx, dz := p.walkStep(1, 1, 1)
	assert.InDelta(t, WalkSpeed, math.Hypot(float64(dx), float64(dz)), 1e-4)
}

func TestJump(t *testing.T) {
	p := newStanding(t)
	p.UpdatePosition(1.0/60, input.Intent{Jump: true})
	assert.Greater(t, p.Position.Y(), float32(1))
	assert.False(t, p.OnGround)

	for range 120 {
		p.UpdatePosition(1.0/60, input.Intent{})
	}
	assert.Equal(t, float32(1), p.Position.Y())
	assert.True(t, p.OnGround)
}

func TestHotbarSelection(t *testing.T) {
	p := newStanding(t)
	p.Update(1.0/60, input.Intent{Hotbar: 4})
	assert.Equal(t, 3, p.Inventory.CurrentItem)
	p.Update(1.0/60, input.Intent{Scroll: -1})
	assert.Equal(t, 4, p.Inventory.CurrentItem)
}

func TestParseGameMode(t *testing.T) {
	assert.Equal(t, GameModeCreative, ParseGameMode("creative"))
	assert.Equal(t, GameModeSurvival, ParseGameMode("survival"))
	assert.Equal(t, GameModeSurvival, ParseGameMode(""))
	assert.Equal(t, "creative", GameModeCreative.String())
}
