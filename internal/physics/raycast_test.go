package physics_test

import (
	"testing"

	"voxelbox/internal/physics"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycast(t *testing.T) {
	w := world.NewEmpty()
	w.Set(5, 0, 0, world.BlockTypeStone)

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(start, dir, 10, w)
	require.True(t, result.Hit)
	assert.Equal(t, world.Pos{X: 5, Y: 0, Z: 0}, result.Position)
	assert.Equal(t, world.Pos{X: 4, Y: 0, Z: 0}, result.Place)
	assert.Equal(t, world.BlockTypeStone, result.Block)
	// The ray enters the block at x=5.0, 4.5 from the start.
	assert.InDelta(t, 4.5, result.Distance, 2*physics.RayStep)

	// Out of reach.
	assert.False(t, physics.Raycast(start, dir, 4, w).Hit)

	// Wrong direction.
	assert.False(t, physics.Raycast(start, mgl32.Vec3{0, 1, 0}, 10, w).Hit)

	// Degenerate direction.
	assert.False(t, physics.Raycast(start, mgl32.Vec3{}, 10, w).Hit)
}

func TestRaycastRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		dir   mgl32.Vec3
		block world.Pos
		place world.Pos
	}{
		{"down", mgl32.Vec3{0, -1, 0}, world.Pos{X: 0, Y: -2, Z: 0}, world.Pos{X: 0, Y: -1, Z: 0}},
		{"up", mgl32.Vec3{0, 1, 0}, world.Pos{X: 0, Y: 3, Z: 0}, world.Pos{X: 0, Y: 2, Z: 0}},
		{"north", mgl32.Vec3{0, 0, 1}, world.Pos{X: 0, Y: 0, Z: 4}, world.Pos{X: 0, Y: 0, Z: 3}},
		{"west", mgl32.Vec3{-1, 0, 0}, world.Pos{X: -3, Y: 0, Z: 0}, world.Pos{X: -2, Y: 0, Z: 0}},
	}
	origin := mgl32.Vec3{0.5, 0.5, 0.5}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.NewEmpty()
			w.Set(tt.block.X, tt.block.Y, tt.block.Z, world.BlockTypeDirt)

			r := physics.Raycast(origin, tt.dir, physics.MaxReachDistance, w)
			require.True(t, r.Hit)
			assert.Equal(t, tt.block, r.Position)
			assert.Equal(t, tt.place, r.Place)
			assert.Equal(t, tt.place, r.Position.Add(backStep(tt.dir)))
		})
	}
}

// backStep is the offset from a hit cell back toward the ray origin.
func backStep(dir mgl32.Vec3) world.Pos {
	return world.Pos{X: -int(dir.X()), Y: -int(dir.Y()), Z: -int(dir.Z())}
}

func TestRaycastSkipsWater(t *testing.T) {
	w := world.NewEmpty()
	w.Set(2, 0, 0, world.BlockTypeWater)
	w.Set(3, 0, 0, world.BlockTypeSand)

	r := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 5, w)
	require.True(t, r.Hit)
	assert.Equal(t, world.Pos{X: 3, Y: 0, Z: 0}, r.Position)
	assert.Equal(t, world.Pos{X: 2, Y: 0, Z: 0}, r.Place)
}

func TestLookDirection(t *testing.T) {
	d := physics.LookDirection(0, 0)
	assert.InDelta(t, 1, d.X(), 1e-6)
	assert.InDelta(t, 0, d.Z(), 1e-6)

	d = physics.LookDirection(90, 0)
	assert.InDelta(t, 1, d.Z(), 1e-6)

	d = physics.LookDirection(0, -89)
	assert.Less(t, d.Y(), float32(-0.99))
	assert.InDelta(t, 1, d.Len(), 1e-5)
}

func TestScreenRay(t *testing.T) {
	eye := mgl32.Vec3{0, 2, 0}
	view := mgl32.LookAtV(eye, eye.Add(mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(70), 800.0/600.0, 0.1, 100)

	origin, dir, err := physics.ScreenRay(400, 300, 800, 600, view, proj)
	require.NoError(t, err)
	assert.InDelta(t, 1, dir.X(), 1e-3)
	assert.InDelta(t, 0, dir.Y(), 1e-3)
	assert.InDelta(t, 0.1, origin.X(), 1e-3)

	// Upper half of the window looks up.
	_, dir, err = physics.ScreenRay(400, 100, 800, 600, view, proj)
	require.NoError(t, err)
	assert.Greater(t, dir.Y(), float32(0))

	_, _, err = physics.ScreenRay(0, 0, 0, 600, view, proj)
	assert.Error(t, err)
}

func TestCanPlace(t *testing.T) {
	w := world.NewFlat(4, 0, world.BlockTypeStone)
	feet := mgl32.Vec3{1.5, 1, 1.5}

	assert.False(t, physics.CanPlace(world.Pos{X: 2, Y: 0, Z: 2}, feet, w), "occupied")
	assert.False(t, physics.CanPlace(world.Pos{X: 1, Y: 1, Z: 1}, feet, w), "inside the player")
	assert.False(t, physics.CanPlace(world.Pos{X: 1, Y: 2, Z: 1}, feet, w), "at head height")
	assert.True(t, physics.CanPlace(world.Pos{X: 3, Y: 1, Z: 3}, feet, w))
	assert.True(t, physics.CanPlace(world.Pos{X: 1, Y: 3, Z: 1}, feet, w), "above the head")
}

func BenchmarkRaycast(b *testing.B) {
	w := world.NewEmpty()
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			w.Set(x, y, 5, world.BlockTypeGrass)
		}
	}
	start := mgl32.Vec3{0.5, 8.5, 0.5}
	dir := mgl32.Vec3{0, 0, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Raycast(start, dir, 10, w)
	}
}
