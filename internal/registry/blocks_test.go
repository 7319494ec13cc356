package registry

import (
	"testing"

	"voxelbox/internal/world"

	"github.com/stretchr/testify/assert"
)

func TestEveryBlockRegistered(t *testing.T) {
	for bt := world.BlockTypeAir; bt < world.BlockTypeCount; bt++ {
		def, ok := Blocks[bt]
		if assert.True(t, ok, "block %v not registered", bt) {
			assert.Equal(t, bt.String(), def.Name)
		}
	}
}

func TestSolidity(t *testing.T) {
	assert.False(t, IsSolid(world.BlockTypeAir))
	assert.False(t, IsSolid(world.BlockTypeWater))
	assert.True(t, IsSolid(world.BlockTypeLeaves))
	assert.True(t, IsSolid(world.BlockTypeStone))

	assert.False(t, IsTargetable(world.BlockTypeWater))
	assert.True(t, IsTargetable(world.BlockTypeLeaves))
}

func TestBreakTime(t *testing.T) {
	assert.Equal(t, 1.5, BreakTime(world.BlockTypeStone))
	assert.Zero(t, BreakTime(world.BlockTypeWater))
	assert.Zero(t, BreakTime(world.BlockTypeAir))
}

func TestTextureLayers(t *testing.T) {
	top := GetTextureLayer(world.BlockTypeGrass, world.FaceTop)
	side := GetTextureLayer(world.BlockTypeGrass, world.FaceEast)
	bottom := GetTextureLayer(world.BlockTypeGrass, world.FaceBottom)
	assert.NotEqual(t, top, side)
	assert.Equal(t, GetTextureLayer(world.BlockTypeDirt, world.FaceTop), bottom)

	for _, name := range TextureNames {
		_, ok := TextureColors[name]
		assert.True(t, ok, "texture %s has no color", name)
		assert.Less(t, TextureMap[name], AtlasRows())
	}
}
