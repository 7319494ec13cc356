package inventory

import (
	"testing"

	"voxelbox/internal/item"
	"voxelbox/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesThenFills(t *testing.T) {
	inv := New()
	dirt := item.OfBlock(world.BlockTypeDirt, 1)

	assert.Zero(t, inv.Add(item.OfBlock(world.BlockTypeDirt, 60)))
	assert.Zero(t, inv.Add(item.OfBlock(world.BlockTypeDirt, 10)))

	assert.Equal(t, 64, inv.Slots[0].Count)
	assert.Equal(t, 6, inv.Slots[1].Count)
	assert.Equal(t, 70, inv.Count(dirt))
}

func TestBlocksAndItemsDoNotMerge(t *testing.T) {
	inv := New()
	inv.Add(item.OfBlock(world.BlockTypeWood, 3))
	inv.Add(item.OfItem(item.KindStick, 2))

	assert.Equal(t, item.StackBlock, inv.Slots[0].Kind)
	assert.Equal(t, item.StackItem, inv.Slots[1].Kind)
	assert.Equal(t, 3, inv.Slots[0].Count)
}

func TestAddReturnsLeftoverWhenFull(t *testing.T) {
	inv := New()
	for i := range HotbarSize {
		inv.Slots[i] = item.OfBlock(world.BlockTypeStone, 64)
	}
	inv.Slots[4].Count = 60

	assert.Equal(t, 6, inv.Add(item.OfBlock(world.BlockTypeStone, 10)))
	assert.Equal(t, 5, inv.Add(item.OfBlock(world.BlockTypeSand, 5)))
	assert.Zero(t, inv.Add(item.Stack{}))
}

func TestUnstackableItems(t *testing.T) {
	inv := New()
	assert.Zero(t, inv.Add(item.OfItem(item.KindWoodenAxe, 2)))
	assert.Equal(t, 1, inv.Slots[0].Count)
	assert.Equal(t, 1, inv.Slots[1].Count)
}

func TestSelectAndScroll(t *testing.T) {
	inv := New()
	inv.Select(3)
	assert.Equal(t, 3, inv.CurrentItem)
	inv.Select(9)
	assert.Equal(t, 3, inv.CurrentItem, "out of range ignored")

	inv.Scroll(-2)
	assert.Equal(t, 4, inv.CurrentItem)
	inv.Select(0)
	inv.Scroll(1)
	assert.Equal(t, 8, inv.CurrentItem)
	inv.Scroll(-1)
	assert.Equal(t, 0, inv.CurrentItem)
}

func TestTakeSelected(t *testing.T) {
	inv := New()
	inv.Add(item.OfBlock(world.BlockTypePlanks, 2))

	one, ok := inv.TakeSelected()
	require.True(t, ok)
	assert.Equal(t, item.OfBlock(world.BlockTypePlanks, 1), one)
	_, ok = inv.TakeSelected()
	require.True(t, ok)
	assert.True(t, inv.Selected().IsEmpty())

	_, ok = inv.TakeSelected()
	assert.False(t, ok)
}
