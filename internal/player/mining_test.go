package player

import (
	"testing"

	"voxelbox/internal/physics"
	"voxelbox/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitAt(p world.Pos, bt world.BlockType) physics.RaycastResult {
	return physics.RaycastResult{Hit: true, Position: p, Place: p.Add(world.Pos{Y: 1}), Block: bt}
}

func TestMiningCompletesAfterBreakTime(t *testing.T) {
	m := NewMiner(0, 8)
	hit := hitAt(world.Pos{X: 1, Y: 0, Z: 1}, world.BlockTypeStone)

	ticks := 0
	var done Break
	for ticks < 200 {
		ticks++
		var ok bool
		done, ok = m.Update(1.0/60, true, hit, 0)
		if ok {
			break
		}
	}
	assert.InDelta(t, 90, ticks, 1)
	assert.Equal(t, Break{Pos: hit.Position, Block: world.BlockTypeStone}, done)
	assert.False(t, m.Active())
	assert.Zero(t, m.Progress())
}

func TestMiningProgressMonotonic(t *testing.T) {
	m := NewMiner(0, 8)
	a := hitAt(world.Pos{X: 0, Y: 0, Z: 0}, world.BlockTypeWood)
	b := hitAt(world.Pos{X: 1, Y: 0, Z: 0}, world.BlockTypeWood)

	last := 0.0
	for range 60 {
		_, ok := m.Update(1.0/60, true, a, 0)
		require.False(t, ok)
		require.GreaterOrEqual(t, m.Progress(), last)
		last = m.Progress()
	}
	assert.InDelta(t, 0.5, last, 1e-9)

	m.Update(1.0/60, true, b, 0)
	assert.InDelta(t, (1.0/60)/2.0, m.Progress(), 1e-9, "timer restarts on the new target")
	target, active := m.Target()
	assert.True(t, active)
	assert.Equal(t, b.Position, target)
}

func TestMiningStopsOnRelease(t *testing.T) {
	m := NewMiner(0, 8)
	hit := hitAt(world.Pos{}, world.BlockTypeDirt)
	m.Update(0.3, true, hit, 0)
	require.True(t, m.Active())

	m.Update(0.1, false, hit, 0)
	assert.False(t, m.Active())
	assert.Zero(t, m.Progress())

	// A fresh press starts from zero.
	m.Update(0.1, true, hit, 0)
	assert.InDelta(t, 0.1/0.75, m.Progress(), 1e-9)
}

func TestMiningIgnoresMissesAndWater(t *testing.T) {
	m := NewMiner(0, 8)
	m.Update(1, true, physics.RaycastResult{}, 0)
	assert.False(t, m.Active())

	m.Update(1, true, hitAt(world.Pos{}, world.BlockTypeWater), 0)
	assert.False(t, m.Active())
}

func TestHoldDelayBeforeFirstTick(t *testing.T) {
	m := NewMiner(0.15, 8)
	hit := hitAt(world.Pos{}, world.BlockTypeLeaves)

	for range 8 { // 0.133s
		_, ok := m.Update(1.0/60, true, hit, 0)
		require.False(t, ok)
		require.Zero(t, m.Progress())
	}

	ticks := 8
	for ticks < 100 {
		ticks++
		if _, ok := m.Update(1.0/60, true, hit, 0); ok {
			break
		}
	}
	// 0.15s hold plus 0.35s break.
	assert.InDelta(t, 30, ticks, 1)
}

func TestDragBeforeFirstTickCancels(t *testing.T) {
	m := NewMiner(0.15, 8)
	hit := hitAt(world.Pos{}, world.BlockTypeLeaves)

	m.Update(1.0/60, true, hit, 5)
	m.Update(1.0/60, true, hit, 5)
	assert.False(t, m.Active())

	for range 120 {
		_, ok := m.Update(1.0/60, true, hit, 0)
		require.False(t, ok, "a drag never turns into mining")
	}

	m.Update(1.0/60, false, hit, 0)
	completed := false
	for range 40 {
		if _, ok := m.Update(1.0/60, true, hit, 0); ok {
			completed = true
		}
	}
	assert.True(t, completed, "a fresh press mines again")
}

func TestDragAfterFirstTickKeepsMining(t *testing.T) {
	m := NewMiner(0, 8)
	hit := hitAt(world.Pos{}, world.BlockTypeStone)

	m.Update(1.0/60, true, hit, 0)
	m.Update(1.0/60, true, hit, 50)
	assert.True(t, m.Active())
	assert.Greater(t, m.Progress(), 0.0)
}
