package player

import (
	"voxelbox/internal/input"
	"voxelbox/internal/profiling"
)

// Update runs one simulation tick: look, hotbar, movement, targeting,
// mining, placement and pickup, in that order.
func (p *Player) Update(dt float64, in input.Intent) {
	defer profiling.Track("player.Update")()

	p.ApplyLook(in.LookDX, in.LookDY)
	p.handleHotbar(in)
	p.UpdatePosition(dt, in)
	p.UpdateHover(in)
	p.UpdateMining(dt, in)
	if in.SecondaryPressed {
		p.PlaceBlock()
	}
	p.CollectItems()
}
