package player

import (
	"log"
	"math"

	"voxelbox/internal/entity"
	"voxelbox/internal/input"
	"voxelbox/internal/item"
	"voxelbox/internal/physics"
	"voxelbox/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// UpdateHover raycasts from the eye along the view, or through the pointer
// for aimed input, and records the targeted block.
func (p *Player) UpdateHover(in input.Intent) {
	origin, dir := p.GetEyePosition(), p.GetFrontVector()
	if in.Aimed() {
		o, d, err := physics.ScreenRay(in.PointerX, in.PointerY, p.ViewportWidth, p.ViewportHeight, p.ViewMatrix(), p.ProjectionMatrix())
		if err != nil {
			log.Printf("pointer ray: %v", err)
		} else {
			origin, dir = o, d
		}
	}
	p.Hover = physics.Raycast(origin, dir, physics.MaxReachDistance, p.World)
}

// UpdateMining drives the Miner and removes the block when it completes.
// While the input stays held the target is refreshed at once so mining
// carries on into the next block.
func (p *Player) UpdateMining(dt float64, in input.Intent) {
	done, ok := p.Miner.Update(dt, in.Primary, p.Hover, math.Hypot(in.LookDX, in.LookDY))
	if !ok {
		return
	}
	p.BreakBlock(done)
	if in.Primary {
		p.UpdateHover(in)
	}
}

// BreakBlock removes the block and drops it as an item in survival.
func (p *Player) BreakBlock(b Break) {
	x, y, z := b.Pos.X, b.Pos.Y, b.Pos.Z
	if p.World.Get(x, y, z) != b.Block {
		return
	}
	p.World.Delete(x, y, z)
	profiling.BlockMined()

	if p.GameMode != GameModeCreative {
		p.Entities.Add(entity.DropAt(b.Pos, item.OfBlock(b.Block, 1)))
	}
}

// PlaceBlock puts the selected hotbar block against the hovered face.
// It reports whether the world changed.
func (p *Player) PlaceBlock() bool {
	if !p.Hover.Hit {
		return false
	}
	selected := p.Inventory.Selected()
	if selected.IsEmpty() || selected.Kind != item.StackBlock {
		return false
	}
	target := p.Hover.Place
	if !physics.CanPlace(target, p.Position, p.World) {
		return false
	}

	p.World.Set(target.X, target.Y, target.Z, selected.Block)
	profiling.BlockPlaced()
	if p.GameMode != GameModeCreative {
		p.Inventory.TakeSelected()
	}
	return true
}

// CollectItems picks up dropped items within reach once their delay ran out.
func (p *Player) CollectItems() {
	center := p.Position.Add(mgl32.Vec3{0, physics.PlayerHeight / 2, 0})
	for _, it := range p.Entities.Items() {
		if !it.CanPickup() || it.Pos.Sub(center).Len() > PickupReach {
			continue
		}
		left := p.Inventory.Add(it.Stack)
		if left == 0 {
			p.Entities.Remove(it.ID)
		} else {
			it.Stack.Count = left
		}
	}
}

func (p *Player) handleHotbar(in input.Intent) {
	if in.Hotbar > 0 {
		p.Inventory.Select(in.Hotbar - 1)
	}
	if in.Scroll != 0 {
		p.Inventory.Scroll(in.Scroll)
	}
}
