package physics

import (
	"voxelbox/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Motion is the outcome of one resolved tick.
type Motion struct {
	Position  mgl32.Vec3
	VelocityY float32
	OnGround  bool
}

// Resolve integrates gravity and moves the player body by (dx, velY*dt, dz),
// one axis at a time: Y first, then X at the new Y, then Z.
// A body that starts free of solid blocks never ends the tick overlapping one.
func Resolve(pos mgl32.Vec3, velY float32, onGround bool, dx, dz, dt float32, src BlockSource) Motion {
	defer profiling.Track("physics.Resolve")()

	jumping := velY > 0

	velY -= Gravity * dt
	if velY < TerminalVelocity {
		velY = TerminalVelocity
	}

	var m Motion
	if onGround && !jumping && Supported(pos, PlayerHalfWidth, PlayerHeight, src) {
		m = Motion{Position: pos, VelocityY: 0, OnGround: true}
	} else {
		m = resolveVertical(pos, velY, velY*dt, src)
	}

	if dx != 0 {
		next := m.Position.Add(mgl32.Vec3{dx, 0, 0})
		if !Collides(next, PlayerHalfWidth, PlayerHeight, src) {
			m.Position = next
		}
	}
	if dz != 0 {
		next := m.Position.Add(mgl32.Vec3{0, 0, dz})
		if !Collides(next, PlayerHalfWidth, PlayerHeight, src) {
			m.Position = next
		}
	}
	return m
}

func resolveVertical(pos mgl32.Vec3, velY, dy float32, src BlockSource) Motion {
	target := pos.Add(mgl32.Vec3{0, dy, 0})

	if !Collides(target, PlayerHalfWidth, PlayerHeight, src) {
		if dy < 0 {
			// Block tops crossed this tick, highest first.
			for b := ceil(pos.Y()) - 1; float32(b) >= target.Y(); b-- {
				if !solidBelow(pos, PlayerHalfWidth, b, src) {
					continue
				}
				landed := mgl32.Vec3{pos.X(), float32(b), pos.Z()}
				if !Collides(landed, PlayerHalfWidth, PlayerHeight, src) {
					return Motion{Position: landed, VelocityY: 0, OnGround: true}
				}
			}
		}
		return Motion{Position: target, VelocityY: velY, OnGround: false}
	}

	// Binary search for the largest free fraction of the step.
	lo, hi := float32(0), float32(1)
	for range searchSteps {
		mid := (lo + hi) / 2
		if Collides(pos.Add(mgl32.Vec3{0, dy * mid, 0}), PlayerHalfWidth, PlayerHeight, src) {
			hi = mid
		} else {
			lo = mid
		}
	}
	free := pos.Add(mgl32.Vec3{0, dy * lo, 0})
	blockedY := pos.Y() + dy*hi

	if dy < 0 {
		snap := mgl32.Vec3{pos.X(), float32(floor(blockedY) + 1), pos.Z()}
		if snap.Y() <= pos.Y() && !Collides(snap, PlayerHalfWidth, PlayerHeight, src) {
			free = snap
		}
		return Motion{Position: free, VelocityY: 0, OnGround: true}
	}

	// Hit a ceiling: put the head flush under it when that spot is free.
	snap := mgl32.Vec3{pos.X(), float32(floor(blockedY+PlayerHeight)) - PlayerHeight, pos.Z()}
	if snap.Y() >= pos.Y() && snap.Y() > free.Y() && !Collides(snap, PlayerHalfWidth, PlayerHeight, src) {
		free = snap
	}
	return Motion{Position: free, VelocityY: 0, OnGround: false}
}
