package player

import (
	"math"

	"voxelbox/internal/input"
	"voxelbox/internal/physics"
	"voxelbox/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// UpdatePosition walks, jumps and falls for one tick.
func (p *Player) UpdatePosition(dt float64, in input.Intent) {
	defer profiling.Track("player.Update.Position")()

	var dx, dz float32
	if in.Moving() {
		dx, dz = p.walkStep(dt, in.Forward, in.Strafe)
	}

	if in.Jump && p.OnGround && p.VelY <= 0 {
		p.VelY = JumpVelocity
	}

	m := physics.Resolve(p.Position, p.VelY, p.OnGround, dx, dz, float32(dt), p.World)
	p.Position = m.Position
	p.VelY = m.VelocityY
	p.OnGround = m.OnGround
}

// walkStep turns the move vector into a horizontal displacement along the
// camera yaw. Diagonals are normalized.
func (p *Player) walkStep(dt float64, forward, strafe float32) (dx, dz float32) {
	if l := float32(math.Hypot(float64(forward), float64(strafe))); l > 1 {
		forward /= l
		strafe /= l
	}

	yawRad := float64(mgl32.DegToRad(float32(p.CamYaw)))
	frontX := float32(math.Cos(yawRad))
	frontZ := float32(math.Sin(yawRad))
	// Right vector
	strafeX := float32(math.Cos(yawRad + math.Pi/2))
	strafeZ := float32(math.Sin(yawRad + math.Pi/2))

	step := float32(WalkSpeed * dt)
	dx = (forward*frontX + strafe*strafeX) * step
	dz = (forward*frontZ + strafe*strafeZ) * step
	return dx, dz
}
