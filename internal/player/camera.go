package player

import (
	"voxelbox/internal/config"
	"voxelbox/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// ApplyLook turns the camera by a pointer delta in pixels. Screen y grows
// downwards, so moving up raises the pitch.
func (p *Player) ApplyLook(dx, dy float64) {
	sensitivity := config.GetMouseSensitivity()

	p.CamYaw += dx * sensitivity
	p.CamPitch -= dy * sensitivity

	// Constrain pitch
	if p.CamPitch > 89.0 {
		p.CamPitch = 89.0
	}
	if p.CamPitch < -89.0 {
		p.CamPitch = -89.0
	}
	for p.CamYaw >= 360 {
		p.CamYaw -= 360
	}
	for p.CamYaw < 0 {
		p.CamYaw += 360
	}
}

func (p *Player) GetFrontVector() mgl32.Vec3 {
	return physics.LookDirection(p.CamYaw, p.CamPitch)
}

func (p *Player) GetEyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, physics.PlayerEyeHeight, 0})
}

func (p *Player) ViewMatrix() mgl32.Mat4 {
	eye := p.GetEyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.GetFrontVector()), mgl32.Vec3{0, 1, 0})
}

func (p *Player) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(16.0 / 9.0)
	if p.ViewportWidth > 0 && p.ViewportHeight > 0 {
		aspect = float32(p.ViewportWidth) / float32(p.ViewportHeight)
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), aspect, 0.1, 500)
}
