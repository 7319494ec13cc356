package physics

import (
	"math"

	"voxelbox/internal/registry"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockSource is what the resolver and raycaster need from the world.
type BlockSource interface {
	Get(x, y, z int) world.BlockType
}

const (
	PlayerHalfWidth     = 0.3
	PlayerEyeHeight     = 1.62
	PlayerHeadClearance = 0.18
	PlayerHeight        = PlayerEyeHeight + PlayerHeadClearance

	Gravity          = 32.0
	TerminalVelocity = -78.4

	// groundProbe is how far below the feet we look for support.
	groundProbe = 0.01
	// searchSteps bounds the binary search for the last free offset.
	searchSteps = 10
)

// Checks if a body with feet at pos collides with any solid block in the world.
// The body spans [x-hw, x+hw] x [y, y+height] x [z-hw, z+hw].
func Collides(pos mgl32.Vec3, halfWidth, height float32, src BlockSource) bool {
	minX, maxX := pos.X()-halfWidth, pos.X()+halfWidth
	minY, maxY := pos.Y(), pos.Y()+height
	minZ, maxZ := pos.Z()-halfWidth, pos.Z()+halfWidth

	for x := floor(minX); x <= floor(maxX); x++ {
		for y := floor(minY); y <= floor(maxY); y++ {
			for z := floor(minZ); z <= floor(maxZ); z++ {
				if !registry.IsSolid(src.Get(x, y, z)) {
					continue
				}
				if minX < float32(x+1) && maxX > float32(x) &&
					minY < float32(y+1) && maxY > float32(y) &&
					minZ < float32(z+1) && maxZ > float32(z) {
					return true
				}
			}
		}
	}
	return false
}

// IntersectsBlock reports whether the body overlaps the unit cell at (bx,by,bz).
func IntersectsBlock(pos mgl32.Vec3, halfWidth, height float32, bx, by, bz int) bool {
	return pos.X()-halfWidth < float32(bx+1) && pos.X()+halfWidth > float32(bx) &&
		pos.Y() < float32(by+1) && pos.Y()+height > float32(by) &&
		pos.Z()-halfWidth < float32(bz+1) && pos.Z()+halfWidth > float32(bz)
}

// Supported reports whether solid ground lies directly under the feet.
func Supported(pos mgl32.Vec3, halfWidth, height float32, src BlockSource) bool {
	return Collides(pos.Sub(mgl32.Vec3{0, groundProbe, 0}), halfWidth, height, src)
}

// solidBelow reports whether any cell in the footprint directly under boundary y is solid.
func solidBelow(pos mgl32.Vec3, halfWidth float32, y int, src BlockSource) bool {
	minX, maxX := pos.X()-halfWidth, pos.X()+halfWidth
	minZ, maxZ := pos.Z()-halfWidth, pos.Z()+halfWidth
	for x := floor(minX); x <= floor(maxX); x++ {
		if float32(x+1) <= minX || float32(x) >= maxX {
			continue
		}
		for z := floor(minZ); z <= floor(maxZ); z++ {
			if float32(z+1) <= minZ || float32(z) >= maxZ {
				continue
			}
			if registry.IsSolid(src.Get(x, y-1, z)) {
				return true
			}
		}
	}
	return false
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}

func ceil(v float32) int {
	return int(math.Ceil(float64(v)))
}
