package physics

import (
	"fmt"
	"math"

	"voxelbox/internal/profiling"
	"voxelbox/internal/registry"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// RayStep is the march increment. Targets thinner than this at grazing
	// angles can be skipped, and the placement cell may touch the hit cell
	// only along an edge when the ray crosses a corner.
	RayStep          = 0.05
	MaxReachDistance = 5.0
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	Hit      bool
	Position world.Pos       // the targeted block
	Place    world.Pos       // last cell visited before Position
	Block    world.BlockType // type of the targeted block
	Distance float32
}

// Raycast marches from origin along dir in RayStep increments and returns
// the first cell that is neither air nor water.
func Raycast(origin, dir mgl32.Vec3, maxDist float32, src BlockSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	if dir.Len() == 0 {
		return RaycastResult{}
	}
	dir = dir.Normalize()

	steps := int(maxDist / RayStep)
	last := cellAt(origin)

	for i := 0; i <= steps; i++ {
		dist := float32(i) * RayStep
		cell := cellAt(origin.Add(dir.Mul(dist)))

		bt := src.Get(cell.X, cell.Y, cell.Z)
		if registry.IsTargetable(bt) {
			return RaycastResult{
				Hit:      true,
				Position: cell,
				Place:    last,
				Block:    bt,
				Distance: dist,
			}
		}
		last = cell
	}
	return RaycastResult{}
}

func cellAt(p mgl32.Vec3) world.Pos {
	return world.Pos{X: floor(p.X()), Y: floor(p.Y()), Z: floor(p.Z())}
}

// LookDirection converts yaw and pitch in degrees to a unit vector.
// Yaw 0 looks down +X, yaw 90 down +Z.
func LookDirection(yaw, pitch float64) mgl32.Vec3 {
	y := mgl32.DegToRad(float32(yaw))
	p := mgl32.DegToRad(float32(pitch))
	return mgl32.Vec3{
		float32(math.Cos(float64(y)) * math.Cos(float64(p))),
		float32(math.Sin(float64(p))),
		float32(math.Sin(float64(y)) * math.Cos(float64(p))),
	}.Normalize()
}

// ScreenRay unprojects a window coordinate (origin top-left) through the
// camera and returns the ray origin on the near plane and its direction.
func ScreenRay(sx, sy float32, width, height int, view, proj mgl32.Mat4) (mgl32.Vec3, mgl32.Vec3, error) {
	if width <= 0 || height <= 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	winY := float32(height) - sy
	near, err := mgl32.UnProject(mgl32.Vec3{sx, winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("unproject near: %w", err)
	}
	far, err := mgl32.UnProject(mgl32.Vec3{sx, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("unproject far: %w", err)
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("degenerate camera ray")
	}
	return near, dir.Normalize(), nil
}

// CanPlace reports whether a block may be put at target without replacing
// another block or trapping the player whose feet are at feet.
func CanPlace(target world.Pos, feet mgl32.Vec3, src BlockSource) bool {
	if src.Get(target.X, target.Y, target.Z) != world.BlockTypeAir {
		return false
	}
	return !IntersectsBlock(feet, PlayerHalfWidth, PlayerHeight, target.X, target.Y, target.Z)
}
