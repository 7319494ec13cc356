package meshing

import (
	"voxelbox/internal/profiling"
	"voxelbox/internal/registry"
	"voxelbox/internal/world"
)

// Source is the read-only view the builder walks. *world.Snapshot satisfies it.
type Source interface {
	Get(x, y, z int) world.BlockType
	ForEach(fn func(p world.Pos, bt world.BlockType))
	Version() uint64
}

// Geometry is the renderable output of one build.
// Each visible face is a quad of 4 vertices and 6 indices.
type Geometry struct {
	Version   uint64
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	UVs       []float32 // uv per vertex
	Shades    []float32 // one scalar per vertex
	Indices   []uint32
}

// FaceCount returns the number of quads in g.
func (g *Geometry) FaceCount() int {
	return len(g.Indices) / 6
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

type corner struct {
	x, y, z float32
	s, t    float32 // position inside the atlas tile
}

type faceSpec struct {
	normal  [3]float32
	shade   float32
	corners [4]corner
}

// Corners are counter-clockwise seen from outside so the winding matches the normal.
var faceSpecs = [6]faceSpec{
	world.FaceNorth: {
		normal: [3]float32{0, 0, 1}, shade: 0.8,
		corners: [4]corner{{1, 0, 1, 0, 1}, {1, 1, 1, 0, 0}, {0, 1, 1, 1, 0}, {0, 0, 1, 1, 1}},
	},
	world.FaceSouth: {
		normal: [3]float32{0, 0, -1}, shade: 0.8,
		corners: [4]corner{{0, 0, 0, 0, 1}, {0, 1, 0, 0, 0}, {1, 1, 0, 1, 0}, {1, 0, 0, 1, 1}},
	},
	world.FaceEast: {
		normal: [3]float32{1, 0, 0}, shade: 0.7,
		corners: [4]corner{{1, 0, 0, 0, 1}, {1, 1, 0, 0, 0}, {1, 1, 1, 1, 0}, {1, 0, 1, 1, 1}},
	},
	world.FaceWest: {
		normal: [3]float32{-1, 0, 0}, shade: 0.7,
		corners: [4]corner{{0, 0, 1, 0, 1}, {0, 1, 1, 0, 0}, {0, 1, 0, 1, 0}, {0, 0, 0, 1, 1}},
	},
	world.FaceTop: {
		normal: [3]float32{0, 1, 0}, shade: 1.0,
		corners: [4]corner{{0, 1, 1, 0, 1}, {1, 1, 1, 1, 1}, {1, 1, 0, 1, 0}, {0, 1, 0, 0, 0}},
	},
	world.FaceBottom: {
		normal: [3]float32{0, -1, 0}, shade: 0.5,
		corners: [4]corner{{0, 0, 0, 0, 0}, {1, 0, 0, 1, 0}, {1, 0, 1, 1, 1}, {0, 0, 1, 0, 1}},
	},
}

// Shade returns the fixed light multiplier applied to a face direction.
func Shade(f world.BlockFace) float32 {
	return faceSpecs[f].shade
}

// faceVisible decides whether the face of cur towards neighbor is drawn.
// Leaves show through to other blocks but hide faces between two leaf blocks.
func faceVisible(cur, neighbor world.BlockType) bool {
	if neighbor == world.BlockTypeAir {
		return true
	}
	return neighbor == world.BlockTypeLeaves && cur != world.BlockTypeLeaves
}

// Build converts every exposed block face of src into quads.
// It counts faces first so every buffer is allocated once at its final size.
func Build(src Source) *Geometry {
	defer profiling.Track("meshing.Build")()

	faces := 0
	src.ForEach(func(p world.Pos, bt world.BlockType) {
		for _, f := range world.Faces {
			n := p.Neighbor(f)
			if faceVisible(bt, src.Get(n.X, n.Y, n.Z)) {
				faces++
			}
		}
	})

	g := &Geometry{
		Version:   src.Version(),
		Positions: make([]float32, 0, faces*4*3),
		Normals:   make([]float32, 0, faces*4*3),
		UVs:       make([]float32, 0, faces*4*2),
		Shades:    make([]float32, 0, faces*4),
		Indices:   make([]uint32, 0, faces*6),
	}

	rows := float32(registry.AtlasRows())
	if rows == 0 {
		rows = 1
	}

	src.ForEach(func(p world.Pos, bt world.BlockType) {
		for _, f := range world.Faces {
			n := p.Neighbor(f)
			if !faceVisible(bt, src.Get(n.X, n.Y, n.Z)) {
				continue
			}
			row := float32(registry.GetTextureLayer(bt, f))
			g.emitQuad(p, &faceSpecs[f], row/rows, (row+1)/rows)
		}
	})

	return g
}

func (g *Geometry) emitQuad(p world.Pos, face *faceSpec, v0, v1 float32) {
	base := uint32(len(g.Positions) / 3)
	ox, oy, oz := float32(p.X), float32(p.Y), float32(p.Z)
	for _, c := range face.corners {
		g.Positions = append(g.Positions, ox+c.x, oy+c.y, oz+c.z)
		g.Normals = append(g.Normals, face.normal[0], face.normal[1], face.normal[2])
		g.UVs = append(g.UVs, c.s, v0+c.t*(v1-v0))
		g.Shades = append(g.Shades, face.shade)
	}
	g.Indices = append(g.Indices, base, base+1, base+2, base+2, base+3, base)
}
