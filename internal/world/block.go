package world

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeWood
	BlockTypeSand
	BlockTypeWater
	BlockTypeLeaves
	BlockTypeSnow
	BlockTypePlanks
	BlockTypeCraftingTable

	// BlockTypeCount is a sentinel for array sizing
	BlockTypeCount
)

var blockNames = [BlockTypeCount]string{
	BlockTypeAir:           "air",
	BlockTypeGrass:         "grass",
	BlockTypeDirt:          "dirt",
	BlockTypeStone:         "stone",
	BlockTypeWood:          "wood",
	BlockTypeSand:          "sand",
	BlockTypeWater:         "water",
	BlockTypeLeaves:        "leaves",
	BlockTypeSnow:          "snow",
	BlockTypePlanks:        "planks",
	BlockTypeCraftingTable: "crafting_table",
}

func (b BlockType) String() string {
	if b < BlockTypeCount {
		return blockNames[b]
	}
	return "unknown"
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth  BlockFace = iota // +Z
	FaceSouth                   // -Z
	FaceEast                    // +X
	FaceWest                    // -X
	FaceTop                     // +Y
	FaceBottom                  // -Y
)

// Faces lists every face in mesh emission order.
var Faces = [6]BlockFace{FaceNorth, FaceSouth, FaceEast, FaceWest, FaceTop, FaceBottom}

var faceOffsets = [6]Pos{
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

// Offset returns the unit step towards the neighbor sharing this face.
func (f BlockFace) Offset() Pos {
	return faceOffsets[f]
}

// Pos is an integer voxel coordinate. The voxel covers [X,X+1)x[Y,Y+1)x[Z,Z+1).
type Pos struct {
	X, Y, Z int
}

func (p Pos) Add(o Pos) Pos {
	return Pos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Neighbor returns the voxel adjacent across face f.
func (p Pos) Neighbor(f BlockFace) Pos {
	return p.Add(f.Offset())
}
