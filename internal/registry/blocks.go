package registry

import (
	"image/color"

	"voxelbox/internal/world"
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID          world.BlockType
	Name        string
	TextureTop  string
	TextureSide string
	TextureBot  string
	IsSolid     bool
	// BreakTime is seconds of continuous mining; <= 0 means unbreakable.
	BreakTime float64
}

var (
	Blocks       = make(map[world.BlockType]*BlockDefinition)
	TextureNames []string
	TextureMap   = make(map[string]int)

	// TextureColors is the base tint of each texture in the procedural atlas.
	TextureColors = make(map[string]color.RGBA)
)

func RegisterBlock(def *BlockDefinition) {
	Blocks[def.ID] = def

	registerTexture(def.TextureTop)
	registerTexture(def.TextureSide)
	registerTexture(def.TextureBot)
}

func registerTexture(name string) {
	if name == "" {
		return
	}
	if _, exists := TextureMap[name]; !exists {
		TextureMap[name] = len(TextureNames)
		TextureNames = append(TextureNames, name)
	}
}

func texture(name string, c color.RGBA) string {
	TextureColors[name] = c
	return name
}

func init() {
	RegisterBlock(&BlockDefinition{
		ID:   world.BlockTypeAir,
		Name: "air",
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeGrass,
		Name:        "grass",
		TextureTop:  texture("grass_top", color.RGBA{96, 168, 64, 255}),
		TextureSide: texture("grass_side", color.RGBA{120, 140, 72, 255}),
		TextureBot:  texture("dirt", color.RGBA{134, 96, 67, 255}),
		IsSolid:     true,
		BreakTime:   0.9,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeDirt,
		Name:        "dirt",
		TextureTop:  "dirt",
		TextureSide: "dirt",
		TextureBot:  "dirt",
		IsSolid:     true,
		BreakTime:   0.75,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeStone,
		Name:        "stone",
		TextureTop:  texture("stone", color.RGBA{125, 125, 125, 255}),
		TextureSide: "stone",
		TextureBot:  "stone",
		IsSolid:     true,
		BreakTime:   1.5,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeWood,
		Name:        "wood",
		TextureTop:  texture("log_top", color.RGBA{160, 130, 80, 255}),
		TextureSide: texture("log_side", color.RGBA{102, 81, 50, 255}),
		TextureBot:  "log_top",
		IsSolid:     true,
		BreakTime:   2.0,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeSand,
		Name:        "sand",
		TextureTop:  texture("sand", color.RGBA{219, 207, 163, 255}),
		TextureSide: "sand",
		TextureBot:  "sand",
		IsSolid:     true,
		BreakTime:   0.75,
	})

	// Water is walked and looked through; it cannot be mined.
	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeWater,
		Name:        "water",
		TextureTop:  texture("water", color.RGBA{48, 88, 200, 160}),
		TextureSide: "water",
		TextureBot:  "water",
		IsSolid:     false,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeLeaves,
		Name:        "leaves",
		TextureTop:  texture("leaves", color.RGBA{58, 122, 40, 230}),
		TextureSide: "leaves",
		TextureBot:  "leaves",
		IsSolid:     true,
		BreakTime:   0.35,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeSnow,
		Name:        "snow",
		TextureTop:  texture("snow", color.RGBA{240, 250, 250, 255}),
		TextureSide: texture("snow_side", color.RGBA{200, 210, 205, 255}),
		TextureBot:  "dirt",
		IsSolid:     true,
		BreakTime:   0.5,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypePlanks,
		Name:        "planks",
		TextureTop:  texture("planks", color.RGBA{180, 144, 90, 255}),
		TextureSide: "planks",
		TextureBot:  "planks",
		IsSolid:     true,
		BreakTime:   2.0,
	})

	RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeCraftingTable,
		Name:        "crafting_table",
		TextureTop:  texture("crafting_table_top", color.RGBA{150, 100, 60, 255}),
		TextureSide: texture("crafting_table_side", color.RGBA{130, 90, 55, 255}),
		TextureBot:  "planks",
		IsSolid:     true,
		BreakTime:   2.5,
	})
}

// IsSolid reports whether bt blocks movement. Unknown types are solid.
func IsSolid(bt world.BlockType) bool {
	if bt == world.BlockTypeAir {
		return false
	}
	def, ok := Blocks[bt]
	if !ok {
		return true
	}
	return def.IsSolid
}

// IsTargetable reports whether a ray stops at bt.
func IsTargetable(bt world.BlockType) bool {
	return bt != world.BlockTypeAir && bt != world.BlockTypeWater
}

// BreakTime returns the seconds needed to mine bt, or 0 when it cannot be mined.
func BreakTime(bt world.BlockType) float64 {
	def, ok := Blocks[bt]
	if !ok || def.BreakTime <= 0 {
		return 0
	}
	return def.BreakTime
}

// GetTextureLayer returns the atlas row for a given block and face
func GetTextureLayer(blockType world.BlockType, face world.BlockFace) int {
	def, ok := Blocks[blockType]
	if !ok {
		return 0
	}

	var texName string
	switch face {
	case world.FaceTop:
		texName = def.TextureTop
	case world.FaceBottom:
		texName = def.TextureBot
	default:
		texName = def.TextureSide
	}

	if idx, ok := TextureMap[texName]; ok {
		return idx
	}
	return 0
}

// AtlasRows is the number of tiles stacked in the atlas.
func AtlasRows() int {
	return len(TextureNames)
}
