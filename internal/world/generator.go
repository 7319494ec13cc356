package world

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	NoiseValue  = "value"
	NoisePerlin = "perlin"
)

// Generator handles terrain generation logic.
type Generator struct {
	Seed       int64
	SeaLevel   int
	MaxHeight  int
	Octaves    int
	Scale      float64
	TreeChance float64
	Noise      string
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:       seed,
		SeaLevel:   4,
		MaxHeight:  12,
		Octaves:    4,
		Scale:      1.0 / 24.0,
		TreeChance: 0.02,
		Noise:      NoiseValue,
	}
}

// Generate builds a size x size world centered at the origin.
func Generate(size int, seed int64) *World {
	w := NewEmpty()
	// Background context never cancels, so Populate cannot fail here.
	_ = NewGenerator(seed).Populate(context.Background(), w, size)
	return w
}

func (g *Generator) source() NoiseSource {
	if g.Noise == NoisePerlin {
		return NewPerlinNoise(g.Seed, g.Octaves)
	}
	return ValueNoise{Seed: foldSeed(g.Seed), Octaves: g.Octaves}
}

func foldSeed(seed int64) int32 {
	return int32(seed) ^ int32(seed>>32)
}

// HeightAt computes the surface block Y at world X,Z.
func (g *Generator) HeightAt(src NoiseSource, worldX, worldZ int) int {
	n := src.Noise2D(float64(worldX)*g.Scale, float64(worldZ)*g.Scale)
	return int(math.Floor(float64(g.SeaLevel) + n*float64(g.MaxHeight)))
}

// Populate fills w with terrain and trees for the size x size square around the origin.
// Column heights are sampled concurrently; all writes happen on the calling goroutine.
func (g *Generator) Populate(ctx context.Context, w *World, size int) error {
	if size <= 0 {
		return nil
	}
	src := g.source()
	minX := -size / 2
	minZ := -size / 2

	heights := make([][]int, size)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range size {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]int, size)
			for j := range size {
				row[j] = g.HeightAt(src, minX+i, minZ+j)
			}
			heights[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	seed := foldSeed(g.Seed)
	w.Batch(func(e *Editor) {
		for i := range size {
			for j := range size {
				g.fillColumn(e, minX+i, minZ+j, heights[i][j])
			}
		}
		for i := range size {
			for j := range size {
				x, z := minX+i, minZ+j
				roll := treeRoll(int32(x), int32(z), seed)
				if roll < g.TreeChance {
					g.placeTree(e, x, heights[i][j]+1, z, roll)
				}
			}
		}
	})
	return nil
}

func (g *Generator) surfaceBlock(height int) BlockType {
	switch {
	case height <= g.SeaLevel+1:
		return BlockTypeSand
	case height >= g.SeaLevel+g.MaxHeight*3/4:
		return BlockTypeSnow
	default:
		return BlockTypeGrass
	}
}

func (g *Generator) fillColumn(e *Editor, x, z, height int) {
	for y := 0; y <= height; y++ {
		bt := BlockTypeStone
		switch {
		case y == height:
			bt = g.surfaceBlock(height)
		case y >= height-2:
			bt = BlockTypeDirt
		}
		e.Set(x, y, z, bt)
	}
}

// placeTree grows a trunk from baseY and a leaf cluster bounded by Manhattan distance 3.
func (g *Generator) placeTree(e *Editor, x, baseY, z int, roll float64) {
	trunk := 4
	if g.TreeChance > 0 && roll < g.TreeChance/2 {
		trunk = 5
	}
	for y := baseY; y < baseY+trunk; y++ {
		e.Set(x, y, z, BlockTypeWood)
	}
	topY := baseY + trunk - 1
	for dx := -2; dx <= 2; dx++ {
		for dy := -1; dy <= 2; dy++ {
			for dz := -2; dz <= 2; dz++ {
				if abs(dx)+abs(dy)+abs(dz) > 3 {
					continue
				}
				e.SetIfAir(x+dx, topY+dy, z+dz, BlockTypeLeaves)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
