package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Deterministic 2D value noise with multiple octaves.
// Lattice values come from a 32-bit integer hash so results match on every platform.

// NoiseSource samples a 2D field in [0,1].
type NoiseSource interface {
	Noise2D(x, z float64) float64
}

// fade function is used for smoothing (6t^5 - 15t^4 + 10t^3)
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 mixes lattice coordinates with the seed folded into them.
// All arithmetic wraps at 32 bits.
func hash2(x, z, seed int32) uint32 {
	x += seed * 1619
	z -= seed * 31337
	h := uint32(x)*374761393 + uint32(z)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func latticeValue(x, z, seed int32) float64 {
	return float64(hash2(x, z, seed)) / float64(math.MaxUint32)
}

func valueNoise2D(x, z float64, seed int32) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	ix, iz := int32(x0), int32(z0)

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := latticeValue(ix, iz, seed)
	v10 := latticeValue(ix+1, iz, seed)
	v01 := latticeValue(ix, iz+1, seed)
	v11 := latticeValue(ix+1, iz+1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz)
}

func octaveNoise2D(x, z float64, seed int32, octaves int) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += valueNoise2D(x*frequency, z*frequency, seed+int32(i)*131) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// ValueNoise is the default fractal hash noise.
type ValueNoise struct {
	Seed    int32
	Octaves int
}

func (n ValueNoise) Noise2D(x, z float64) float64 {
	return octaveNoise2D(x, z, n.Seed, n.Octaves)
}

// PerlinNoise wraps go-perlin and remaps its output to [0,1].
type PerlinNoise struct {
	p *perlin.Perlin
}

func NewPerlinNoise(seed int64, octaves int) *PerlinNoise {
	return &PerlinNoise{p: perlin.NewPerlin(2, 2, int32(octaves), seed)}
}

func (n *PerlinNoise) Noise2D(x, z float64) float64 {
	v := (n.p.Noise2D(x, z) + 1) / 2
	return math.Max(0, math.Min(1, v))
}

// treeRoll returns a per-column value in [0,1) independent of the height noise.
func treeRoll(x, z, seed int32) float64 {
	return float64(hash2(x, z, seed^0x5bd1e995)) / (float64(math.MaxUint32) + 1)
}
