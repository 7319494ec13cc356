package world

import (
	"math/rand"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 20, 42)
	for i := 0; i < 100; i++ {
		if h := hash2(10, 20, 42); h != first {
			t.Fatalf("hash2 not deterministic: %d != %d", h, first)
		}
	}
}

func TestHash2DifferentInputs(t *testing.T) {
	cases := []struct {
		name string
		a, b uint32
	}{
		{"x", hash2(1, 0, 7), hash2(2, 0, 7)},
		{"z", hash2(0, 1, 7), hash2(0, 2, 7)},
		{"seed", hash2(1, 1, 100), hash2(1, 1, 200)},
		{"axis swap", hash2(1, 2, 7), hash2(2, 1, 7)},
	}
	for _, tc := range cases {
		if tc.a == tc.b {
			t.Errorf("hash2 should differ for %s: %d", tc.name, tc.a)
		}
	}
}

// Known values pin the 32-bit wrapping arithmetic.
func TestHash2Pinned(t *testing.T) {
	x, z, seed := int32(3), int32(-7), int32(99)
	x += seed * 1619
	z -= seed * 31337
	h := uint32(x)*374761393 + uint32(z)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	if got := hash2(3, -7, 99); got != h {
		t.Fatalf("hash2 = %d, want %d", got, h)
	}
}

func TestValueNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	n := ValueNoise{Seed: 42, Octaves: 4}
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		if v := n.Noise2D(x, z); v < 0 || v > 1 {
			t.Fatalf("Noise2D(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

func TestValueNoiseContinuity(t *testing.T) {
	n := ValueNoise{Seed: 42, Octaves: 1}
	v1 := n.Noise2D(1.0, 1.0)
	v2 := n.Noise2D(1.01, 1.0)
	if d := v1 - v2; d > 0.1 || d < -0.1 {
		t.Errorf("noise not continuous: %f vs %f", v1, v2)
	}
}

func TestPerlinNoiseRange(t *testing.T) {
	n := NewPerlinNoise(7, 3)
	for i := 0; i < 200; i++ {
		v := n.Noise2D(float64(i)*0.37, float64(i)*-0.11)
		if v < 0 || v > 1 {
			t.Fatalf("perlin sample %d out of range: %f", i, v)
		}
	}
}

func TestTreeRollRange(t *testing.T) {
	for x := int32(-20); x < 20; x++ {
		if r := treeRoll(x, -x, 5); r < 0 || r >= 1 {
			t.Fatalf("treeRoll(%d) = %f", x, r)
		}
	}
}
