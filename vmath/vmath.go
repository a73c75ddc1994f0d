package vmath

import (
	"math"
)

// Clamp01 limits t to [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic maps t∈[0,1] to 1-(1-t)^3
func EaseOutCubic(t float64) float64 {
	u := 1 - Clamp01(t)
	return 1 - u*u*u
}

// LerpF interpolates scalars, t unclamped
func LerpF(a, b, t float64) float64 {
	return a + (b-a)*t
}

// --- Randomness ---

// FastRand is a xorshift64 generator
// Not safe for concurrent use; every consumer runs on the tick goroutine
type FastRand struct {
	state uint64
}

// NewFastRand returns a generator seeded with seed (0 is remapped, xorshift has no zero state)
func NewFastRand(seed uint64) *FastRand {
	r := &FastRand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state
func (r *FastRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	r.state = seed
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Jitter returns a uniform value in [-0.5, 0.5) scaled by amp
func (r *FastRand) Jitter(amp float64) float64 {
	return (r.Float64() - 0.5) * amp
}

// Angle returns a uniform angle in [0, 2π)
func (r *FastRand) Angle() float64 {
	return r.Float64() * 2 * math.Pi
}

// Shuffle returns a Fisher-Yates shuffled copy of ids
func (r *FastRand) Shuffle(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
