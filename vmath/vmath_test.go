package vmath

import (
	"math"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPointSegmentDistance(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{10, 0, 0}

	tests := []struct {
		name string
		p    mgl64.Vec3
		want float64
	}{
		{"above middle", mgl64.Vec3{5, 3, 0}, 3},
		{"beyond end clamps", mgl64.Vec3{13, 4, 0}, 5},
		{"before start clamps", mgl64.Vec3{-3, 0, 4}, 5},
		{"on segment", mgl64.Vec3{7, 0, 0}, 0},
	}
	for _, tc := range tests {
		got := PointSegmentDistance(tc.p, a, b)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}

	// Degenerate segment falls back to point distance
	if got := PointSegmentDistance(mgl64.Vec3{3, 4, 0}, a, a); math.Abs(got-5) > 1e-12 {
		t.Errorf("zero-length segment: got %v, want 5", got)
	}
}

func TestNormalizeOrFallback(t *testing.T) {
	if got := NormalizeOr(mgl64.Vec3{}, AxisZ); got != AxisZ {
		t.Errorf("zero vector: got %v, want fallback %v", got, AxisZ)
	}
	nan := mgl64.Vec3{math.NaN(), 0, 0}
	if got := NormalizeOr(nan, AxisX); got != AxisX {
		t.Errorf("NaN vector: got %v, want fallback", got)
	}
	got := NormalizeOr(mgl64.Vec3{0, 3, 4}, AxisZ)
	if math.Abs(got.Len()-1) > 1e-12 || math.Abs(got[1]-0.6) > 1e-12 {
		t.Errorf("normalize (0,3,4): got %v", got)
	}
}

func TestYawNormalIsUnitAndHorizontal(t *testing.T) {
	rng := NewFastRand(7)
	for i := 0; i < 100; i++ {
		n := YawNormal(rng.Angle())
		if math.Abs(n.Len()-1) > 1e-12 {
			t.Fatalf("yaw normal not unit length: %v", n)
		}
		if n[1] != 0 {
			t.Fatalf("yaw normal has vertical component: %v", n)
		}
	}
}

func TestRotateYawMatchesYawNormal(t *testing.T) {
	for _, yaw := range []float64{0, 0.3, math.Pi / 2, 2.5, 5.9} {
		got := RotateYaw(AxisZ, yaw)
		want := YawNormal(yaw)
		if !ApproxEqual(got, want, 1e-12) {
			t.Errorf("yaw %v: rotated +Z %v, want %v", yaw, got, want)
		}
	}
}

func TestEaseOutCubic(t *testing.T) {
	cases := map[float64]float64{0: 0, 1: 1, 0.5: 0.875, -1: 0, 2: 1}
	for in, want := range cases {
		if got := EaseOutCubic(in); math.Abs(got-want) > 1e-12 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestFastRandReseedIsDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(1)
	b.Seed(42)
	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at %d", i)
		}
	}
}

func TestFastRandFloat64Range(t *testing.T) {
	r := NewFastRand(99)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
		v := r.Range(0.8, 1.5)
		if v < 0.8 || v >= 1.5 {
			t.Fatalf("Range out of bounds: %v", v)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := NewFastRand(3)
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := r.Shuffle(ids)
	if len(out) != len(ids) {
		t.Fatalf("length changed: %d", len(out))
	}
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	for i := range ids {
		if sorted[i] != ids[i] {
			t.Fatalf("not a permutation: %v", out)
		}
	}
	if ids[0] != 1 || ids[7] != 8 {
		t.Errorf("input slice mutated: %v", ids)
	}
}
