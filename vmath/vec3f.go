package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Unit axes, also used as fallbacks when a direction collapses to zero length
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// Epsilon is the length below which a vector is treated as degenerate
const Epsilon = 1e-9

// NormalizeOr returns v at unit length, or fallback when v is zero, NaN or infinite
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	magSq := v.Dot(v)
	if magSq < Epsilon*Epsilon || math.IsNaN(magSq) || math.IsInf(magSq, 0) {
		return fallback
	}
	return v.Mul(1 / math.Sqrt(magSq))
}

// Horizontal projects v onto the XZ plane
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// WithY returns v with its height replaced
func WithY(v mgl64.Vec3, y float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], y, v[2]}
}

// Lerp interpolates a→b, t unclamped
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Midpoint returns the point halfway between a and b
func Midpoint(a, b mgl64.Vec3) mgl64.Vec3 {
	return a.Add(b).Mul(0.5)
}

// PointSegmentDistance returns the distance from p to the closest point of segment ab
// Projection is clamped to the segment; a zero-length segment degrades to point distance
func PointSegmentDistance(p, a, b mgl64.Vec3) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return ap.Len()
	}
	t := Clamp01(ap.Dot(ab) / lenSq)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// SignedPlaneDistance returns the signed distance of p from the plane through origin with unit normal n
func SignedPlaneDistance(p, origin, n mgl64.Vec3) float64 {
	return p.Sub(origin).Dot(n)
}

// YawNormal returns the horizontal unit vector for a rotation of yaw radians about +Y
func YawNormal(yaw float64) mgl64.Vec3 {
	s, c := math.Sincos(yaw)
	return mgl64.Vec3{s, 0, c}
}

// RotateYaw rotates a local-space offset about +Y by yaw radians
func RotateYaw(local mgl64.Vec3, yaw float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(yaw).Mul3x1(local)
}

// ApproxEqual reports whether a and b differ by at most tol on every axis
func ApproxEqual(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol && math.Abs(a[2]-b[2]) <= tol
}
