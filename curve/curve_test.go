package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/vmath"
)

func zigzag() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{0, 25, 0},
		{10, 25, 5},
		{20, 8, -3},
		{30, 8, 12},
		{45, 25, 12},
	}
}

// TestEndpointsExact verifies u=0 and u=1 return the first and last control point exactly
func TestEndpointsExact(t *testing.T) {
	for _, mode := range []Mode{Uniform, Chordal, Centripetal} {
		pts := zigzag()
		c, err := New(pts, mode, 0)
		if err != nil {
			t.Fatalf("%v: %v", mode, err)
		}
		if got := c.PointAt(0); got != pts[0] {
			t.Errorf("%v: PointAt(0) = %v, want %v", mode, got, pts[0])
		}
		if got := c.PointAt(1); got != pts[len(pts)-1] {
			t.Errorf("%v: PointAt(1) = %v, want %v", mode, got, pts[len(pts)-1])
		}
	}
}

// TestPassesThroughControlPoints verifies every interior control point lies on the curve at its knot
func TestPassesThroughControlPoints(t *testing.T) {
	for _, mode := range []Mode{Uniform, Chordal, Centripetal} {
		pts := zigzag()
		c, err := New(pts, mode, 0)
		if err != nil {
			t.Fatal(err)
		}
		prev := -1.0
		for i := range pts {
			u := c.KnotAt(i)
			if u <= prev {
				t.Fatalf("%v: knots not increasing at %d: %v <= %v", mode, i, u, prev)
			}
			prev = u
			if got := c.PointAt(u); !vmath.ApproxEqual(got, pts[i], 1e-9) {
				t.Errorf("%v: PointAt(knot %d) = %v, want %v", mode, i, got, pts[i])
			}
		}
	}
}

// TestTwoPointCurveIsStraight verifies a two-point curve is the segment between them
func TestTwoPointCurveIsStraight(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{10, 0, 0}
	c, err := New([]mgl64.Vec3{a, b}, Chordal, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.Length()-10) > 1e-9 {
		t.Errorf("length = %v, want 10", c.Length())
	}
	for _, u := range []float64{0.1, 0.25, 0.5, 0.9} {
		got := c.PointAt(u)
		if !vmath.ApproxEqual(got, mgl64.Vec3{10 * u, 0, 0}, 1e-6) {
			t.Errorf("PointAt(%v) = %v", u, got)
		}
	}
}

// TestTooFewPoints verifies construction fails below two points
func TestTooFewPoints(t *testing.T) {
	if _, err := New(nil, Chordal, 0); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("nil points: got %v", err)
	}
	if _, err := New([]mgl64.Vec3{{1, 2, 3}}, Chordal, 0); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("one point: got %v", err)
	}
}

// TestTensionOutOfRange verifies tension is bounded to [0,1)
func TestTensionOutOfRange(t *testing.T) {
	for _, ten := range []float64{-0.1, 1, 2, math.NaN()} {
		if _, err := New(zigzag(), Chordal, ten); err == nil {
			t.Errorf("tension %v accepted", ten)
		}
	}
}

// TestTangentIsUnit verifies tangents have unit length and follow travel direction
func TestTangentIsUnit(t *testing.T) {
	c, err := New(zigzag(), Centripetal, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 50; i++ {
		u := float64(i) / 50
		tan := c.TangentAt(u)
		if math.Abs(tan.Len()-1) > 1e-9 {
			t.Fatalf("TangentAt(%v) length %v", u, tan.Len())
		}
	}

	straight, _ := New([]mgl64.Vec3{{0, 0, 0}, {0, 0, -5}}, Chordal, 0)
	if got := straight.TangentAt(0.5); !vmath.ApproxEqual(got, mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Errorf("straight tangent = %v, want -Z", got)
	}
}

// TestArcLengthSpacing verifies equal u steps cover roughly equal distance
func TestArcLengthSpacing(t *testing.T) {
	c, err := New(zigzag(), Chordal, 0)
	if err != nil {
		t.Fatal(err)
	}
	pts := c.Points(100)
	if len(pts) != 101 {
		t.Fatalf("Points(100) returned %d", len(pts))
	}
	step := c.Length() / 100
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1]).Len()
		if math.Abs(d-step) > step*0.05 {
			t.Errorf("step %d: distance %v, want ~%v", i, d, step)
		}
	}
}

// TestCoincidentPointsStayFinite verifies repeated control points do not produce NaN
func TestCoincidentPointsStayFinite(t *testing.T) {
	pts := []mgl64.Vec3{{0, 0, 0}, {5, 0, 0}, {5, 0, 0}, {10, 0, 5}}
	c, err := New(pts, Centripetal, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 20; i++ {
		p := c.PointAt(float64(i) / 20)
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite point %v", p)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": Chordal, "Uniform": Uniform, "chordal": Chordal, " centripetal ": Centripetal}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("bezier"); err == nil {
		t.Error("unknown mode accepted")
	}
}
