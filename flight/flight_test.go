package flight

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/curve"
	"github.com/lixenwraith/ringflight/planner"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/vmath"
)

func testField() *ring.Field {
	return ring.NewField(ring.Scatter(ring.ScatterConfig{
		Count: 6, TerrainSize: 200, MaxHeight: 8, MinSpacing: 10,
	}, vmath.NewFastRand(5)))
}

// TestReplanBuildsRouteOverOtherRings verifies the route covers every ring but the start
func TestReplanBuildsRouteOverOtherRings(t *testing.T) {
	f := testField()
	p := planner.New(f, planner.DefaultOptions())
	a := NewPlayer(2, 0.25, curve.Chordal, 0)

	if err := a.Replan(p, f, vmath.NewFastRand(1)); err != nil {
		t.Fatal(err)
	}
	if len(a.Route) != 5 {
		t.Fatalf("route %v, want 5 targets", a.Route)
	}
	seen := map[int]bool{}
	for _, id := range a.Route {
		if id == 2 {
			t.Error("route contains start ring")
		}
		seen[id] = true
	}
	if len(seen) != 5 {
		t.Errorf("route has duplicates: %v", a.Route)
	}
	if a.NextStartID != a.Route[len(a.Route)-1] {
		t.Errorf("next start %d, want last target %d", a.NextStartID, a.Route[len(a.Route)-1])
	}
	if a.Curve == nil || a.Progress != 0 {
		t.Error("curve not built or progress not reset")
	}
}

// TestReplanInsufficientKeepsCurve verifies a failed replan leaves the previous curve untouched
func TestReplanInsufficientKeepsCurve(t *testing.T) {
	f := testField()
	p := planner.New(f, planner.DefaultOptions())
	a := NewPlayer(0, 0.25, curve.Chordal, 0)
	if err := a.Replan(p, f, vmath.NewFastRand(1)); err != nil {
		t.Fatal(err)
	}
	prev := a.Curve

	lone := ring.NewField([]ring.Ring{ring.New(0, 0, 0, 1, 0)})
	err := a.Replan(planner.New(lone, planner.DefaultOptions()), lone, vmath.NewFastRand(1))
	if !errors.Is(err, ErrInsufficientTargets) {
		t.Fatalf("got %v, want ErrInsufficientTargets", err)
	}
	if a.Curve != prev {
		t.Error("curve replaced on failure")
	}
}

// TestAdvanceProgressesBySpeedOverLength verifies constant ground speed and completion
func TestAdvanceProgressesBySpeedOverLength(t *testing.T) {
	c, err := curve.New([]mgl64.Vec3{{0, 0, 0}, {10, 0, 0}}, curve.Chordal, 0)
	if err != nil {
		t.Fatal(err)
	}
	a := &Agent{Speed: 2.5, Curve: c}

	s, r := Advance(a)
	if r != Moving || math.Abs(s.Progress-0.25) > 1e-12 {
		t.Fatalf("first advance: %v %+v", r, s)
	}
	if !vmath.ApproxEqual(s.Position, mgl64.Vec3{2.5, 0, 0}, 1e-6) {
		t.Errorf("position %v", s.Position)
	}
	if !vmath.ApproxEqual(s.Tangent, vmath.AxisX, 1e-9) {
		t.Errorf("tangent %v", s.Tangent)
	}

	Advance(a)
	Advance(a)
	if _, r := Advance(a); r != Completed {
		t.Errorf("fourth advance: %v, want completed", r)
	}
}

// TestAdvanceStallsOnDegenerateCurve verifies short or missing curves never advance
func TestAdvanceStallsOnDegenerateCurve(t *testing.T) {
	a := &Agent{Speed: 1}
	if _, r := Advance(a); r != Stalled {
		t.Errorf("nil curve: %v", r)
	}

	c, _ := curve.New([]mgl64.Vec3{{0, 0, 0}, {0.5, 0, 0}}, curve.Chordal, 0)
	a.Curve = c
	if _, r := Advance(a); r != Stalled || a.Progress != 0 {
		t.Errorf("short curve: %v progress %v", r, a.Progress)
	}
}

func TestRolloverDepartsFromLastTarget(t *testing.T) {
	f := testField()
	p := planner.New(f, planner.DefaultOptions())
	rng := vmath.NewFastRand(9)
	a := NewDrone(1, 0.25, curve.Centripetal, 0, rng)
	if a.Speed < 0.2 || a.Speed >= 0.3 {
		t.Errorf("drone speed %v outside jitter band", a.Speed)
	}
	if err := a.Replan(p, f, rng); err != nil {
		t.Fatal(err)
	}
	last := a.NextStartID
	if err := a.Rollover(p, f, rng); err != nil {
		t.Fatal(err)
	}
	if a.StartID != last {
		t.Errorf("start %d, want %d", a.StartID, last)
	}
	for _, id := range a.Route {
		if id == last {
			t.Error("new route revisits departure ring")
		}
	}
}

func TestLookaheadClampsToEnd(t *testing.T) {
	c, _ := curve.New([]mgl64.Vec3{{0, 0, 0}, {10, 0, 0}}, curve.Chordal, 0)
	a := &Agent{Curve: c, Progress: 0.9}
	if got := Lookahead(a, 3); got != (mgl64.Vec3{10, 0, 0}) {
		t.Errorf("lookahead %v, want curve end", got)
	}
}
