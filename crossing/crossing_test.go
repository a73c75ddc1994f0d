package crossing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/curve"
	"github.com/lixenwraith/ringflight/flight"
	"github.com/lixenwraith/ringflight/planner"
	"github.com/lixenwraith/ringflight/ring"
)

type recordingSwitch struct {
	on      map[int]bool
	enables int
	drains  int
}

func newRecordingSwitch() *recordingSwitch {
	return &recordingSwitch{on: map[int]bool{}}
}

func (s *recordingSwitch) Enable(id int) {
	s.on[id] = true
	s.enables++
}

func (s *recordingSwitch) Disable(id int) {
	delete(s.on, id)
}

func (s *recordingSwitch) Drain(id int) {
	delete(s.on, id)
	s.drains++
}

// TestDetectorFiresOncePerPass verifies a straight pass through the center fires exactly once
func TestDetectorFiresOncePerPass(t *testing.T) {
	r := ring.New(0, 0, 0, 1, 0) // normal +Z, center y=2.65
	var d Detector
	fires := 0
	for z := -10.0; z <= 10; z += 0.25 {
		if d.Check(mgl64.Vec3{0, r.Center[1], z + 0.1}, &r) {
			fires++
		}
	}
	if fires != 1 {
		t.Errorf("fired %d times, want 1", fires)
	}
}

// TestDetectorIgnoresOneSidedPath verifies approaching and retreating on one side never fires
func TestDetectorIgnoresOneSidedPath(t *testing.T) {
	r := ring.New(0, 0, 0, 1, 0)
	var d Detector
	path := []float64{-10, -5, -1, -0.2, -1, -5}
	for _, z := range path {
		if d.Check(mgl64.Vec3{0, r.Center[1], z}, &r) {
			t.Fatalf("fired at z=%v", z)
		}
	}
}

// TestDetectorIgnoresCrossingOutsideRadius verifies crossing the plane beside the ring does not count
func TestDetectorIgnoresCrossingOutsideRadius(t *testing.T) {
	r := ring.New(0, 0, 0, 1, 0)
	var d Detector
	d.Check(mgl64.Vec3{5, r.Center[1], -0.5}, &r)
	if d.Check(mgl64.Vec3{5, r.Center[1], 0.5}, &r) {
		t.Error("fired 5 units off center")
	}
}

// TestDetectorFirstObservationPrimes verifies a fresh or reset detector never fires on its first sample
func TestDetectorFirstObservationPrimes(t *testing.T) {
	r := ring.New(0, 0, 0, 1, 0)
	var d Detector
	if d.Check(mgl64.Vec3{0, r.Center[1], 0.1}, &r) {
		t.Error("first observation fired")
	}
	d.Check(mgl64.Vec3{0, r.Center[1], -0.1}, &r)
	d.Reset()
	if d.Check(mgl64.Vec3{0, r.Center[1], 0.1}, &r) {
		t.Error("first observation after reset fired")
	}
}

func scenarioField() *ring.Field {
	return ring.NewField([]ring.Ring{
		ring.New(0, 0, 0, 3, 0.4),
		ring.New(1, 60, 0, 5, 1.1),
		ring.New(2, 60, 60, 2, 2.5),
		ring.New(3, 0, 70, 6, 4.0),
		ring.New(4, -60, 30, 4, 5.3),
	})
}

// TestCourseFullRound flies a five-ring route and checks final states and a single completion
func TestCourseFullRound(t *testing.T) {
	f := scenarioField()
	route := []int{1, 2, 3, 4}
	path := planner.New(f, planner.DefaultOptions()).Plan(0, route)
	c, err := curve.New(path.Points, curve.Chordal, 0)
	if err != nil {
		t.Fatal(err)
	}
	agent := &flight.Agent{Speed: 0.25, Curve: c}

	sw := newRecordingSwitch()
	course := NewCourse(f, sw)
	course.Begin(route)

	if f.ActiveCount() != 1 || !sw.on[1] {
		t.Fatalf("after Begin: active %d, fire on %v", f.ActiveCount(), sw.on)
	}

	var passed []int
	completions := 0
	for i := 0; i < 1_000_000; i++ {
		s, res := flight.Advance(agent)
		if res != flight.Moving {
			break
		}
		out := course.Observe(s.Position)
		if out.Fired {
			passed = append(passed, out.PassedID)
			if out.HasNext && out.LookAt != mustRing(t, f, out.NextID).Center {
				t.Errorf("look-at endpoint not next ring center")
			}
		}
		if out.RoundComplete {
			completions++
		}
		if f.ActiveCount() > 1 {
			t.Fatalf("%d rings active at once", f.ActiveCount())
		}
	}

	if len(passed) != 4 {
		t.Fatalf("passed %v, want %v", passed, route)
	}
	for i := range route {
		if passed[i] != route[i] {
			t.Errorf("pass %d was ring %d, want %d", i, passed[i], route[i])
		}
	}
	if completions != 1 {
		t.Errorf("round complete emitted %d times", completions)
	}
	if s := mustRing(t, f, 0).State; s != ring.Inactive {
		t.Errorf("start ring %v, want inactive", s)
	}
	for _, id := range route {
		if s := mustRing(t, f, id).State; s != ring.Passed {
			t.Errorf("ring %d %v, want passed", id, s)
		}
	}
	if len(sw.on) != 0 {
		t.Errorf("fires still on: %v", sw.on)
	}
	if sw.enables != 4 {
		t.Errorf("fire enabled %d times, want 4", sw.enables)
	}
}

func TestCourseBeginResetsPreviousRound(t *testing.T) {
	f := scenarioField()
	sw := newRecordingSwitch()
	course := NewCourse(f, sw)
	f.SetState(2, ring.Passed)
	f.SetState(3, ring.Active)
	sw.Enable(3)

	course.Begin([]int{4, 1})
	if mustRing(t, f, 2).State != ring.Inactive || mustRing(t, f, 3).State != ring.Inactive {
		t.Error("previous states not reset")
	}
	if mustRing(t, f, 4).State != ring.Active || !sw.on[4] || sw.on[3] {
		t.Errorf("first target not sole active: fires %v", sw.on)
	}
	if sw.drains != f.Len() {
		t.Errorf("begin drained %d fires, want every ring (%d)", sw.drains, f.Len())
	}
	if id, ok := course.Current(); !ok || id != 4 || course.Remaining() != 2 {
		t.Errorf("current %d %v remaining %d", id, ok, course.Remaining())
	}
}

func mustRing(t *testing.T, f *ring.Field, id int) *ring.Ring {
	t.Helper()
	r, ok := f.Get(id)
	if !ok {
		t.Fatalf("ring %d missing", id)
	}
	return r
}
