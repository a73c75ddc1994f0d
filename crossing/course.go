package crossing

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/ring"
)

// Switch turns a ring's visual effect on and off
// Disable is a hard stop; Drain stops spawning and lets live particles burn out
type Switch interface {
	Enable(id int)
	Disable(id int)
	Drain(id int)
}

// Outcome describes what one observation changed
type Outcome struct {
	Fired     bool
	PassedID  int
	Remaining int

	// Next target after a crossing, valid when HasNext
	HasNext bool
	NextID  int
	LookAt  mgl64.Vec3

	// RoundComplete is set on the crossing of the last target, exactly once per route
	RoundComplete bool
}

// Course drives ring state along one agent's route
// Exactly one ring is Active while targets remain; passed rings turn Passed and lose their effect
type Course struct {
	field *ring.Field
	sw    Switch
	det   Detector

	route     []int
	cursor    int
	completed bool
}

// NewCourse binds a course to a field; sw may be nil
func NewCourse(field *ring.Field, sw Switch) *Course {
	return &Course{field: field, sw: sw}
}

// Begin resets every ring to Inactive, draining their effects, and activates the first target of route
func (c *Course) Begin(route []int) {
	c.route = append(c.route[:0], route...)
	c.cursor = 0
	c.completed = false
	c.det.Reset()

	c.field.ResetStates()
	if c.sw != nil {
		for _, id := range c.field.IDs() {
			c.sw.Drain(id)
		}
	}
	if len(c.route) > 0 {
		c.activate(c.route[0])
	}
}

// Rebind switches to a regenerated field and its fire switch, dropping the route
func (c *Course) Rebind(field *ring.Field, sw Switch) {
	c.field = field
	c.sw = sw
	c.route = c.route[:0]
	c.cursor = 0
	c.completed = false
	c.det.Reset()
}

// Observe feeds the agent's new position and applies any crossing
func (c *Course) Observe(pos mgl64.Vec3) Outcome {
	id, ok := c.Current()
	if !ok {
		c.det.Observe(pos)
		return Outcome{Remaining: 0}
	}
	r, ok := c.field.Get(id)
	if !ok {
		c.det.Observe(pos)
		return Outcome{Remaining: c.Remaining()}
	}
	if !c.det.Check(pos, r) {
		return Outcome{Remaining: c.Remaining()}
	}

	r.State = ring.Passed
	if c.sw != nil {
		c.sw.Disable(id)
	}
	c.cursor++

	out := Outcome{Fired: true, PassedID: id, Remaining: c.Remaining()}
	if next, ok := c.Current(); ok {
		c.activate(next)
		out.HasNext = true
		out.NextID = next
		if nr, ok := c.field.Get(next); ok {
			out.LookAt = nr.Center
		}
	} else if !c.completed {
		c.completed = true
		out.RoundComplete = true
	}
	return out
}

func (c *Course) activate(id int) {
	c.field.SetState(id, ring.Active)
	if c.sw != nil {
		c.sw.Enable(id)
	}
}

// Current returns the Active target, false once the route is exhausted
func (c *Course) Current() (int, bool) {
	if c.cursor >= len(c.route) {
		return 0, false
	}
	return c.route[c.cursor], true
}

// Remaining returns the number of targets not yet passed
func (c *Course) Remaining() int {
	return len(c.route) - c.cursor
}

// Cursor returns the index of the Active target within the route
func (c *Course) Cursor() int {
	return c.cursor
}

// Completed reports whether every target of the route has been passed
func (c *Course) Completed() bool {
	return c.completed
}
