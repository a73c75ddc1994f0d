package lookat

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/vmath"
)

// State is the gaze transition phase
type State uint8

const (
	Idle State = iota
	Forward
	Search
)

func (s State) String() string {
	switch s {
	case Forward:
		return "forward"
	case Search:
		return "search"
	default:
		return "idle"
	}
}

// View is the camera context sampled each tick
type View struct {
	Camera  mgl64.Vec3
	Tangent mgl64.Vec3 // curve direction at the camera
	ViewDir mgl64.Vec3 // current gaze direction, unit

	// Idle gaze: the Active ring center when HasTarget, else Lookahead
	Target    mgl64.Vec3
	HasTarget bool
	Lookahead mgl64.Vec3
}

// Controller produces the player's gaze target, easing from straight ahead to the next ring after a crossing
type Controller struct {
	forward time.Duration
	search  time.Duration

	state    State
	start    time.Time
	endpoint mgl64.Vec3
	hasNext  bool

	// Last forward-phase target, the search phase starts from it
	from    mgl64.Vec3
	hasFrom bool
}

// New creates a controller with the given phase durations, zero selects the defaults
func New(forward, search time.Duration) *Controller {
	if forward <= 0 {
		forward = parameter.LookForwardDuration
	}
	if search <= 0 {
		search = parameter.LookSearchDuration
	}
	return &Controller{forward: forward, search: search}
}

// Start begins a transition at now toward endpoint
// Without a next ring the endpoint is replaced by a far point along the view direction at search entry
func (c *Controller) Start(now time.Time, endpoint mgl64.Vec3, hasNext bool) {
	c.state = Forward
	c.start = now
	c.endpoint = endpoint
	c.hasNext = hasNext
	c.hasFrom = false
}

// Cancel returns to Idle, used when the agent's path is rebuilt
func (c *Controller) Cancel() {
	c.state = Idle
	c.hasFrom = false
}

// State returns the current phase
func (c *Controller) State() State {
	return c.state
}

// Elapsed returns time since the transition started, zero when idle
func (c *Controller) Elapsed(now time.Time) time.Duration {
	if c.state == Idle {
		return 0
	}
	return now.Sub(c.start)
}

// Update advances the phase for now and returns the gaze target
func (c *Controller) Update(now time.Time, v View) mgl64.Vec3 {
	elapsed := now.Sub(c.start)

	if c.state == Forward {
		if elapsed < c.forward {
			c.from = forwardTarget(v)
			c.hasFrom = true
			return c.from
		}
		c.enterSearch(v)
	}

	if c.state == Search {
		into := elapsed - c.forward
		if into >= c.search {
			c.state = Idle
			return c.endpoint
		}
		t := float64(into) / float64(c.search)
		return vmath.Lerp(c.from, c.endpoint, vmath.EaseOutCubic(t))
	}

	if v.HasTarget {
		return v.Target
	}
	return v.Lookahead
}

func (c *Controller) enterSearch(v View) {
	if !c.hasFrom {
		c.from = forwardTarget(v)
		c.hasFrom = true
	}
	if !c.hasNext {
		dir := vmath.NormalizeOr(v.ViewDir, vmath.AxisZ)
		c.endpoint = v.Camera.Add(dir.Mul(parameter.LookTerminalDistance))
	}
	c.state = Search
}

// forwardTarget projects along the horizontal tangent, ignoring vertical swing
func forwardTarget(v View) mgl64.Vec3 {
	fallback := vmath.NormalizeOr(vmath.Horizontal(v.ViewDir), vmath.AxisZ)
	dir := vmath.NormalizeOr(vmath.Horizontal(v.Tangent), fallback)
	return v.Camera.Add(dir.Mul(parameter.LookForwardDistance))
}
