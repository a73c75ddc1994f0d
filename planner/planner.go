package planner

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/vmath"
)

// Options are the route-shaping distances
type Options struct {
	CruiseHeight    float64 // altitude of start and climb-out waypoints
	PreRingDistance float64 // straight run before and after each ring center
	AvoidThreshold  float64 // lateral distance marking a ring as incidental
}

// DefaultOptions returns the stock route shape
func DefaultOptions() Options {
	return Options{
		CruiseHeight:    25,
		PreRingDistance: 15,
		AvoidThreshold:  parameter.AvoidThreshold,
	}
}

// Path is a waypoint sequence threading the target rings in order
type Path struct {
	Points  []mgl64.Vec3
	Centers []int // Centers[i] indexes the center waypoint of Targets[i] in Points
	Targets []int // ring ids actually planned, unknown ids dropped
}

// Nearby is an incidental ring found near a path segment
type Nearby struct {
	ID       int
	Distance float64
}

// Planner synthesizes waypoints over a ring field
// Stateless apart from the field reference; safe to reuse across rounds of the same world
type Planner struct {
	field *ring.Field
	opts  Options
}

func New(field *ring.Field, opts Options) *Planner {
	return &Planner{field: field, opts: opts}
}

// Plan builds the waypoint route from startID through targets
// Returns nil when the start ring is unknown or fewer than two waypoints result
func (p *Planner) Plan(startID int, targets []int) *Path {
	start, ok := p.field.Get(startID)
	if !ok {
		return nil
	}

	path := &Path{
		Points: []mgl64.Vec3{vmath.WithY(start.Center, p.opts.CruiseHeight)},
	}

	for _, id := range targets {
		r, ok := p.field.Get(id)
		if !ok {
			continue
		}
		last := path.Points[len(path.Points)-1]

		// Descent guide halfway to the ring
		path.Points = append(path.Points, vmath.Midpoint(last, r.Center))

		// Lift over rings sitting close to the direct line
		for _, n := range p.NearbyRings(last, r.Center, p.opts.AvoidThreshold) {
			if n.ID == id || n.ID == startID {
				continue
			}
			obstacle, _ := p.field.Get(n.ID)
			over := obstacle.Center
			over[1] += math.Max(parameter.AvoidClearance, over[1]+parameter.AvoidClearance)
			path.Points = append(path.Points, over)
		}

		dir := approachDirection(last, r)
		h := r.Center[1]
		before := vmath.WithY(r.Center.Sub(dir.Mul(p.opts.PreRingDistance)), h)
		after := vmath.WithY(r.Center.Add(dir.Mul(p.opts.PreRingDistance)), h)

		path.Points = append(path.Points, before, r.Center)
		path.Centers = append(path.Centers, len(path.Points)-1)
		path.Targets = append(path.Targets, id)
		path.Points = append(path.Points, after, vmath.WithY(after, p.opts.CruiseHeight))
	}

	if len(path.Points) < 2 {
		return nil
	}
	return path
}

// approachDirection returns the ring normal oriented along the horizontal approach from last
// A vertical approach leaves the normal unflipped
func approachDirection(last mgl64.Vec3, r *ring.Ring) mgl64.Vec3 {
	approach := vmath.NormalizeOr(vmath.Horizontal(r.Center.Sub(last)), mgl64.Vec3{})
	if approach.Dot(r.Normal) < 0 {
		return r.Normal.Mul(-1)
	}
	return r.Normal
}

// NearbyRings returns rings whose centers lie within threshold of segment a→b, nearest first
// Rings effectively on the segment (its own endpoints) are excluded
func (p *Planner) NearbyRings(a, b mgl64.Vec3, threshold float64) []Nearby {
	var out []Nearby
	for _, r := range p.field.Rings() {
		d := vmath.PointSegmentDistance(r.Center, a, b)
		if d < threshold && d > parameter.AvoidEndpointTolerance {
			out = append(out, Nearby{ID: r.ID, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
