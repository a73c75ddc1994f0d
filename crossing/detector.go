package crossing

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/vmath"
)

// Detector reports when an agent passes through a ring
// Edge-triggered on the sign change of the signed distance to the ring plane,
// gated by proximity to the center so passing beside the ring never counts
type Detector struct {
	prev   mgl64.Vec3
	primed bool
}

// Check records pos and reports whether the step from the previous position crossed r
// The first observation after construction or Reset only primes the detector
func (d *Detector) Check(pos mgl64.Vec3, r *ring.Ring) bool {
	if !d.primed {
		d.prev = pos
		d.primed = true
		return false
	}

	dCur := vmath.SignedPlaneDistance(pos, r.Center, r.Normal)
	dPrev := vmath.SignedPlaneDistance(d.prev, r.Center, r.Normal)
	d.prev = pos

	if dCur*dPrev >= 0 {
		return false
	}
	return pos.Sub(r.Center).Len() < r.Radius*parameter.CrossingRadiusFactor
}

// Observe records pos without testing any ring
func (d *Detector) Observe(pos mgl64.Vec3) {
	d.prev = pos
	d.primed = true
}

// Reset forgets the previous position, used when the agent jumps to a new curve
func (d *Detector) Reset() {
	d.primed = false
}
