package parameter

// Ring Geometry
const (
	// RingRadius is the fixed inner radius of every ring
	RingRadius = 1.5

	// RingTube is the torus tube radius, ring centers sit this far above radius over the post top
	RingTube = 0.15

	// CrossingRadiusFactor scales RingRadius into the pass-through acceptance distance
	CrossingRadiusFactor = 1.2

	// MinPostHeight is the lowest post top
	MinPostHeight = 1.0
)

// Ring Scatter
const (
	// ScatterRadiusFraction limits ring placement to this fraction of terrain size from the origin
	ScatterRadiusFraction = 0.45

	// ScatterAttempts is the rejection-sampling budget per ring before the last candidate is kept
	ScatterAttempts = 100

	// StartBackoff is the camera distance behind ring 0 along its normal at world start
	StartBackoff = 15.0
)
