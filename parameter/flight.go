package parameter

import "time"

// Path Planning
const (
	// AvoidThreshold is the lateral distance (units) from a path segment that marks a ring as incidental
	AvoidThreshold = 4.0

	// AvoidEndpointTolerance excludes rings lying on the segment itself (its start/end ring)
	AvoidEndpointTolerance = 0.1

	// AvoidClearance is the minimum height added above an incidental ring
	AvoidClearance = 2.0
)

// Flight Curve
const (
	// CurveSamplesPerSegment is the arc-length table resolution between consecutive control points
	CurveSamplesPerSegment = 24

	// CurveLookaheadPoints is the debug polyline resolution
	CurveLookaheadPoints = 100

	// CurveMinLength is the length at or below which a curve is treated as degenerate
	CurveMinLength = 1.0
)

// Drone Agents
const (
	// DroneSpeedMin/Max scale the configured speed per drone
	DroneSpeedMin = 0.8
	DroneSpeedMax = 1.2
)

// Look-At Transition
const (
	// LookForwardDuration is how long the gaze holds straight ahead after a crossing
	LookForwardDuration = 800 * time.Millisecond

	// LookSearchDuration is the eased swing from the forward target to the next ring
	LookSearchDuration = 1500 * time.Millisecond

	// LookForwardDistance is the lookahead along the horizontal tangent during the forward phase
	LookForwardDistance = 30.0

	// LookIdleDistance is the curve lookahead once the path is exhausted
	LookIdleDistance = 3.0

	// LookTerminalDistance is the far point used as search endpoint after the last ring
	LookTerminalDistance = 100.0
)
