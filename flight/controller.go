package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
)

// Result reports what a single advance did
type Result uint8

const (
	// Moving means the agent advanced and has a valid pose
	Moving Result = iota
	// Stalled means the curve is missing or too short; nothing advanced
	Stalled
	// Completed means progress reached the end; the pose is not updated this tick
	Completed
)

func (r Result) String() string {
	switch r {
	case Moving:
		return "moving"
	case Stalled:
		return "stalled"
	default:
		return "completed"
	}
}

// Sample is an agent pose on its curve
type Sample struct {
	Position mgl64.Vec3
	Tangent  mgl64.Vec3
	Progress float64
}

// Advance moves the agent speed units along its curve
// Progress grows by speed/length so ground speed is independent of curve length
func Advance(a *Agent) (Sample, Result) {
	if a.Curve == nil {
		return Sample{}, Stalled
	}
	length := a.Curve.Length()
	if length <= parameter.CurveMinLength || math.IsNaN(length) {
		return Sample{}, Stalled
	}

	a.Progress += a.Speed / length
	if a.Progress >= 1 {
		return Sample{Progress: 1}, Completed
	}
	return Pose(a), Moving
}

// Pose samples the agent's current position without advancing
func Pose(a *Agent) Sample {
	if a.Curve == nil {
		return Sample{}
	}
	return Sample{
		Position: a.Curve.PointAt(a.Progress),
		Tangent:  a.Curve.TangentAt(a.Progress),
		Progress: a.Progress,
	}
}

// Lookahead returns the curve point dist units ahead of the agent, clamped to the curve end
func Lookahead(a *Agent, dist float64) mgl64.Vec3 {
	if a.Curve == nil {
		return mgl64.Vec3{}
	}
	length := a.Curve.Length()
	if length <= 0 {
		return a.Curve.PointAt(1)
	}
	return a.Curve.PointAt(math.Min(a.Progress+dist/length, 1))
}
