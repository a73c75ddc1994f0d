package ring

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/vmath"
)

// State is a ring's progress along the current path
type State uint8

const (
	Inactive State = iota
	Active
	Passed
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Passed:
		return "passed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var (
	colorInactive         = mustHex(parameter.ColorInactive)
	colorActive           = mustHex(parameter.ColorActive)
	colorPassed           = mustHex(parameter.ColorPassed)
	colorInactiveEmissive = mustHex(parameter.ColorInactiveEmissive)
	colorActiveEmissive   = mustHex(parameter.ColorActiveEmissive)
	colorPassedEmissive   = mustHex(parameter.ColorPassedEmissive)
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("ring: bad color constant %q: %v", s, err))
	}
	return c
}

// Color returns the display color for the state
func (s State) Color() colorful.Color {
	switch s {
	case Active:
		return colorActive
	case Passed:
		return colorPassed
	default:
		return colorInactive
	}
}

// Emissive returns the glow color for the state
func (s State) Emissive() colorful.Color {
	switch s {
	case Active:
		return colorActiveEmissive
	case Passed:
		return colorPassedEmissive
	default:
		return colorInactiveEmissive
	}
}

// Ring is a circular gate standing on a post
type Ring struct {
	ID         int
	Center     mgl64.Vec3
	Normal     mgl64.Vec3 // unit, horizontal
	Yaw        float64
	Radius     float64
	PostHeight float64
	State      State
}

// New builds a ring of standard radius standing on a post of height h at (x, z)
func New(id int, x, z, h, yaw float64) Ring {
	return Ring{
		ID:         id,
		Center:     mgl64.Vec3{x, h + parameter.RingRadius + parameter.RingTube, z},
		Normal:     vmath.YawNormal(yaw),
		Yaw:        yaw,
		Radius:     parameter.RingRadius,
		PostHeight: h,
		State:      Inactive,
	}
}

// Base returns the ground position of the ring's post
func (r *Ring) Base() mgl64.Vec3 {
	return mgl64.Vec3{r.Center[0], 0, r.Center[2]}
}
