package effect

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/ring"
)

// BeaconLook is the light column drawn above a ring at night
type BeaconLook struct {
	Visible bool
	Color   colorful.Color
	Opacity float64
	Scale   float64
}

// Beacon derives the beacon appearance from ring state; hidden by day
func Beacon(s ring.State, night bool) BeaconLook {
	if !night {
		return BeaconLook{}
	}
	look := BeaconLook{Visible: true, Color: s.Color()}
	switch s {
	case ring.Active:
		look.Opacity, look.Scale = parameter.BeaconOpacityActive, parameter.BeaconScaleActive
	case ring.Passed:
		look.Opacity, look.Scale = parameter.BeaconOpacityPassed, parameter.BeaconScalePassed
	default:
		look.Opacity, look.Scale = parameter.BeaconOpacityInactive, parameter.BeaconScaleInactive
	}
	return look
}
