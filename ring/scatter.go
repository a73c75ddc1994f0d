package ring

import (
	"math"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/vmath"
)

// ScatterConfig controls procedural ring placement
type ScatterConfig struct {
	Count       int
	TerrainSize float64
	MaxHeight   float64 // highest post top, at least parameter.MinPostHeight
	MinSpacing  float64 // horizontal distance between posts
}

// Scatter places cfg.Count rings on a disc of radius 0.45·TerrainSize around the origin
// Each ring retries placement until it clears MinSpacing; when attempts run out the last candidate is kept
func Scatter(cfg ScatterConfig, rng *vmath.FastRand) []Ring {
	if cfg.Count <= 0 {
		return nil
	}

	maxRadius := cfg.TerrainSize * parameter.ScatterRadiusFraction
	minSq := cfg.MinSpacing * cfg.MinSpacing
	maxHeight := math.Max(cfg.MaxHeight, parameter.MinPostHeight)

	rings := make([]Ring, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		var x, z float64
		for attempt := 0; attempt < parameter.ScatterAttempts; attempt++ {
			radius := rng.Float64() * maxRadius
			sin, cos := math.Sincos(rng.Angle())
			x, z = cos*radius, sin*radius
			if spaced(rings, x, z, minSq) {
				break
			}
		}

		h := rng.Range(parameter.MinPostHeight, maxHeight)
		rings = append(rings, New(i, x, z, h, rng.Angle()))
	}
	return rings
}

func spaced(rings []Ring, x, z, minSq float64) bool {
	for i := range rings {
		dx := x - rings[i].Center[0]
		dz := z - rings[i].Center[2]
		if dx*dx+dz*dz < minSq {
			return false
		}
	}
	return true
}
