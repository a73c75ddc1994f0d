package effect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/particle"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/vmath"
)

var fireDynamics = particle.Dynamics{
	Gravity:    parameter.FireGravity,
	Turbulence: parameter.FireTurbulence,
	Damping:    parameter.FireDamping,
}

// Fire is the flame ring burning around one target ring
type Fire struct {
	ringID int
	center mgl64.Vec3
	yaw    float64
	radius float64

	pool     *particle.Pool
	enabled  bool
	night    bool
	released bool

	dropped uint64
}

// NewFire binds a particle pool of capacity slots to r
func NewFire(r *ring.Ring, capacity int) *Fire {
	return &Fire{
		ringID: r.ID,
		center: r.Center,
		yaw:    r.Yaw,
		radius: r.Radius,
		pool:   particle.NewPool(capacity),
	}
}

// RingID returns the ring this fire burns on
func (f *Fire) RingID() int {
	return f.ringID
}

// Enable starts spawning; no-op after Release
func (f *Fire) Enable() {
	if f.released {
		return
	}
	f.enabled = true
}

// Drain stops spawning and lets live particles finish their life
func (f *Fire) Drain() {
	f.enabled = false
}

// Disable stops spawning and hides every particle immediately
func (f *Fire) Disable() {
	f.enabled = false
	f.pool.Clear()
}

// Release tears the fire down before its ring is discarded
func (f *Fire) Release() {
	f.Disable()
	f.released = true
}

func (f *Fire) SetNight(night bool) {
	f.night = night
}

func (f *Fire) Enabled() bool {
	return f.enabled
}

// Active returns the number of live particles
func (f *Fire) Active() int {
	return f.pool.Active()
}

// Dropped returns spawn requests lost to a full pool
func (f *Fire) Dropped() uint64 {
	return f.dropped
}

// SpawnRate returns particles requested per tick for the current mode
func (f *Fire) SpawnRate() int {
	if f.night {
		return parameter.FireSpawnNight
	}
	return parameter.FireSpawnDay
}

// Tick spawns while enabled then advances every particle by dt seconds
func (f *Fire) Tick(dt float64, rng *vmath.FastRand) {
	if f.enabled {
		for i := f.SpawnRate(); i > 0; i-- {
			if _, ok := f.pool.Spawn(f.emit(rng)); !ok {
				f.dropped++
			}
		}
	}
	f.pool.Tick(dt, fireDynamics, rng)
}

// emit builds a particle on the ring circumference moving up and outward
func (f *Fire) emit(rng *vmath.FastRand) particle.Particle {
	sin, cos := math.Sincos(rng.Angle())
	local := mgl64.Vec3{cos * f.radius, sin * f.radius, rng.Jitter(parameter.FireThickness)}
	offset := vmath.RotateYaw(local, f.yaw)

	spread := rng.Range(parameter.FireSpreadMin, parameter.FireSpreadMax)
	vel := mgl64.Vec3{
		rng.Jitter(spread) + offset[0]*parameter.FireOutward,
		rng.Range(parameter.FireRiseMin, parameter.FireRiseMax),
		rng.Jitter(spread) + offset[2]*parameter.FireOutward,
	}

	return particle.Particle{
		Position: f.center.Add(offset),
		Velocity: vel,
		MaxLife:  rng.Range(parameter.FireLifeMin, parameter.FireLifeMax),
	}
}

// Each visits every live particle with its appearance
func (f *Fire) Each(fn func(p *particle.Particle, look FlameLook)) {
	f.pool.Each(func(_ int, p *particle.Particle) {
		fn(p, Appearance(p.Life(), f.night))
	})
}

// FlameLook is the rendered appearance of a particle
type FlameLook struct {
	Color             colorful.Color
	Emissive          colorful.Color
	EmissiveIntensity float64
	Opacity           float64
	Scale             float64
}

// Appearance maps life fraction p∈[0,1] to flame color, fading white-yellow through orange and red to black
func Appearance(p float64, night bool) FlameLook {
	p = vmath.Clamp01(p)

	var h, s, l, glow float64
	switch {
	case p < 0.2:
		h, s, l, glow = 0.15, 1, 0.9-p*2, 1
	case p < 0.5:
		t := (p - 0.2) / 0.3
		h, s, l, glow = 0.08-t*0.05, 1, 0.6-t*0.2, 1
	case p < 0.8:
		t := (p - 0.5) / 0.3
		h, s, l, glow = 0, 1-t*0.3, 0.4-t*0.2, 0.8
	default:
		t := (p - 0.8) / 0.2
		h, s, l, glow = 0, 0.7-t*0.7, 0.2-t*0.2, 0.3
	}

	c := colorful.Hsl(h*360, s, math.Max(l, 0))
	intensity := parameter.FireEmissiveDay
	if night {
		intensity = parameter.FireEmissiveNight
	}

	return FlameLook{
		Color:             c,
		Emissive:          colorful.Color{R: c.R * glow, G: c.G * glow, B: c.B * glow},
		EmissiveIntensity: intensity,
		Opacity:           1 - p*p,
		Scale:             1 - p*0.5,
	}
}
