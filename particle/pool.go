package particle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/vmath"
)

// Particle is one pooled slot
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Age      float64 // seconds
	MaxLife  float64 // seconds
	Active   bool
}

// Life returns the normalized age in [0,1]
func (p *Particle) Life() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	return vmath.Clamp01(p.Age / p.MaxLife)
}

// Dynamics are the per-second forces applied on every tick
type Dynamics struct {
	Gravity    float64 // downward acceleration
	Turbulence float64 // lateral random acceleration amplitude
	Damping    float64 // velocity retention per tick, 1 disables
}

// Pool is a fixed-capacity particle arena
// Slots are allocated once; free slots are tracked on a stack so Spawn is O(1)
type Pool struct {
	slots  []Particle
	free   []int
	active int
}

// NewPool allocates capacity slots, all inactive
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool{
		slots: make([]Particle, capacity),
		free:  make([]int, 0, capacity),
	}
	p.resetFree()
	return p
}

// resetFree refills the stack so the lowest index is reused first
func (p *Pool) resetFree() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
}

// Spawn activates a free slot initialized with init
// Returns false and drops the request when the pool is exhausted
func (p *Pool) Spawn(init Particle) (int, bool) {
	n := len(p.free)
	if n == 0 {
		return -1, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]

	init.Active = true
	init.Age = 0
	p.slots[idx] = init
	p.active++
	return idx, true
}

// Tick integrates every active particle by dt seconds and retires expired ones
// Age is advanced first so a particle never renders past its life
func (p *Pool) Tick(dt float64, dyn Dynamics, rng *vmath.FastRand) {
	if dt <= 0 {
		return
	}
	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}

		s.Age += dt
		if s.Age >= s.MaxLife {
			p.retire(i)
			continue
		}

		s.Position = s.Position.Add(s.Velocity.Mul(dt))
		s.Velocity[1] -= dyn.Gravity * dt
		if dyn.Turbulence != 0 && rng != nil {
			s.Velocity[0] += rng.Jitter(dyn.Turbulence) * dt
			s.Velocity[2] += rng.Jitter(dyn.Turbulence) * dt
		}
		if dyn.Damping > 0 {
			s.Velocity = s.Velocity.Mul(dyn.Damping)
		}
	}
}

func (p *Pool) retire(i int) {
	p.slots[i] = Particle{}
	p.free = append(p.free, i)
	p.active--
}

// Clear deactivates every slot immediately
func (p *Pool) Clear() {
	for i := range p.slots {
		p.slots[i] = Particle{}
	}
	p.active = 0
	p.resetFree()
}

// Active returns the number of live particles
func (p *Pool) Active() int {
	return p.active
}

// Cap returns the fixed slot count
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Each calls fn for every active particle in slot order
func (p *Pool) Each(fn func(idx int, pt *Particle)) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(i, &p.slots[i])
		}
	}
}
