package effect

import (
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/vmath"
)

// Bank owns one Fire per ring of a field and switches them by ring id
type Bank struct {
	fires []*Fire
}

// NewBank builds a fire for every ring in field
func NewBank(field *ring.Field, capacity int) *Bank {
	b := &Bank{fires: make([]*Fire, 0, field.Len())}
	rings := field.Rings()
	for i := range rings {
		b.fires = append(b.fires, NewFire(&rings[i], capacity))
	}
	return b
}

// Get returns the fire for ring id
func (b *Bank) Get(id int) (*Fire, bool) {
	if b == nil || id < 0 || id >= len(b.fires) {
		return nil, false
	}
	return b.fires[id], true
}

// Enable starts the fire on ring id
func (b *Bank) Enable(id int) {
	if f, ok := b.Get(id); ok {
		f.Enable()
	}
}

// Disable hard-stops the fire on ring id
func (b *Bank) Disable(id int) {
	if f, ok := b.Get(id); ok {
		f.Disable()
	}
}

// Drain stops spawning on ring id, live particles finish their lives
func (b *Bank) Drain(id int) {
	if f, ok := b.Get(id); ok {
		f.Drain()
	}
}

// SetNight switches spawn rate and glow on every fire
func (b *Bank) SetNight(night bool) {
	for _, f := range b.Fires() {
		f.SetNight(night)
	}
}

// Tick advances every fire, including drained ones still burning out
func (b *Bank) Tick(dt float64, rng *vmath.FastRand) {
	for _, f := range b.Fires() {
		f.Tick(dt, rng)
	}
}

// Release tears down every fire; the bank is unusable afterwards
func (b *Bank) Release() {
	if b == nil {
		return
	}
	for _, f := range b.fires {
		f.Release()
	}
	b.fires = nil
}

// Fires returns every fire in ring order
func (b *Bank) Fires() []*Fire {
	if b == nil {
		return nil
	}
	return b.fires
}

// Stats returns live particle count, enabled fire count and total dropped spawns
func (b *Bank) Stats() (active, enabled int, dropped uint64) {
	for _, f := range b.Fires() {
		active += f.Active()
		if f.Enabled() {
			enabled++
		}
		dropped += f.Dropped()
	}
	return active, enabled, dropped
}
