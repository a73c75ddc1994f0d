package world

import (
	"sync/atomic"

	"github.com/lixenwraith/ringflight/status"
)

// metrics caches registry pointers so the tick path writes atomics directly
type metrics struct {
	ticks       *atomic.Int64
	generations *atomic.Int64
	rings       *atomic.Int64
	drones      *atomic.Int64
	remaining   *atomic.Int64
	rounds      *atomic.Int64
	fireActive  *atomic.Int64
	fireEnabled *atomic.Int64
	fireDropped *atomic.Int64
	night       *atomic.Bool
	stalled     *atomic.Bool
	progress    *status.AtomicFloat
	message     *status.AtomicString
	look        *status.AtomicString
}

func newMetrics(reg *status.Registry) metrics {
	return metrics{
		ticks:       reg.Ints.Get(status.KeyTicks),
		generations: reg.Ints.Get(status.KeyGenerations),
		rings:       reg.Ints.Get(status.KeyRings),
		drones:      reg.Ints.Get(status.KeyDrones),
		remaining:   reg.Ints.Get(status.KeyRemaining),
		rounds:      reg.Ints.Get(status.KeyRounds),
		fireActive:  reg.Ints.Get(status.KeyFireActive),
		fireEnabled: reg.Ints.Get(status.KeyFireEnabled),
		fireDropped: reg.Ints.Get(status.KeyFireDropped),
		night:       reg.Bools.Get(status.KeyNight),
		stalled:     reg.Bools.Get(status.KeyStalled),
		progress:    reg.Floats.Get(status.KeyProgress),
		message:     reg.Strings.Get(status.KeyMessage),
		look:        reg.Strings.Get(status.KeyLookState),
	}
}

func (w *World) updateMetrics() {
	w.stats.ticks.Store(int64(w.tick))
	if w.player != nil {
		w.stats.progress.Set(w.player.Progress)
	}
	w.stats.look.Store(w.look.State().String())

	active, enabled, dropped := w.fires.Stats()
	w.stats.fireActive.Store(int64(active))
	w.stats.fireEnabled.Store(int64(enabled))
	w.stats.fireDropped.Store(int64(dropped))
}
