package world

import (
	"github.com/lixenwraith/ringflight/engine"
	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/status"
)

// Option configures a World at construction
type Option func(*World)

// WithClock replaces the wall clock used for look-at phases and debouncing
func WithClock(c engine.Clock) Option {
	return func(w *World) { w.clock = c }
}

// WithSeed fixes the random source; 0 keeps the configured seed
func WithSeed(seed uint64) Option {
	return func(w *World) {
		if seed != 0 {
			w.seed = seed
		}
	}
}

// WithQueue shares an inbound control queue with producers created elsewhere
func WithQueue(q *event.EventQueue) Option {
	return func(w *World) { w.inbound = q }
}

// WithRegistry publishes metrics into reg
func WithRegistry(reg *status.Registry) Option {
	return func(w *World) { w.reg = reg }
}

// WithListener receives every outbound event on the tick goroutine; must not block
func WithListener(fn func(event.GameEvent)) Option {
	return func(w *World) { w.listeners = append(w.listeners, fn) }
}
