package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickRate is the default simulation rate in ticks per second
	TickRate = 60

	// TickInterval is the simulation step (~60 ticks per second)
	TickInterval = time.Second / TickRate

	// MaxTickDelta caps the delta-time handed to components after a stalled frame
	MaxTickDelta = 250 * time.Millisecond

	// BroadcastInterval is the snapshot push period for network clients
	BroadcastInterval = 50 * time.Millisecond

	// RegenerateDebounce coalesces rapid world-regeneration requests
	RegenerateDebounce = 500 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
