package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventNone is the zero value, never emitted
	EventNone EventType = iota

	// === Control Event (inbound, any goroutine -> tick) ===

	// EventNightMode switches the day/night theme
	// Trigger: terminal key, HTTP theme endpoint, websocket control message
	// Consumer: World | Payload: *NightModePayload
	EventNightMode

	// EventRegenerateRequest asks for a new world, debounced
	// Trigger: terminal key, HTTP regenerate endpoint, websocket control message, tuning change
	// Consumer: World | Payload: nil
	EventRegenerateRequest

	// EventTuning changes generation or flight parameters
	// Flight fields apply immediately; field-shape fields schedule a debounced regenerate
	// Consumer: World | Payload: *TuningPayload
	EventTuning

	// === World Event (outbound, emitted by tick) ===

	// EventWorldGenerated signals a fresh ring field
	// Consumer: network feed, audio | Payload: *WorldGeneratedPayload
	EventWorldGenerated EventType = iota + 100

	// EventRoundStarted signals a new player route
	// Consumer: network feed | Payload: *RoundPayload
	EventRoundStarted

	// EventRingPassed signals the player crossed its Active ring
	// Consumer: audio, network feed | Payload: *RingPassedPayload
	EventRingPassed

	// EventRoundComplete signals the last target of the route was passed, once per route
	// Consumer: audio, network feed | Payload: *RoundPayload
	EventRoundComplete

	// EventInsufficientTargets signals a route could not be planned
	// Consumer: network feed | Payload: nil
	EventInsufficientTargets
)

// GameEvent represents a single event with typed payload
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    uint64
}

// String returns the registered name of the event type
func (et EventType) String() string {
	if name := GetEventName(et); name != "" {
		return name
	}
	return "EventUnknown"
}
