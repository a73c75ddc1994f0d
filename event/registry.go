package event

import (
	"reflect"
	"strings"
	"sync"
)

var (
	registryOnce  sync.Once
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
)

// registerType maps a name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct, nil if the event has no payload
func registerType(name string, et EventType, payloadInstance any) {
	key := strings.ToLower(name)
	nameToType[key] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

func initRegistry() {
	registryOnce.Do(func() {
		// Control
		registerType("night", EventNightMode, &NightModePayload{})
		registerType("regenerate", EventRegenerateRequest, nil)
		registerType("tuning", EventTuning, &TuningPayload{})

		// World
		registerType("world_generated", EventWorldGenerated, &WorldGeneratedPayload{})
		registerType("round_started", EventRoundStarted, &RoundPayload{})
		registerType("ring_passed", EventRingPassed, &RingPassedPayload{})
		registerType("round_complete", EventRoundComplete, &RoundPayload{})
		registerType("insufficient_targets", EventInsufficientTargets, nil)
	})
}

// GetEventType returns the EventType for a case-insensitive name
func GetEventType(name string) (EventType, bool) {
	initRegistry()
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}

// GetEventName returns the registered name for an EventType
func GetEventName(et EventType) string {
	initRegistry()
	return typeToName[et]
}

// IsControl reports whether et may be sent by an external client
func IsControl(et EventType) bool {
	return et > EventNone && et < EventWorldGenerated
}

// NewPayloadStruct returns a pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	initRegistry()
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}
