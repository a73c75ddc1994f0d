package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/ringflight/event"
)

// Codec selects the frame encoding negotiated per connection
type Codec uint8

const (
	CodecJSON    Codec = iota // text frames
	CodecMsgpack              // binary frames
)

// ParseCodec maps the ws query parameter to a codec, JSON when empty
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "", "json":
		return CodecJSON, nil
	case "msgpack":
		return CodecMsgpack, nil
	default:
		return CodecJSON, fmt.Errorf("unknown codec %q", s)
	}
}

func (c Codec) String() string {
	if c == CodecMsgpack {
		return "msgpack"
	}
	return "json"
}

// messageType returns the websocket frame type for the codec
func (c Codec) messageType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Frame types sent to clients
const (
	FrameSnapshot = "snapshot"
	FrameEvent    = "event"
	FrameError    = "error"
)

// Frame is the envelope of every outbound message
type Frame struct {
	Type    string `json:"type" msgpack:"type"`
	Name    string `json:"name,omitempty" msgpack:"name,omitempty"`
	Tick    uint64 `json:"tick" msgpack:"tick"`
	Payload any    `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// EventFrame wraps a world event for the feed
func EventFrame(ev event.GameEvent) Frame {
	return Frame{Type: FrameEvent, Name: ev.Type.String(), Tick: ev.Tick, Payload: ev.Payload}
}

// Encode serializes f with codec c
func (c Codec) Encode(f *Frame) ([]byte, error) {
	if c == CodecMsgpack {
		return msgpack.Marshal(f)
	}
	return json.Marshal(f)
}

var (
	ErrUnknownControl = errors.New("unknown control message")
	ErrNotControl     = errors.New("event type is not accepted from clients")
)

type jsonControl struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type msgpackControl struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// DecodeControl parses an inbound control message into a world event
// Only control event names are accepted; payload shape follows the event registry
func (c Codec) DecodeControl(data []byte) (event.GameEvent, error) {
	var name string
	var raw []byte
	if c == CodecMsgpack {
		var m msgpackControl
		if err := msgpack.Unmarshal(data, &m); err != nil {
			return event.GameEvent{}, fmt.Errorf("decode control: %w", err)
		}
		name, raw = m.Type, m.Payload
	} else {
		var m jsonControl
		if err := json.Unmarshal(data, &m); err != nil {
			return event.GameEvent{}, fmt.Errorf("decode control: %w", err)
		}
		name, raw = m.Type, m.Payload
	}

	et, ok := event.GetEventType(name)
	if !ok {
		return event.GameEvent{}, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	if !event.IsControl(et) {
		return event.GameEvent{}, fmt.Errorf("%w: %q", ErrNotControl, name)
	}

	ev := event.GameEvent{Type: et}
	payload := event.NewPayloadStruct(et)
	if payload == nil {
		return ev, nil
	}
	if len(raw) == 0 {
		return event.GameEvent{}, fmt.Errorf("decode control %q: missing payload", name)
	}
	var err error
	if c == CodecMsgpack {
		err = msgpack.Unmarshal(raw, payload)
	} else {
		err = json.Unmarshal(raw, payload)
	}
	if err != nil {
		return event.GameEvent{}, fmt.Errorf("decode control %q payload: %w", name, err)
	}
	ev.Payload = payload
	return ev, nil
}
