package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/dnd"
)

// Event types the server dispatches.
const (
	EventPointerDown = "pointerdown"
	EventPointerMove = "pointermove"
	EventPointerUp   = "pointerup"
	EventKeyDown     = "keydown"
)

var knownEvents = map[string]bool{
	EventPointerDown: true,
	EventPointerMove: true,
	EventPointerUp:   true,
	EventKeyDown:     true,
}

// IsKnownEvent reports whether the server dispatches events of type t.
func IsKnownEvent(t string) bool {
	return knownEvents[t]
}

// Event is a client interaction.
type Event struct {
	Seq    uint64  `json:"seq"`
	Type   string  `json:"type"`
	Target string  `json:"target"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button int     `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
}

// DOMEvent converts e to the event value handed to listeners.
func (e *Event) DOMEvent() *dnd.Event {
	return &dnd.Event{
		Type:   e.Type,
		X:      e.X,
		Y:      e.Y,
		Button: e.Button,
		Key:    e.Key,
	}
}

// EncodeEvent encodes e as a JSON frame.
func EncodeEvent(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent parses and validates one event frame. Failures are coded
// *errors.Error values: D061 for malformed frames, D062 for unknown types.
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) > MaxFrameSize {
		return nil, errors.New("D061").
			WithDetailf("frame is %d bytes; the limit is %d", len(data), MaxFrameSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var e Event
	if err := dec.Decode(&e); err != nil {
		return nil, errors.New("D061").Wrap(err)
	}
	if dec.More() {
		return nil, errors.New("D061").WithDetail("frame holds more than one JSON value")
	}

	if !IsKnownEvent(e.Type) {
		return nil, errors.New("D062").WithDetailf("event type %q is not dispatched", e.Type)
	}
	if e.Target == "" || len(e.Target) > MaxTargetLength {
		return nil, errors.New("D061").
			WithDetail(fmt.Sprintf("target must be 1-%d bytes", MaxTargetLength))
	}
	if len(e.Key) > MaxKeyLength {
		return nil, errors.New("D061").
			WithDetail(fmt.Sprintf("key must be at most %d bytes", MaxKeyLength))
	}
	return &e, nil
}
