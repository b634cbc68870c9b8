package protocol

import (
	"encoding/json"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/dom"
)

// Message kinds.
const (
	KindHello   = "hello"
	KindPatches = "patches"
	KindError   = "error"
)

// Patch sets one style property on one element.
type Patch struct {
	Target   string `json:"target"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

// PatchFromStyleWrite converts a recorded style write.
func PatchFromStyleWrite(w dom.StyleWrite) Patch {
	return Patch{Target: w.Target, Property: w.Property, Value: w.Value}
}

// Card describes a draggable the client should render.
type Card struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ErrorMessage reports a rejected event.
type ErrorMessage struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`

	// Fatal means the server is closing the connection.
	Fatal bool `json:"fatal,omitempty"`
}

// Message is a server to client frame.
type Message struct {
	Kind    string        `json:"kind"`
	Seq     uint64        `json:"seq,omitempty"`
	Session string        `json:"session,omitempty"`
	Cards   []Card        `json:"cards,omitempty"`
	Patches []Patch       `json:"patches,omitempty"`
	Error   *ErrorMessage `json:"error,omitempty"`
}

// Hello greets a new session.
func Hello(session string, cards []Card) *Message {
	return &Message{Kind: KindHello, Session: session, Cards: cards}
}

// Patches wraps the patches caused by event seq.
func Patches(seq uint64, patches []Patch) *Message {
	return &Message{Kind: KindPatches, Seq: seq, Patches: patches}
}

// ErrorFor converts err into an error message for event seq. Coded errors
// keep their code.
func ErrorFor(seq uint64, err error, fatal bool) *Message {
	em := &ErrorMessage{Message: err.Error(), Fatal: fatal}
	if code := errors.CodeOf(err); code != "" {
		em.Code = code
		if tmpl, ok := errors.GetTemplate(code); ok {
			em.Message = tmpl.Message
		}
	}
	return &Message{Kind: KindError, Seq: seq, Error: em}
}

// EncodeMessage encodes m as a JSON frame.
func EncodeMessage(m *Message) ([]byte, error) {
	return json.Marshal(m)
}

// DecodeMessage parses a server frame. Clients and tests use it.
func DecodeMessage(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("D061").Wrap(err)
	}
	return &m, nil
}
