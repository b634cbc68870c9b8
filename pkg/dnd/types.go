package dnd

import (
	"strconv"

	"github.com/vango-dev/dragkit/pkg/layout"
)

// ID identifies a draggable. It must be unique among draggables registered
// with one Context at the same time and must not change after mount.
type ID string

// IntID formats a numeric identity as an ID.
func IntID(n int) ID {
	return ID(strconv.Itoa(n))
}

// Transform is the drag offset of a draggable from its rest position.
type Transform = layout.Transform

// Event is what nodes deliver to listeners.
type Event struct {
	// Type is the event name without the "on" prefix ("pointerdown").
	Type string `json:"type"`

	// X and Y are page coordinates for pointer events.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// Button is the pointer button for pointer events, 0 for primary.
	Button int `json:"button,omitempty"`

	// Key is the KeyboardEvent.key value for keyboard events.
	Key string `json:"key,omitempty"`

	defaultPrevented bool
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Handler handles a node event.
type Handler func(e *Event)

// ListenerID identifies one attached listener on a node. Go functions are
// not comparable, so removal goes through the ID returned on attach.
type ListenerID uint64

// Node is the host element a draggable is applied to. Implementations must
// be comparable (pointer types); the binding compares nodes with ==.
type Node interface {
	AddEventListener(event string, h Handler) ListenerID
	RemoveEventListener(event string, id ListenerID)
	SetStyleProperty(name, value string)
}

// Activators maps event names to handlers. The raw form is keyed by event
// name ("pointerdown"); the handler form by "on" + event name
// ("onpointerdown").
type Activators map[string]Handler

// HandlerKey converts an event name into its handler-form key.
func HandlerKey(event string) string {
	return "on" + event
}

// Registration is what a draggable hands to its Context on mount.
type Registration struct {
	ID ID

	// Node is borrowed; the host owns it. It is nil when nothing was
	// applied or referenced before mount.
	Node Node

	// Layout is measured once, at mount.
	Layout layout.Layout

	// Data is the caller's payload, carried opaquely.
	Data any
}
