package dom

import (
	"sort"
	"sync"

	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/layout"
)

// StyleWrite records one SetStyleProperty call.
type StyleWrite struct {
	Target   string `json:"target"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

type listener struct {
	id dnd.ListenerID
	fn dnd.Handler
}

// Element is an in-memory node. It implements dnd.Node and
// layout.Measurable.
type Element struct {
	id string

	mu        sync.Mutex
	rect      layout.Rect
	listeners map[string][]listener
	nextID    dnd.ListenerID
	style     map[string]string
	writes    []StyleWrite
	onWrite   func(StyleWrite)
}

// NewElement creates an element with the given id and rest box.
func NewElement(id string, rect layout.Rect) *Element {
	return &Element{
		id:        id,
		rect:      rect,
		listeners: make(map[string][]listener),
		style:     make(map[string]string),
	}
}

// ID returns the element id.
func (e *Element) ID() string {
	return e.id
}

// SetRect moves or resizes the element's rest box.
func (e *Element) SetRect(r layout.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rect = r
}

// BoundingRect returns the rest box shifted by the inline translate, the
// way a browser reports a transformed element.
func (e *Element) BoundingRect() layout.Rect {
	e.mu.Lock()
	r := e.rect
	transform := e.style["transform"]
	e.mu.Unlock()

	if t, ok := layout.ParseTranslate(transform); ok {
		r.X += t.X
		r.Y += t.Y
	}
	return r
}

// StyleProperty returns an inline style property, "" when unset.
func (e *Element) StyleProperty(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style[name]
}

// SetStyleProperty sets an inline style property and journals the write.
// Writes of an unchanged value are journaled too.
func (e *Element) SetStyleProperty(name, value string) {
	w := StyleWrite{Target: e.id, Property: name, Value: value}

	e.mu.Lock()
	e.style[name] = value
	e.writes = append(e.writes, w)
	onWrite := e.onWrite
	e.mu.Unlock()

	if onWrite != nil {
		onWrite(w)
	}
}

// StyleWrites returns a copy of the write journal.
func (e *Element) StyleWrites() []StyleWrite {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]StyleWrite(nil), e.writes...)
}

// ResetStyleWrites clears the write journal, keeping the current style.
func (e *Element) ResetStyleWrites() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.writes = nil
}

// OnStyleWrite installs a callback invoked after every style write.
func (e *Element) OnStyleWrite(fn func(StyleWrite)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWrite = fn
}

// AddEventListener attaches h for event and returns its id.
func (e *Element) AddEventListener(event string, h dnd.Handler) dnd.ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.listeners[event] = append(e.listeners[event], listener{id: id, fn: h})
	return id
}

// RemoveEventListener detaches the listener with id. Unknown ids are
// ignored.
func (e *Element) RemoveEventListener(event string, id dnd.ListenerID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ls := e.listeners[event]
	for i, l := range ls {
		if l.id == id {
			ls = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(ls) == 0 {
		delete(e.listeners, event)
		return
	}
	e.listeners[event] = ls
}

// ListenerCount returns the number of listeners attached for event.
func (e *Element) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

// Events returns the sorted event names that have listeners attached.
func (e *Element) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	events := make([]string, 0, len(e.listeners))
	for event := range e.listeners {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// Dispatch delivers ev to the listeners for ev.Type in attach order.
// Listeners added or removed during delivery take effect on the next
// dispatch.
func (e *Element) Dispatch(ev *dnd.Event) {
	e.mu.Lock()
	ls := append([]listener(nil), e.listeners[ev.Type]...)
	e.mu.Unlock()

	for _, l := range ls {
		l.fn(ev)
	}
}

var (
	_ dnd.Node          = (*Element)(nil)
	_ layout.Measurable = (*Element)(nil)
)
