package dom

import (
	"sort"
	"sync"

	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/layout"
)

// RootID is the id of a document's root element.
const RootID = "document"

// Document holds elements by id plus a root element that receives every
// dispatched event after its target.
type Document struct {
	root *Element

	mu       sync.RWMutex
	elements map[string]*Element
	onWrite  func(StyleWrite)
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		root:     NewElement(RootID, layout.Rect{}),
		elements: make(map[string]*Element),
	}
}

// Root returns the document root. Sensors attach move/up listeners here.
func (d *Document) Root() *Element {
	return d.root
}

// Create adds an element. An existing element with the same id is replaced.
func (d *Document) Create(id string, rect layout.Rect) *Element {
	el := NewElement(id, rect)

	d.mu.Lock()
	d.elements[id] = el
	onWrite := d.onWrite
	d.mu.Unlock()

	if onWrite != nil {
		el.OnStyleWrite(onWrite)
	}
	return el
}

// Get returns the element with id, or nil.
func (d *Document) Get(id string) *Element {
	if id == RootID {
		return d.root
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.elements[id]
}

// Remove deletes the element with id.
func (d *Document) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, id)
}

// IDs returns the sorted ids of all elements except the root.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.elements))
	for id := range d.elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OnStyleWrite installs fn on every current and future element.
func (d *Document) OnStyleWrite(fn func(StyleWrite)) {
	d.mu.Lock()
	d.onWrite = fn
	elements := make([]*Element, 0, len(d.elements))
	for _, el := range d.elements {
		elements = append(elements, el)
	}
	d.mu.Unlock()

	for _, el := range elements {
		el.OnStyleWrite(fn)
	}
}

// Dispatch delivers ev to the target element and then to the root. An
// unknown target only reaches the root. It reports whether the target
// exists.
func (d *Document) Dispatch(target string, ev *dnd.Event) bool {
	el := d.Get(target)
	if el != nil && el != d.root {
		el.Dispatch(ev)
	}
	d.root.Dispatch(ev)
	return el != nil
}
