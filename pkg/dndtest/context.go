package dndtest

import (
	"sync"

	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/reactive"
)

// Op names a call recorded by Context.
type Op string

const (
	OpAdd        Op = "add"
	OpRemove     Op = "remove"
	OpActivators Op = "activators"
)

// Call is one recorded call.
type Call struct {
	Op           Op
	ID           dnd.ID
	Registration dnd.Registration
	AsHandlers   bool
}

// Activation records a fired activator.
type Activation struct {
	Event string
	ID    dnd.ID
}

type active struct {
	id dnd.ID
	ok bool
}

// Context is a recording dnd.Context backed by signals.
type Context struct {
	active     *reactive.Signal[active]
	transforms *reactive.Signal[map[dnd.ID]dnd.Transform]
	overlay    *reactive.Signal[bool]
	events     *reactive.Signal[[]string]

	mu          sync.Mutex
	calls       []Call
	activations []Activation
}

// NewContext returns an empty Context with no activators.
func NewContext() *Context {
	return &Context{
		active:     reactive.NewSignal(active{}),
		transforms: reactive.NewSignal(map[dnd.ID]dnd.Transform{}),
		overlay:    reactive.NewSignal(false),
		events:     reactive.NewSignal[[]string](nil),
	}
}

// SetActive makes id the active draggable.
func (c *Context) SetActive(id dnd.ID) {
	c.active.Set(active{id: id, ok: true})
}

// ClearActive ends the fake drag session.
func (c *Context) ClearActive() {
	c.active.Set(active{})
}

// SetTransform stores t for id.
func (c *Context) SetTransform(id dnd.ID, t dnd.Transform) {
	c.transforms.Update(func(m map[dnd.ID]dnd.Transform) map[dnd.ID]dnd.Transform {
		next := make(map[dnd.ID]dnd.Transform, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[id] = t
		return next
	})
}

// DeleteTransform removes the stored transform for id.
func (c *Context) DeleteTransform(id dnd.ID) {
	c.transforms.Update(func(m map[dnd.ID]dnd.Transform) map[dnd.ID]dnd.Transform {
		next := make(map[dnd.ID]dnd.Transform, len(m))
		for k, v := range m {
			if k != id {
				next[k] = v
			}
		}
		return next
	})
}

// SetUsingDragOverlay toggles overlay mode.
func (c *Context) SetUsingDragOverlay(on bool) {
	c.overlay.Set(on)
}

// SetActivatorEvents replaces the set of events activators are built for.
func (c *Context) SetActivatorEvents(events ...string) {
	c.events.Set(append([]string(nil), events...))
}

// ActiveDraggable implements dnd.Context.
func (c *Context) ActiveDraggable() (dnd.ID, bool) {
	a := c.active.Get()
	return a.id, a.ok
}

// DraggableTransform implements dnd.Context. Only ids given to SetTransform
// report a transform.
func (c *Context) DraggableTransform(id dnd.ID) (dnd.Transform, bool) {
	t, ok := c.transforms.Get()[id]
	return t, ok
}

// UsingDragOverlay implements dnd.Context.
func (c *Context) UsingDragOverlay() bool {
	return c.overlay.Get()
}

// AddDraggable implements dnd.Context by recording the call.
func (c *Context) AddDraggable(r dnd.Registration) {
	c.record(Call{Op: OpAdd, ID: r.ID, Registration: r})
}

// RemoveDraggable implements dnd.Context by recording the call.
func (c *Context) RemoveDraggable(id dnd.ID) {
	c.record(Call{Op: OpRemove, ID: id})
}

// DraggableActivators builds one recording handler per configured event.
func (c *Context) DraggableActivators(id dnd.ID, asHandlers bool) dnd.Activators {
	events := c.events.Get()
	c.record(Call{Op: OpActivators, ID: id, AsHandlers: asHandlers})

	activators := make(dnd.Activators, len(events))
	for _, event := range events {
		event := event
		key := event
		if asHandlers {
			key = dnd.HandlerKey(event)
		}
		activators[key] = func(*dnd.Event) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.activations = append(c.activations, Activation{Event: event, ID: id})
		}
	}
	return activators
}

func (c *Context) record(call Call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

// Calls returns every recorded call in order.
func (c *Context) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Added returns the registrations passed to AddDraggable.
func (c *Context) Added() []dnd.Registration {
	var out []dnd.Registration
	for _, call := range c.Calls() {
		if call.Op == OpAdd {
			out = append(out, call.Registration)
		}
	}
	return out
}

// Removed returns the ids passed to RemoveDraggable.
func (c *Context) Removed() []dnd.ID {
	var out []dnd.ID
	for _, call := range c.Calls() {
		if call.Op == OpRemove {
			out = append(out, call.ID)
		}
	}
	return out
}

// Lifecycle returns only add and remove ops, in order.
func (c *Context) Lifecycle() []Op {
	var out []Op
	for _, call := range c.Calls() {
		if call.Op == OpAdd || call.Op == OpRemove {
			out = append(out, call.Op)
		}
	}
	return out
}

// Activations returns the activator invocations seen so far.
func (c *Context) Activations() []Activation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Activation(nil), c.activations...)
}

var _ dnd.Context = (*Context)(nil)
