package dnd

import (
	"reflect"
	"sort"
	"sync/atomic"

	"github.com/vango-dev/dragkit/pkg/layout"
	"github.com/vango-dev/dragkit/pkg/reactive"
	"github.com/vango-dev/dragkit/pkg/style"
)

// Options configures CreateDraggable.
type Options struct {
	// ID is required and must stay the same for the draggable's lifetime.
	ID ID

	// Data is an optional payload forwarded to the Context untouched.
	Data any
}

// Draggable is the binding between one node and a Context.
type Draggable struct {
	ctx  Context
	id   ID
	data any

	node    *reactive.Signal[Node]
	mounted atomic.Bool
	wired   atomic.Bool
}

// CreateDraggable creates a binding for opts.ID. Call it inside the owner
// that represents the node's lifetime: registration happens when that
// scope finishes building, removal when it is disposed.
func CreateDraggable(ctx Context, opts Options) *Draggable {
	d := &Draggable{
		ctx:  ctx,
		id:   opts.ID,
		data: opts.Data,
		node: reactive.NewSignal[Node](nil).WithEquals(sameNode),
	}

	reactive.OnMount(d.register)
	reactive.OnCleanup(d.unregister)

	return d
}

func sameNode(a, b Node) bool {
	return a == b
}

// nodeOrNil maps a typed nil pointer wrapped in a Node to a nil Node.
func nodeOrNil(n Node) Node {
	if n == nil {
		return nil
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return n
}

func (d *Draggable) register() {
	node := d.node.Peek()
	d.ctx.AddDraggable(Registration{
		ID:     d.id,
		Node:   node,
		Layout: layout.ElementLayout(measurable(node)),
		Data:   d.data,
	})
	d.mounted.Store(true)
}

func (d *Draggable) unregister() {
	d.mounted.Store(false)
	d.ctx.RemoveDraggable(d.id)
}

// measurable returns node as a layout.Measurable, or nil when it cannot be
// measured.
func measurable(node Node) layout.Measurable {
	if m, ok := node.(layout.Measurable); ok {
		return m
	}
	return nil
}

// Apply binds el: it becomes the tracked node, the Context's activators are
// kept attached to it, and the drag transform is written to its inline
// style while no drag overlay is in use. Applying again moves both bindings
// to the new node; neither is ever attached twice.
func (d *Draggable) Apply(el Node) {
	d.node.Set(nodeOrNil(el))

	if d.wired.CompareAndSwap(false, true) {
		reactive.CreateEffect(d.bindActivators)
		reactive.CreateRenderEffect(d.writeTransform)
	}
}

func (d *Draggable) writeTransform() reactive.Cleanup {
	node := d.node.Get()
	if node == nil || d.ctx.UsingDragOverlay() {
		return nil
	}
	s := style.TransformStyle(d.Transform())
	node.SetStyleProperty("transform", s.Transform)
	return nil
}

type attachment struct {
	event string
	id    ListenerID
}

// bindActivators attaches the current activator set to the current node and
// returns the cleanup that detaches exactly what was attached.
func (d *Draggable) bindActivators() reactive.Cleanup {
	node := d.node.Get()
	activators := d.ctx.DraggableActivators(d.id, false)
	if node == nil || len(activators) == 0 {
		return nil
	}

	events := make([]string, 0, len(activators))
	for event := range activators {
		events = append(events, event)
	}
	sort.Strings(events)

	attached := make([]attachment, 0, len(events))
	for _, event := range events {
		attached = append(attached, attachment{
			event: event,
			id:    node.AddEventListener(event, activators[event]),
		})
	}

	return func() {
		for _, a := range attached {
			node.RemoveEventListener(a.event, a.id)
		}
	}
}

// Ref sets the tracked node without applying the style binding. It can be
// handed to a host as a mount callback.
func (d *Draggable) Ref(el Node) {
	d.node.Set(nodeOrNil(el))
}

// Node returns the tracked node without subscribing.
func (d *Draggable) Node() Node {
	return d.node.Peek()
}

// ID returns the draggable's identity.
func (d *Draggable) ID() ID {
	return d.id
}

// Data returns the payload given at creation.
func (d *Draggable) Data() any {
	return d.data
}

// IsMounted reports whether the draggable is currently registered.
func (d *Draggable) IsMounted() bool {
	return d.mounted.Load()
}

// IsActiveDraggable reports whether the Context is dragging this id.
func (d *Draggable) IsActiveDraggable() bool {
	active, ok := d.ctx.ActiveDraggable()
	return ok && active == d.id
}

// DragActivators returns the Context's activators for this id in handler
// form, for hosts that attach handlers declaratively.
func (d *Draggable) DragActivators() Activators {
	return d.ctx.DraggableActivators(d.id, true)
}

// Transform returns the drag offset for this id, or the zero Transform when
// the Context has none.
func (d *Draggable) Transform() Transform {
	t, ok := d.ctx.DraggableTransform(d.id)
	if !ok {
		return Transform{}
	}
	return t
}
