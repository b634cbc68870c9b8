package dragctx

import (
	"math"

	"github.com/vango-dev/dragkit/pkg/dnd"
)

// DefaultActivationDistance is how far, in pixels, a pointer must travel
// after pointerdown before a drag starts.
const DefaultActivationDistance = 4.0

// PointerSensorID is the ID of PointerSensor.
const PointerSensorID = "pointer-sensor"

// PointerSensor starts a drag on primary-button pointerdown once the
// pointer has moved past the activation distance. Move and up events are
// read from a document-level node so the drag survives the pointer leaving
// the draggable.
type PointerSensor struct {
	store    *Store
	document dnd.Node
	distance float64

	pending  bool
	dragging bool
	id       dnd.ID
	originX  float64
	originY  float64

	moveListener dnd.ListenerID
	upListener   dnd.ListenerID
}

// PointerOption configures a PointerSensor.
type PointerOption func(*PointerSensor)

// WithActivationDistance sets the dead zone in pixels. Zero starts the drag
// on the first move.
func WithActivationDistance(px float64) PointerOption {
	return func(p *PointerSensor) {
		p.distance = px
	}
}

// NewPointerSensor creates a pointer sensor that listens for move/up on
// document.
func NewPointerSensor(store *Store, document dnd.Node, opts ...PointerOption) *PointerSensor {
	p := &PointerSensor{
		store:    store,
		document: document,
		distance: DefaultActivationDistance,
	}
	for _, opt := range opts {
		opt(p)
	}
	store.OnDragEnd(func(ev DragEvent) {
		// Drag ended elsewhere (draggable removed, Cancel called).
		if p.pending && ev.Sensor == PointerSensorID {
			p.reset()
		}
	})
	return p
}

// ID implements Sensor.
func (p *PointerSensor) ID() string {
	return PointerSensorID
}

// Activators implements Sensor.
func (p *PointerSensor) Activators() map[string]Activator {
	return map[string]Activator{
		"pointerdown": p.onPointerDown,
	}
}

func (p *PointerSensor) onPointerDown(e *dnd.Event, id dnd.ID) {
	if e.Button != 0 || p.pending {
		return
	}

	p.pending = true
	p.dragging = false
	p.id = id
	p.originX, p.originY = e.X, e.Y

	p.moveListener = p.document.AddEventListener("pointermove", p.onPointerMove)
	p.upListener = p.document.AddEventListener("pointerup", p.onPointerUp)
}

func (p *PointerSensor) onPointerMove(e *dnd.Event) {
	if !p.pending {
		return
	}

	delta := dnd.Transform{X: e.X - p.originX, Y: e.Y - p.originY}

	if !p.dragging {
		if math.Hypot(delta.X, delta.Y) <= p.distance && p.distance > 0 {
			return
		}
		if !p.store.DragStart(p.id, PointerSensorID) {
			p.reset()
			return
		}
		p.dragging = true
	}

	p.store.DragMove(delta)
}

func (p *PointerSensor) onPointerUp(e *dnd.Event) {
	if !p.pending {
		return
	}
	dragging := p.dragging
	p.reset()

	if dragging {
		p.store.DragEnd()
	}
}

// reset detaches the document listeners and forgets the pending gesture.
func (p *PointerSensor) reset() {
	p.document.RemoveEventListener("pointermove", p.moveListener)
	p.document.RemoveEventListener("pointerup", p.upListener)
	p.pending = false
	p.dragging = false
	p.id = ""
}
