package dragctx

import "github.com/vango-dev/dragkit/pkg/dnd"

// KeyboardSensorID is the ID of KeyboardSensor.
const KeyboardSensorID = "keyboard-sensor"

// DefaultKeyboardStep is how far one arrow key press moves the draggable.
const DefaultKeyboardStep = 10.0

// Key values read by KeyboardSensor (KeyboardEvent.key).
const (
	KeyEnter      = "Enter"
	KeySpace      = " "
	KeyEscape     = "Escape"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// KeyboardSensor starts a drag with Space or Enter on a focused draggable,
// moves it with the arrow keys, drops with Space or Enter and cancels with
// Escape. Keys after the start are read from a document-level node.
type KeyboardSensor struct {
	store    *Store
	document dnd.Node
	step     float64

	active   bool
	offset   dnd.Transform
	starting *dnd.Event
	listener dnd.ListenerID
}

// NewKeyboardSensor creates a keyboard sensor moving step pixels per arrow
// press. A non-positive step uses DefaultKeyboardStep.
func NewKeyboardSensor(store *Store, document dnd.Node, step float64) *KeyboardSensor {
	if step <= 0 {
		step = DefaultKeyboardStep
	}
	k := &KeyboardSensor{store: store, document: document, step: step}
	store.OnDragEnd(func(ev DragEvent) {
		if k.active && ev.Sensor == KeyboardSensorID {
			k.stop()
		}
	})
	return k
}

// ID implements Sensor.
func (k *KeyboardSensor) ID() string {
	return KeyboardSensorID
}

// Activators implements Sensor.
func (k *KeyboardSensor) Activators() map[string]Activator {
	return map[string]Activator{
		"keydown": k.onKeyDown,
	}
}

func (k *KeyboardSensor) onKeyDown(e *dnd.Event, id dnd.ID) {
	if k.active || (e.Key != KeyEnter && e.Key != KeySpace) {
		return
	}
	if !k.store.DragStart(id, KeyboardSensorID) {
		return
	}

	e.PreventDefault()
	k.active = true
	k.offset = dnd.Transform{}
	// The starting event still bubbles to the document; remember it so the
	// document listener does not treat it as the drop.
	k.starting = e
	k.listener = k.document.AddEventListener("keydown", k.onDocumentKeyDown)
}

func (k *KeyboardSensor) onDocumentKeyDown(e *dnd.Event) {
	if !k.active || e == k.starting {
		return
	}

	switch e.Key {
	case KeyArrowUp:
		k.offset.Y -= k.step
	case KeyArrowDown:
		k.offset.Y += k.step
	case KeyArrowLeft:
		k.offset.X -= k.step
	case KeyArrowRight:
		k.offset.X += k.step
	case KeyEnter, KeySpace:
		k.stop()
		k.store.DragEnd()
		return
	case KeyEscape:
		k.stop()
		k.store.Cancel()
		return
	default:
		return
	}

	e.PreventDefault()
	k.store.DragMove(k.offset)
}

func (k *KeyboardSensor) stop() {
	k.document.RemoveEventListener("keydown", k.listener)
	k.active = false
	k.starting = nil
}
