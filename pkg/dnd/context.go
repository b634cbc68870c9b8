package dnd

import (
	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/reactive"
)

// Context is the drag context a draggable registers with. The read methods
// must be reactive: reading them inside an effect subscribes the effect to
// the underlying state.
type Context interface {
	// ActiveDraggable returns the id being dragged, if any.
	ActiveDraggable() (ID, bool)

	// DraggableTransform returns the stored transform for id, if any.
	DraggableTransform(id ID) (Transform, bool)

	// UsingDragOverlay reports whether an overlay renders the dragged item.
	UsingDragOverlay() bool

	AddDraggable(r Registration)

	// RemoveDraggable must treat unknown ids as a no-op.
	RemoveDraggable(id ID)

	// DraggableActivators builds a fresh activator map scoped to id, in
	// handler form when asHandlers is true.
	DraggableActivators(id ID, asHandlers bool) Activators
}

// DragContext lets a Context be provided once on an ancestor owner instead
// of being passed to every CreateDraggable call.
var DragContext = reactive.CreateContext[Context](nil)

// UseDraggable is CreateDraggable with the Context taken from the nearest
// DragContext provider. It panics with a D001 *errors.Error when no
// provider exists.
func UseDraggable(opts Options) *Draggable {
	ctx := DragContext.Use()
	if ctx == nil {
		panic(errors.New("D001").
			WithSuggestion("Provide a context with dnd.DragContext.Provide on an ancestor owner"))
	}
	return CreateDraggable(ctx, opts)
}
