// Package dnd binds UI nodes to a drag context.
//
// CreateDraggable produces a Draggable for one stable ID. Applying it to a
// node registers the node with the Context when the surrounding scope
// mounts, keeps the Context's activator listeners attached to the current
// node, and mirrors the Context's transform for that ID onto the node's
// inline "transform" style unless the Context is in drag-overlay mode.
// Disposing the owning reactive.Owner detaches the listeners and removes
// the registration.
//
//	owner := reactive.NewOwner(nil)
//	owner.Run(func() {
//	    card := dnd.CreateDraggable(store, dnd.Options{ID: "card-1", Data: item})
//	    card.Apply(el)
//	})
//	// ... later
//	owner.Dispose()
package dnd
