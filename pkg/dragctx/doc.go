// Package dragctx is a reference dnd.Context.
//
// A Store tracks registered draggables, the single active drag session,
// the overlay flag and a list of sensors. Sensors translate node events
// into DragStart / DragMove / DragEnd calls; the Store turns those into the
// reactive state that draggable bindings read. There is no collision
// detection or drop-target resolution: a drag ends where it ends.
//
//	store := dragctx.New(dragctx.WithLogger(logger))
//	store.AddSensor(dragctx.NewPointerSensor(store, doc.Root()))
//	store.OnDragEnd(func(ev dragctx.DragEvent) { ... })
package dragctx
