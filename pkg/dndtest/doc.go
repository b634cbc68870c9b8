// Package dndtest provides test doubles for code built on package dnd.
//
// Context is a reactive, recording dnd.Context: tests drive its state with
// setters and inspect the calls draggables made against it.
//
//	ctx := dndtest.NewContext()
//	ctx.SetActivatorEvents("pointerdown")
//	owner.Run(func() { dnd.CreateDraggable(ctx, dnd.Options{ID: "a"}).Apply(el) })
//	ctx.Added() // -> one Registration for "a"
package dndtest
