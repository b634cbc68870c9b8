// Package reactive provides the fine-grained reactive runtime that drives
// draggable bindings.
//
// Dependencies are tracked automatically at runtime: reading a Signal inside
// an Effect subscribes that effect, and writing the signal re-runs it.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	active := NewSignal("")
//	id := active.Get() // read (subscribes the running effect)
//	active.Set("card-1")
//
// Effect runs side effects when dependencies change:
//
//	CreateEffect(func() Cleanup {
//	    node := nodeSignal.Get()
//	    id := node.AddEventListener("pointerdown", h)
//	    return func() { node.RemoveEventListener("pointerdown", id) }
//	})
//
// Owner scopes effects and cleanups. Disposing an Owner tears down its
// children, then its effects, then its cleanups in reverse order.
//
// # Scheduling
//
// Writes outside a batch flush dirty effects synchronously, in the order
// they were scheduled. Inside Batch (and Owner.Run) the flush is deferred
// until the outermost batch returns. CreateEffect defers its first run the
// same way, so effects created while a scope is being built observe state
// set later in that scope. CreateRenderEffect runs immediately.
//
// # Thread Safety
//
// Primitives are safe to touch from multiple goroutines, but tracking and
// the flush queue are per goroutine. Keep all reactive work for one scope
// on one goroutine (the server does this with a per-session event loop).
package reactive
