package reactive

import (
	"runtime"
	"sync"
)

// maxFlushRuns bounds the number of effect runs in one flush. An effect
// that keeps re-dirtying itself would otherwise spin forever.
const maxFlushRuns = 10_000

// trackingContext holds the reactive state for a goroutine.
type trackingContext struct {
	// currentOwner is the Owner that will own newly created effects.
	currentOwner *Owner

	// currentListener is what's currently tracking dependencies.
	// nil means reads don't create subscriptions.
	currentListener Listener

	// batchDepth tracks nested Batch calls. While > 0 the flush is deferred.
	batchDepth int

	// queue holds effects waiting to run, in scheduling order.
	queue []*Effect

	// flushing is true while the queue is being drained.
	flushing bool
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the "goroutine <id> " prefix of the runtime stack.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the listener for dependency tracking and returns
// the previous one so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner sets the owner for effect creation and returns the
// previous one so it can be restored.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// enqueue appends an effect to the current goroutine's flush queue.
func enqueue(e *Effect) {
	ctx := getTrackingContext()
	ctx.queue = append(ctx.queue, e)
}

// flush drains the queue unless a batch is open or a flush is already
// running further up the stack. Effects scheduled while draining run in the
// same flush.
func flush() {
	ctx := getTrackingContext()
	if ctx.flushing || ctx.batchDepth > 0 {
		return
	}

	ctx.flushing = true
	defer func() { ctx.flushing = false }()

	runs := 0
	for len(ctx.queue) > 0 {
		e := ctx.queue[0]
		ctx.queue[0] = nil
		ctx.queue = ctx.queue[1:]

		runs++
		if runs > maxFlushRuns {
			ctx.queue = nil
			panic("reactive: effects did not settle; an effect keeps invalidating itself")
		}
		e.run()
	}
	ctx.queue = nil
}

// WithOwner runs fn with owner as the current owner. Effects and cleanups
// created inside fn belong to owner.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// Release drops the calling goroutine's tracking state. Event loops call it
// on exit so the per-goroutine map does not grow.
func Release() {
	trackingContexts.Delete(getGoroutineID())
}
