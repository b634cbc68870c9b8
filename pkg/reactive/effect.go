package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect that re-runs when the signals it read on
// its last run change. The Cleanup returned by a run is called before the
// next run and when the effect is disposed.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	// sources are the signals this effect read on its last run.
	sources   []*signalBase
	sourcesMu sync.Mutex

	owner *Owner

	// pending is set while the effect sits in a flush queue.
	pending atomic.Bool

	disposed atomic.Bool
}

// MarkDirty queues the effect for a re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) {
		enqueue(e)
	}
}

// ID returns the unique identifier for this effect. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect: previous cleanup, resubscription, body.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		Untracked(cleanup)
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	oldListener := setCurrentListener(e)
	oldOwner := setCurrentOwner(e.owner)
	defer func() {
		setCurrentOwner(oldOwner)
		setCurrentListener(oldListener)
	}()

	e.cleanup = e.fn()
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose stops the effect: it runs the last cleanup and unsubscribes from
// all sources. Safe to call more than once.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		Untracked(cleanup)
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

func newEffect(fn func() Cleanup) *Effect {
	owner := getCurrentOwner()
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner != nil {
		owner.registerEffect(e)
	}
	return e
}

// CreateEffect creates an effect owned by the current owner. Its first run
// is queued like any other re-run: inside a batch or Owner.Run it happens
// when the batch closes, otherwise immediately.
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("active:", active.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := newEffect(fn)
	e.MarkDirty()
	flush()
	return e
}

// CreateRenderEffect creates an effect whose first run happens right away,
// before CreateRenderEffect returns. Re-runs are scheduled like CreateEffect.
func CreateRenderEffect(fn func() Cleanup) *Effect {
	e := newEffect(fn)
	e.run()
	return e
}

// OnMount queues fn to run once after the current scope is built. Signal
// reads inside fn are not tracked.
//
//	OnMount(func() {
//	    ctx.AddDraggable(reg)
//	})
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		Untracked(fn)
		return nil
	})
}

// OnCleanup registers fn to run when the current owner is disposed. With no
// current owner the call is a no-op.
func OnCleanup(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}
