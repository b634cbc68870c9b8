package reactive

// Batch groups signal writes: effects dirtied inside fn run once, after the
// outermost batch returns.
//
//	Batch(func() {
//	    active.Set("card-1")
//	    transform.Set(t)
//	})
func Batch(fn func()) {
	ctx := getTrackingContext()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			flush()
		}
	}()

	fn()
}

// Untracked runs fn without tracking signal reads as dependencies.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// Untrack returns fn's result without tracking signal reads.
func Untrack[T any](fn func() T) T {
	var v T
	Untracked(func() { v = fn() })
	return v
}
