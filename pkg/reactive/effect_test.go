package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectRunsOnCreateOutsideBatch(t *testing.T) {
	ran := false
	CreateEffect(func() Cleanup {
		ran = true
		return nil
	})
	assert.True(t, ran)
}

func TestEffectDeferredInsideOwnerRun(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	node := NewSignal("")
	var seen []string

	owner.Run(func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, node.Get())
			return nil
		})
		node.Set("el")
		assert.Empty(t, seen, "first run waits for the scope to finish")
	})

	assert.Equal(t, []string{"el"}, seen)
}

func TestRenderEffectRunsImmediately(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	ran := false
	owner.Run(func() {
		CreateRenderEffect(func() Cleanup {
			ran = true
			return nil
		})
		assert.True(t, ran)
	})
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(0)
	var log []string

	owner.Run(func() {
		CreateEffect(func() Cleanup {
			n := count.Get()
			log = append(log, "run")
			return func() {
				log = append(log, "cleanup")
				_ = n
			}
		})
	})

	count.Set(1)
	count.Set(2)

	assert.Equal(t, []string{"run", "cleanup", "run", "cleanup", "run"}, log)
}

func TestEffectResubscribesEachRun(t *testing.T) {
	flag := NewSignal(true)
	a := NewSignal(0)
	runs := 0

	e := CreateEffect(func() Cleanup {
		runs++
		if flag.Get() {
			_ = a.Get()
		}
		return nil
	})
	defer e.Dispose()

	flag.Set(false)
	require.Equal(t, 2, runs)

	a.Set(1)
	assert.Equal(t, 2, runs, "branch no longer reads a")
}

func TestEffectOrderIsSchedulingOrder(t *testing.T) {
	s := NewSignal(0)
	var order []int

	owner := NewOwner(nil)
	defer owner.Dispose()
	owner.Run(func() {
		for i := 1; i <= 3; i++ {
			i := i
			CreateEffect(func() Cleanup {
				_ = s.Get()
				order = append(order, i)
				return nil
			})
		}
	})
	order = nil

	s.Set(1)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEffectDisposeStopsReruns(t *testing.T) {
	s := NewSignal(0)
	runs, cleanups := 0, 0
	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return func() { cleanups++ }
	})

	e.Dispose()
	e.Dispose()
	s.Set(1)

	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, cleanups)
}

func TestOnMountRunsAfterScopeAndUntracked(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	s := NewSignal(0)
	mounts := 0
	owner.Run(func() {
		OnMount(func() {
			_ = s.Get()
			mounts++
		})
		assert.Zero(t, mounts)
	})
	require.Equal(t, 1, mounts)

	s.Set(1)
	assert.Equal(t, 1, mounts)
}

func TestEffectsSettleGuard(t *testing.T) {
	s := NewSignal(0)
	assert.Panics(t, func() {
		CreateEffect(func() Cleanup {
			s.Set(s.Get() + 1)
			return nil
		})
	})
}
