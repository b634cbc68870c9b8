package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	assert.Equal(t, 1, s.Get())

	s.Set(2)
	assert.Equal(t, 2, s.Peek())
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal(10)
	s.Update(func(n int) int { return n + 5 })
	assert.Equal(t, 15, s.Peek())
}

func TestSignalSkipsEqualWrites(t *testing.T) {
	s := NewSignal("a")
	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})
	require.Equal(t, 1, runs)

	s.Set("a")
	assert.Equal(t, 1, runs, "equal write must not re-run subscribers")

	s.Set("b")
	assert.Equal(t, 2, runs)
}

func TestSignalStructEquality(t *testing.T) {
	type point struct{ X, Y float64 }
	s := NewSignal(point{1, 2})
	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})

	s.Set(point{1, 2})
	assert.Equal(t, 1, runs)
	s.Set(point{1, 3})
	assert.Equal(t, 2, runs)
}

func TestSignalWithEquals(t *testing.T) {
	s := NewSignal(0).WithEquals(func(a, b int) bool { return a/10 == b/10 })
	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})

	s.Set(5)
	assert.Equal(t, 1, runs)
	s.Set(12)
	assert.Equal(t, 2, runs)
}

func TestSignalNotify(t *testing.T) {
	m := map[string]int{}
	s := NewSignal(m)
	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})

	m["a"] = 1
	s.Notify()
	assert.Equal(t, 2, runs)
}

func TestPeekDoesNotSubscribe(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Peek()
		runs++
		return nil
	})

	s.Set(1)
	assert.Equal(t, 1, runs)
}
