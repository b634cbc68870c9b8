package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextProvideAndUse(t *testing.T) {
	theme := CreateContext("light")
	root := NewOwner(nil)
	defer root.Dispose()

	root.Run(func() {
		assert.Equal(t, "light", theme.Use())
		theme.Provide("dark")
	})

	child := NewOwner(root)
	var got string
	child.Run(func() { got = theme.Use() })
	assert.Equal(t, "dark", got)
}

func TestContextDefaultOutsideOwner(t *testing.T) {
	c := CreateContext(7)
	assert.Equal(t, 7, c.Use())
	assert.Equal(t, 7, c.Default())
}

func TestContextProvideOn(t *testing.T) {
	c := CreateContext[any](nil)
	o := NewOwner(nil)
	c.ProvideOn(o, "x")

	var got any
	WithOwner(o, func() { got = c.Use() })
	assert.Equal(t, "x", got)
}
