package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNode struct {
	rect  Rect
	style map[string]string
}

func (f *fakeNode) BoundingRect() Rect              { return f.rect }
func (f *fakeNode) StyleProperty(name string) string { return f.style[name] }

func TestElementLayoutNil(t *testing.T) {
	l := ElementLayout(nil)
	assert.True(t, l.IsZero())
}

func TestElementLayoutMeasures(t *testing.T) {
	n := &fakeNode{rect: Rect{X: 10, Y: 20, Width: 100, Height: 50}}
	l := ElementLayout(n)

	assert.Equal(t, Layout{X: 10, Y: 20, Width: 100, Height: 50}, l)
	assert.Equal(t, 110.0, l.Right())
	assert.Equal(t, 70.0, l.Bottom())
	assert.Equal(t, Point{X: 60, Y: 45}, l.Center())
}

func TestElementLayoutRemovesInlineTranslate(t *testing.T) {
	n := &fakeNode{
		rect:  Rect{X: 15, Y: 16, Width: 10, Height: 10},
		style: map[string]string{"transform": "translate3d(5px, -4px, 0)"},
	}
	assert.Equal(t, Layout{X: 10, Y: 20, Width: 10, Height: 10}, ElementLayout(n))
}

func TestParseTranslate(t *testing.T) {
	tests := []struct {
		in   string
		want Transform
		ok   bool
	}{
		{"", Transform{}, true},
		{"none", Transform{}, true},
		{"translate3d(10px, 4px, 0)", Transform{10, 4}, true},
		{"translate3d(-2.5px, 0px, 0px)", Transform{-2.5, 0}, true},
		{"translate(3px, 7px)", Transform{3, 7}, true},
		{"translate(3px)", Transform{3, 0}, true},
		{"rotate(45deg)", Transform{}, false},
		{"translate3d(1px, 2px)", Transform{}, false},
		{"translate(abc)", Transform{}, false},
		{"translate3d(1px, 2px, 0", Transform{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTranslate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutContains(t *testing.T) {
	l := Layout{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, l.Contains(Point{5, 5}))
	assert.True(t, l.Contains(Point{10, 10}))
	assert.False(t, l.Contains(Point{11, 5}))
}
