package style

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vango-dev/dragkit/pkg/layout"
)

func TestTransformStyle(t *testing.T) {
	tests := []struct {
		in   layout.Transform
		want string
	}{
		{layout.Transform{}, "translate3d(0px, 0px, 0)"},
		{layout.Transform{X: 10, Y: 4}, "translate3d(10px, 4px, 0)"},
		{layout.Transform{X: 5, Y: -3}, "translate3d(5px, -3px, 0)"},
		{layout.Transform{X: 0.5, Y: 1.25}, "translate3d(0.5px, 1.25px, 0)"},
		{layout.Transform{X: math.Copysign(0, -1), Y: 0}, "translate3d(0px, 0px, 0)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TransformStyle(tt.in).Transform)
	}
}

func TestTransformStyleIdempotent(t *testing.T) {
	first := TransformStyle(layout.Transform{})
	second := TransformStyle(layout.Transform{})
	assert.Equal(t, first, second)
}

func TestTransformStyleParsesBack(t *testing.T) {
	in := layout.Transform{X: -12.5, Y: 7}
	got, ok := layout.ParseTranslate(TransformStyle(in).Transform)
	assert.True(t, ok)
	assert.Equal(t, in, got)
}
