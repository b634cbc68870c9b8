// Package style serializes drag transforms into inline CSS values.
package style

import (
	"strconv"

	"github.com/vango-dev/dragkit/pkg/layout"
)

// Style holds the CSS properties produced for a transform.
type Style struct {
	Transform string `json:"transform"`
}

// TransformStyle serializes t as a translate3d value. It is total and
// deterministic: equal transforms always produce the same string, and the
// zero transform gives "translate3d(0px, 0px, 0)".
func TransformStyle(t layout.Transform) Style {
	return Style{
		Transform: "translate3d(" + Px(t.X) + ", " + Px(t.Y) + ", 0)",
	}
}

// Px formats v as a CSS pixel length in its shortest form.
func Px(v float64) string {
	if v == 0 {
		// Normalizes -0.
		return "0px"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
