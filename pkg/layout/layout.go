// Package layout measures elements for drag registration.
//
// A Layout is the rest position of an element: its bounding rect with any
// inline drag translate removed, so a layout taken mid-drag still describes
// where the element sits when it is not being dragged.
package layout

// Transform is a 2D offset from an element's rest position.
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsZero reports whether t is the identity offset.
func (t Transform) IsZero() bool {
	return t.X == 0 && t.Y == 0
}

// Add returns t shifted by o.
func (t Transform) Add(o Transform) Transform {
	return Transform{X: t.X + o.X, Y: t.Y + o.Y}
}

// Point is a position in page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box as reported by the host (the element's
// bounding client rect).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is a measured box. The zero Layout is what an unmeasurable or
// missing element produces.
type Layout struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FromRect converts a host rect into a Layout.
func FromRect(r Rect) Layout {
	return Layout{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func (l Layout) Left() float64   { return l.X }
func (l Layout) Top() float64    { return l.Y }
func (l Layout) Right() float64  { return l.X + l.Width }
func (l Layout) Bottom() float64 { return l.Y + l.Height }

// Center returns the midpoint of the box.
func (l Layout) Center() Point {
	return Point{X: l.X + l.Width/2, Y: l.Y + l.Height/2}
}

// IsZero reports whether l is the empty layout.
func (l Layout) IsZero() bool {
	return l == Layout{}
}

// Translate returns l moved by t.
func (l Layout) Translate(t Transform) Layout {
	l.X += t.X
	l.Y += t.Y
	return l
}

// Contains reports whether p lies inside or on the edge of l.
func (l Layout) Contains(p Point) bool {
	return p.X >= l.Left() && p.X <= l.Right() &&
		p.Y >= l.Top() && p.Y <= l.Bottom()
}

// Measurable is implemented by nodes the layout provider can measure.
type Measurable interface {
	// BoundingRect returns the node's current box, including any transform
	// applied through its inline style.
	BoundingRect() Rect

	// StyleProperty returns an inline style property, "" when unset.
	StyleProperty(name string) string
}

// ElementLayout measures el. A nil element yields the zero Layout instead of
// failing, so registration of a momentarily unmounted node still succeeds.
func ElementLayout(el Measurable) Layout {
	if el == nil {
		return Layout{}
	}

	l := FromRect(el.BoundingRect())
	if t, ok := ParseTranslate(el.StyleProperty("transform")); ok && !t.IsZero() {
		l = l.Translate(Transform{X: -t.X, Y: -t.Y})
	}
	return l
}
