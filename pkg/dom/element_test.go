package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/layout"
)

func TestElementListeners(t *testing.T) {
	el := NewElement("a", layout.Rect{})
	var got []string

	id1 := el.AddEventListener("pointerdown", func(*dnd.Event) { got = append(got, "first") })
	el.AddEventListener("pointerdown", func(*dnd.Event) { got = append(got, "second") })
	require.Equal(t, 2, el.ListenerCount("pointerdown"))

	el.Dispatch(&dnd.Event{Type: "pointerdown"})
	assert.Equal(t, []string{"first", "second"}, got)

	el.RemoveEventListener("pointerdown", id1)
	el.RemoveEventListener("pointerdown", 999)
	got = nil
	el.Dispatch(&dnd.Event{Type: "pointerdown"})
	assert.Equal(t, []string{"second"}, got)
	assert.Equal(t, []string{"pointerdown"}, el.Events())
}

func TestElementRemoveLastListenerDropsEvent(t *testing.T) {
	el := NewElement("a", layout.Rect{})
	id := el.AddEventListener("keydown", func(*dnd.Event) {})
	el.RemoveEventListener("keydown", id)
	assert.Empty(t, el.Events())
}

func TestElementStyleJournal(t *testing.T) {
	el := NewElement("a", layout.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	var observed []StyleWrite
	el.OnStyleWrite(func(w StyleWrite) { observed = append(observed, w) })

	el.SetStyleProperty("transform", "translate3d(10px, 4px, 0)")
	el.SetStyleProperty("transform", "translate3d(10px, 4px, 0)")

	writes := el.StyleWrites()
	require.Len(t, writes, 2)
	assert.Equal(t, StyleWrite{Target: "a", Property: "transform", Value: "translate3d(10px, 4px, 0)"}, writes[0])
	assert.Equal(t, writes, observed)

	assert.Equal(t, layout.Rect{X: 11, Y: 6, Width: 3, Height: 4}, el.BoundingRect())
	assert.Equal(t, layout.Layout{X: 1, Y: 2, Width: 3, Height: 4}, layout.ElementLayout(el))

	el.ResetStyleWrites()
	assert.Empty(t, el.StyleWrites())
	assert.Equal(t, "translate3d(10px, 4px, 0)", el.StyleProperty("transform"))
}

func TestDocumentDispatchBubblesToRoot(t *testing.T) {
	doc := NewDocument()
	card := doc.Create("card", layout.Rect{})
	var got []string
	card.AddEventListener("pointerup", func(*dnd.Event) { got = append(got, "card") })
	doc.Root().AddEventListener("pointerup", func(*dnd.Event) { got = append(got, "root") })

	assert.True(t, doc.Dispatch("card", &dnd.Event{Type: "pointerup"}))
	assert.Equal(t, []string{"card", "root"}, got)

	got = nil
	assert.False(t, doc.Dispatch("missing", &dnd.Event{Type: "pointerup"}))
	assert.Equal(t, []string{"root"}, got)

	got = nil
	assert.True(t, doc.Dispatch(RootID, &dnd.Event{Type: "pointerup"}))
	assert.Equal(t, []string{"root"}, got)
}

func TestDocumentStyleObserverAppliesToNewElements(t *testing.T) {
	doc := NewDocument()
	before := doc.Create("a", layout.Rect{})
	var writes []StyleWrite
	doc.OnStyleWrite(func(w StyleWrite) { writes = append(writes, w) })
	after := doc.Create("b", layout.Rect{})

	before.SetStyleProperty("transform", "x")
	after.SetStyleProperty("transform", "y")

	assert.Len(t, writes, 2)
	assert.Equal(t, []string{"a", "b"}, doc.IDs())

	doc.Remove("a")
	assert.Nil(t, doc.Get("a"))
}
