package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dkerrors "github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/dom"
)

func TestDecodeEvent(t *testing.T) {
	e, err := DecodeEvent([]byte(`{"seq":3,"type":"pointermove","target":"card-1","x":12.5,"y":-4}`))
	require.NoError(t, err)
	assert.Equal(t, &Event{Seq: 3, Type: EventPointerMove, Target: "card-1", X: 12.5, Y: -4}, e)

	ev := e.DOMEvent()
	assert.Equal(t, &dnd.Event{Type: "pointermove", X: 12.5, Y: -4}, ev)
}

func TestDecodeEventErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		code  string
	}{
		{"not json", `{`, "D061"},
		{"unknown field", `{"type":"keydown","target":"a","extra":1}`, "D061"},
		{"two values", `{"type":"keydown","target":"a"}{}`, "D061"},
		{"unknown type", `{"type":"click","target":"a"}`, "D062"},
		{"empty target", `{"type":"keydown","target":""}`, "D061"},
		{"long target", `{"type":"keydown","target":"` + strings.Repeat("x", MaxTargetLength+1) + `"}`, "D061"},
		{"long key", `{"type":"keydown","target":"a","key":"` + strings.Repeat("k", MaxKeyLength+1) + `"}`, "D061"},
		{"too large", `{"type":"keydown","target":"a","key":"` + strings.Repeat(" ", MaxFrameSize) + `"}`, "D061"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.frame))
			require.Error(t, err)
			assert.Equal(t, tt.code, dkerrors.CodeOf(err))
		})
	}
}

func TestEncodeEventIsDecodable(t *testing.T) {
	in := &Event{Seq: 1, Type: EventKeyDown, Target: "card-2", Key: "Enter"}
	data, err := EncodeEvent(in)
	require.NoError(t, err)

	out, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMessages(t *testing.T) {
	patch := PatchFromStyleWrite(dom.StyleWrite{Target: "card-1", Property: "transform", Value: "translate3d(1px, 2px, 0)"})
	data, err := EncodeMessage(Patches(9, []Patch{patch}))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"kind":"patches","seq":9,"patches":[{"target":"card-1","property":"transform","value":"translate3d(1px, 2px, 0)"}]}`,
		string(data))

	data, err = EncodeMessage(Hello("s-1", []Card{{ID: "card-1", Label: "A", Width: 10, Height: 10}}))
	require.NoError(t, err)
	m, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, KindHello, m.Kind)
	assert.Equal(t, "s-1", m.Session)
	require.Len(t, m.Cards, 1)
	assert.Equal(t, "A", m.Cards[0].Label)
}

func TestErrorFor(t *testing.T) {
	m := ErrorFor(4, dkerrors.New("D063").WithDetail("no card-9"), false)
	assert.Equal(t, KindError, m.Kind)
	assert.Equal(t, uint64(4), m.Seq)
	assert.Equal(t, &ErrorMessage{Code: "D063", Message: "Unknown target"}, m.Error)

	m = ErrorFor(0, errors.New("queue closed"), true)
	assert.Equal(t, &ErrorMessage{Message: "queue closed", Fatal: true}, m.Error)

	_, err := DecodeMessage([]byte(`[`))
	assert.Equal(t, "D061", dkerrors.CodeOf(err))
}
