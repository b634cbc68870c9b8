package server

import (
	"log/slog"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/dom"
	"github.com/vango-dev/dragkit/pkg/dragctx"
	"github.com/vango-dev/dragkit/pkg/layout"
	"github.com/vango-dev/dragkit/pkg/protocol"
	"github.com/vango-dev/dragkit/pkg/reactive"
	"github.com/vango-dev/dragkit/pkg/style"
)

// Board is one session's set of draggable cards. It is not safe for
// concurrent use: create, use and dispose it on a single goroutine.
type Board struct {
	logger *slog.Logger

	doc   *dom.Document
	store *dragctx.Store
	owner *reactive.Owner

	order  []string
	cards  map[string]*card
	writes []protocol.Patch
}

type card struct {
	info  protocol.Card
	el    *dom.Element
	owner *reactive.Owner
}

// NewBoard mounts cards into a fresh document. observer may be nil.
func NewBoard(config *ServerConfig, logger *slog.Logger, observer dragctx.Observer) *Board {
	opts := []dragctx.Option{
		dragctx.WithLogger(logger),
		dragctx.WithDragOverlay(config.UseOverlay),
	}
	if observer != nil {
		opts = append(opts, dragctx.WithObserver(observer))
	}

	b := &Board{
		logger: logger,
		doc:    dom.NewDocument(),
		store:  dragctx.New(opts...),
		owner:  reactive.NewOwner(nil),
		cards:  make(map[string]*card),
	}

	b.store.AddSensor(dragctx.NewPointerSensor(b.store, b.doc.Root(),
		dragctx.WithActivationDistance(config.ActivationDistance)))
	b.store.AddSensor(dragctx.NewKeyboardSensor(b.store, b.doc.Root(), config.KeyboardStep))
	b.store.OnDragEnd(b.drop)

	dnd.DragContext.ProvideOn(b.owner, b.store)
	for _, c := range config.Cards {
		b.Mount(c)
	}

	// Writes made while mounting describe the initial layout the client
	// already gets in the hello message.
	b.doc.OnStyleWrite(b.record)
	return b
}

// Mount adds a card and binds it as a draggable. A card with the same id is
// unmounted first.
func (b *Board) Mount(info protocol.Card) {
	if _, ok := b.cards[info.ID]; ok {
		b.Unmount(info.ID)
	}

	el := b.doc.Create(info.ID, layout.Rect{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height})
	c := &card{info: info, el: el, owner: reactive.NewOwner(b.owner)}
	c.owner.Run(func() {
		dnd.UseDraggable(dnd.Options{ID: dnd.ID(info.ID), Data: info.Label}).Apply(el)
	})

	b.cards[info.ID] = c
	b.order = append(b.order, info.ID)
}

// Unmount removes a card. Unknown ids are ignored.
func (b *Board) Unmount(id string) {
	c, ok := b.cards[id]
	if !ok {
		return
	}
	c.owner.Dispose()
	b.doc.Remove(id)
	delete(b.cards, id)
	for i, o := range b.order {
		if o == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Cards returns the cards in mount order at their resting positions.
func (b *Board) Cards() []protocol.Card {
	cards := make([]protocol.Card, 0, len(b.order))
	for _, id := range b.order {
		cards = append(cards, b.cards[id].info)
	}
	return cards
}

// Store returns the board's drag context.
func (b *Board) Store() *dragctx.Store {
	return b.store
}

// Handle dispatches a client event and returns the style patches it caused,
// in write order.
func (b *Board) Handle(ev *protocol.Event) ([]protocol.Patch, error) {
	if b.doc.Get(ev.Target) == nil {
		return nil, errors.New("D063").WithDetailf("no element %q on this board", ev.Target)
	}

	b.writes = nil
	b.doc.Dispatch(ev.Target, ev.DOMEvent())
	patches := b.writes
	b.writes = nil
	return patches, nil
}

// Dispose unmounts every card. A drag in progress is canceled.
func (b *Board) Dispose() {
	b.owner.Dispose()
}

func (b *Board) record(w dom.StyleWrite) {
	b.writes = append(b.writes, protocol.PatchFromStyleWrite(w))
}

// drop moves a dropped card's resting position by the drag offset. The
// transform has already been reset by the time drag-end handlers run.
func (b *Board) drop(ev dragctx.DragEvent) {
	if ev.Canceled || ev.Transform.IsZero() {
		return
	}
	c, ok := b.cards[string(ev.ID)]
	if !ok {
		return
	}

	c.info.X += ev.Transform.X
	c.info.Y += ev.Transform.Y
	c.el.SetRect(layout.Rect{X: c.info.X, Y: c.info.Y, Width: c.info.Width, Height: c.info.Height})
	c.el.SetStyleProperty("left", style.Px(c.info.X))
	c.el.SetStyleProperty("top", style.Px(c.info.Y))

	b.logger.Debug("card dropped", "id", ev.ID, "x", c.info.X, "y", c.info.Y, "sensor", ev.Sensor)
}
