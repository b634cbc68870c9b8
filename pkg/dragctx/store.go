package dragctx

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/reactive"
)

// DragEvent describes a drag lifecycle transition.
type DragEvent struct {
	ID        dnd.ID
	Sensor    string
	Transform dnd.Transform
	Data      any
	Canceled  bool
}

// Observer receives lifecycle notifications. pkg/metrics implements it.
type Observer interface {
	DraggableAdded(id dnd.ID)
	DraggableRemoved(id dnd.ID)
	DragStarted(id dnd.ID, sensor string)
	DragEnded(id dnd.ID, canceled bool)
}

type entry struct {
	reg       dnd.Registration
	transform *reactive.Signal[dnd.Transform]
}

type session struct {
	id     dnd.ID
	sensor string
	ok     bool
}

type handler struct {
	id uint64
	fn func(DragEvent)
}

// Store is the reference drag context.
type Store struct {
	logger   *slog.Logger
	observer Observer

	mu         sync.Mutex
	draggables map[dnd.ID]*entry
	handlers   map[string][]handler
	nextHandle uint64

	// members is bumped whenever the draggable set changes so lookups of
	// not-yet-registered ids re-run on registration.
	members *reactive.Signal[uint64]
	active  *reactive.Signal[session]
	overlay *reactive.Signal[bool]
	sensors *reactive.Signal[[]Sensor]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Default: slog.Default() tagged with
// component=dragctx.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithObserver installs a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observer = o
	}
}

// WithDragOverlay starts the store in overlay mode.
func WithDragOverlay(on bool) Option {
	return func(s *Store) {
		s.overlay.Set(on)
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		logger:     slog.Default().With("component", "dragctx"),
		draggables: make(map[dnd.ID]*entry),
		handlers:   make(map[string][]handler),
		members:    reactive.NewSignal[uint64](0),
		active:     reactive.NewSignal(session{}),
		overlay:    reactive.NewSignal(false),
		sensors:    reactive.NewSignal[[]Sensor](nil).WithEquals(sameSensors),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveDraggable implements dnd.Context.
func (s *Store) ActiveDraggable() (dnd.ID, bool) {
	a := s.active.Get()
	return a.id, a.ok
}

// ActiveSensor returns the id of the sensor driving the current drag.
func (s *Store) ActiveSensor() (string, bool) {
	a := s.active.Get()
	return a.sensor, a.ok
}

// DraggableTransform implements dnd.Context. Registered draggables that are
// not being dragged report the zero transform. A tracked read of a
// registered id subscribes to that id only; membership is watched while the
// id is missing.
func (s *Store) DraggableTransform(id dnd.ID) (dnd.Transform, bool) {
	e := s.entry(id)
	if e == nil {
		_ = s.members.Get()
		return dnd.Transform{}, false
	}
	return e.transform.Get(), true
}

// UsingDragOverlay implements dnd.Context.
func (s *Store) UsingDragOverlay() bool {
	return s.overlay.Get()
}

// SetUsingDragOverlay switches overlay mode.
func (s *Store) SetUsingDragOverlay(on bool) {
	s.overlay.Set(on)
}

// AddDraggable implements dnd.Context. A second registration under a live
// id replaces the first and is logged, since ids must be unique.
func (s *Store) AddDraggable(r dnd.Registration) {
	s.mu.Lock()
	prev := s.draggables[r.ID]
	s.draggables[r.ID] = &entry{
		reg:       r,
		transform: reactive.NewSignal(dnd.Transform{}),
	}
	s.mu.Unlock()

	if prev != nil {
		s.logger.Warn("draggable registered twice", "id", r.ID)
		prev.transform.Notify()
	}

	s.logger.Debug("draggable added", "id", r.ID, "layout", r.Layout)
	s.members.Update(func(v uint64) uint64 { return v + 1 })
	if s.observer != nil {
		s.observer.DraggableAdded(r.ID)
	}
}

// RemoveDraggable implements dnd.Context. Unknown ids are a no-op. Removing
// the active draggable cancels its drag.
func (s *Store) RemoveDraggable(id dnd.ID) {
	if a := s.active.Peek(); a.ok && a.id == id {
		s.Cancel()
	}

	s.mu.Lock()
	e, ok := s.draggables[id]
	delete(s.draggables, id)
	s.mu.Unlock()

	if !ok {
		return
	}

	s.logger.Debug("draggable removed", "id", id)
	s.members.Update(func(v uint64) uint64 { return v + 1 })
	e.transform.Notify()
	if s.observer != nil {
		s.observer.DraggableRemoved(id)
	}
}

// Draggable returns the registration for id.
func (s *Store) Draggable(id dnd.ID) (dnd.Registration, bool) {
	_ = s.members.Get()
	e := s.entry(id)
	if e == nil {
		return dnd.Registration{}, false
	}
	return e.reg, true
}

// DraggableIDs returns the registered ids, sorted.
func (s *Store) DraggableIDs() []dnd.ID {
	_ = s.members.Get()

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]dnd.ID, 0, len(s.draggables))
	for id := range s.draggables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) entry(id dnd.ID) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draggables[id]
}

// DragStart begins a drag of id driven by sensor. It fails when a drag is
// already running or id is not registered.
func (s *Store) DragStart(id dnd.ID, sensor string) bool {
	if s.active.Peek().ok {
		return false
	}
	e := s.entry(id)
	if e == nil {
		s.logger.Debug("drag start for unknown draggable", "id", id)
		return false
	}

	reactive.Batch(func() {
		e.transform.Set(dnd.Transform{})
		s.active.Set(session{id: id, sensor: sensor, ok: true})
	})

	s.logger.Debug("drag started", "id", id, "sensor", sensor)
	if s.observer != nil {
		s.observer.DragStarted(id, sensor)
	}
	s.emit(evDragStart, DragEvent{ID: id, Sensor: sensor, Data: e.reg.Data})
	return true
}

// DragMove sets the active draggable's transform to delta, the offset from
// where the drag started.
func (s *Store) DragMove(delta dnd.Transform) {
	a := s.active.Peek()
	if !a.ok {
		return
	}
	e := s.entry(a.id)
	if e == nil {
		return
	}

	e.transform.Set(delta)
	s.emit(evDragMove, DragEvent{ID: a.id, Sensor: a.sensor, Transform: delta, Data: e.reg.Data})
}

// DragEnd finishes the active drag.
func (s *Store) DragEnd() {
	s.finish(false)
}

// Cancel aborts the active drag.
func (s *Store) Cancel() {
	s.finish(true)
}

func (s *Store) finish(canceled bool) {
	a := s.active.Peek()
	if !a.ok {
		return
	}

	ev := DragEvent{ID: a.id, Sensor: a.sensor, Canceled: canceled}
	e := s.entry(a.id)
	if e != nil {
		ev.Transform = e.transform.Peek()
		ev.Data = e.reg.Data
	}

	reactive.Batch(func() {
		s.active.Set(session{})
		if e != nil {
			e.transform.Set(dnd.Transform{})
		}
	})

	s.logger.Debug("drag ended", "id", a.id, "canceled", canceled, "transform", ev.Transform)
	if s.observer != nil {
		s.observer.DragEnded(a.id, canceled)
	}
	s.emit(evDragEnd, ev)
}

const (
	evDragStart = "dragstart"
	evDragMove  = "dragmove"
	evDragEnd   = "dragend"
)

// OnDragStart registers fn for drag starts and returns its remover.
func (s *Store) OnDragStart(fn func(DragEvent)) (remove func()) {
	return s.on(evDragStart, fn)
}

// OnDragMove registers fn for drag moves and returns its remover.
func (s *Store) OnDragMove(fn func(DragEvent)) (remove func()) {
	return s.on(evDragMove, fn)
}

// OnDragEnd registers fn for drag ends (including cancels) and returns its
// remover.
func (s *Store) OnDragEnd(fn func(DragEvent)) (remove func()) {
	return s.on(evDragEnd, fn)
}

func (s *Store) on(event string, fn func(DragEvent)) func() {
	s.mu.Lock()
	s.nextHandle++
	id := s.nextHandle
	s.handlers[event] = append(s.handlers[event], handler{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		hs := s.handlers[event]
		for i, h := range hs {
			if h.id == id {
				s.handlers[event] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(event string, ev DragEvent) {
	s.mu.Lock()
	hs := append([]handler(nil), s.handlers[event]...)
	s.mu.Unlock()

	for _, h := range hs {
		h.fn(ev)
	}
}

var _ dnd.Context = (*Store)(nil)
