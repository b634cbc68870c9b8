package server

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/protocol"
	"github.com/vango-dev/dragkit/pkg/reactive"
)

// Session is one WebSocket connection and the board it drives.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool

	server *Server
	logger *slog.Logger

	events chan *protocol.Event
	done   chan struct{}

	// loopDone is closed when the event loop has disposed the board.
	loopDone chan struct{}

	eventCount atomic.Uint64
	patchCount atomic.Uint64
}

func newSession(conn *websocket.Conn, srv *Server) *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		server:    srv,
		logger:    srv.logger.With("session_id", id),
		events:    make(chan *protocol.Event, srv.config.MaxEventQueue),
		done:      make(chan struct{}),
		loopDone:  make(chan struct{}),
	}
}

// Start starts the session's read, write and event loops.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// ReadLoop reads event frames and queues them until the connection fails
// or the session closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(protocol.MaxFrameSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.server.recordWebSocketError("read")
			}
			return
		}

		ev, err := protocol.DecodeEvent(msg)
		if err != nil {
			s.logger.Warn("event decode error", "error", err)
			s.server.recordWebSocketError("decode")
			s.send(protocol.ErrorFor(0, err, false))
			continue
		}

		if err := s.QueueEvent(ev); err != nil {
			s.send(protocol.ErrorFor(ev.Seq, err, false))
		}
	}
}

// QueueEvent queues an event for the event loop. It fails with D064 when
// the queue is full.
func (s *Session) QueueEvent(ev *protocol.Event) error {
	select {
	case s.events <- ev:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "type", ev.Type, "target", ev.Target)
		return errors.New("D064")
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.server.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ping(); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// EventLoop owns the session's board. It greets the client, handles events
// in arrival order and disposes the board when the session closes.
func (s *Session) EventLoop() {
	defer close(s.loopDone)
	defer reactive.Release()

	board := NewBoard(s.server.config, s.logger, s.server.observer())
	defer board.Dispose()

	s.send(protocol.Hello(s.ID, board.Cards()))

	for {
		select {
		case ev := <-s.events:
			s.handleEvent(board, ev)
		case <-s.done:
			return
		}
	}
}

func (s *Session) handleEvent(board *Board, ev *protocol.Event) {
	start := time.Now()
	s.eventCount.Add(1)

	_, span := s.server.tracer.Start(s.server.baseContext(), "dragkit.event",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("dragkit.session.id", s.ID),
			attribute.String("dragkit.event.type", ev.Type),
			attribute.String("dragkit.event.target", ev.Target),
			attribute.Int64("dragkit.event.seq", int64(ev.Seq)),
		))
	defer span.End()

	patches, err := s.safeHandle(board, ev)
	s.server.recordEvent(ev.Type, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Debug("event rejected", "type", ev.Type, "target", ev.Target, "error", err)
		s.send(protocol.ErrorFor(ev.Seq, err, false))
		return
	}

	span.SetAttributes(attribute.Int("dragkit.patches", len(patches)))
	if len(patches) == 0 {
		return
	}
	s.patchCount.Add(uint64(len(patches)))
	s.server.recordPatches(len(patches))
	s.send(protocol.Patches(ev.Seq, patches))
}

// safeHandle runs the board with panic recovery so one bad event cannot
// take down the event loop.
func (s *Session) safeHandle(board *Board, ev *protocol.Event) (patches []protocol.Patch, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panic",
				"panic", r,
				"stack", string(debug.Stack()))
			err = errors.FromError(fmt.Errorf("panic: %v", r), "D004")
		}
	}()
	return board.Handle(ev)
}

// send writes one message. Write failures close the session.
func (s *Session) send(m *protocol.Message) {
	data, err := protocol.EncodeMessage(m)
	if err != nil {
		s.logger.Error("encode message", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		s.server.recordWebSocketError("write")
		go s.Close()
	}
}

func (s *Session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return nil
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.server.config.WriteTimeout))
}

// Close closes the session once. The board is disposed by the event loop.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.mu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.conn.Close()
	s.mu.Unlock()

	s.server.removeSession(s)
	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"patches", s.patchCount.Load(),
		"duration", time.Since(s.CreatedAt))
}

// IsClosed reports whether Close has been called.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session is closing.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the event loop has disposed the board.
func (s *Session) Wait() {
	<-s.loopDone
}
