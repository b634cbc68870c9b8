package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	dkerrors "github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/dragctx"
	"github.com/vango-dev/dragkit/pkg/metrics"
)

// DefaultTracerName names the tracer used when none is configured.
const DefaultTracerName = "dragkit"

// Server serves the demo page and its WebSocket sessions.
type Server struct {
	config  *ServerConfig
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer

	upgrader websocket.Upgrader

	mu         sync.Mutex
	sessions   map[string]*Session
	httpServer *http.Server
	ctx        context.Context
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records server and drag metrics on m and serves them at
// ServerConfig.MetricsPath.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used for per-event spans.
// Default: otel.Tracer(DefaultTracerName)
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// New creates a Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig, opts ...Option) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	if config.CheckOrigin == nil {
		config.CheckOrigin = SameOriginCheck
	}
	if config.HeartbeatInterval <= 0 {
		config.HeartbeatInterval = 30 * time.Second
	}

	s := &Server{
		config:   config,
		logger:   slog.Default(),
		sessions: make(map[string]*Session),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(DefaultTracerName)
	}
	s.logger = s.logger.With("component", "server")

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     config.CheckOrigin,
	}
	return s
}

// Handler returns the HTTP handler:
//
//	GET /         demo page
//	GET /ws       WebSocket sessions
//	GET /healthz  liveness
//	GET /metrics  Prometheus metrics, when a collector is set
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.servePage)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if s.metrics != nil && s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, s.metrics.Handler())
	}
	return r
}

// HandleWebSocket upgrades the request and starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed",
			"error", dkerrors.New("D060").Wrap(err), "remote", r.RemoteAddr)
		s.recordWebSocketError("upgrade")
		return
	}

	session := newSession(conn, s)
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}

	session.logger.Info("session started", "remote", r.RemoteAddr)
	session.Start()
}

func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	_, ok := s.sessions[session.ID]
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	if ok && s.metrics != nil {
		s.metrics.SessionClosed()
	}
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on ServerConfig.Address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return dkerrors.New("D140").Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ctx = ctx
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return dkerrors.New("D140").Wrap(err)

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session, waits for their boards to be disposed and
// stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
	for _, session := range sessions {
		select {
		case <-session.loopDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

func (s *Server) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// observer returns the drag observer for new boards, or nil.
func (s *Server) observer() dragctx.Observer {
	if s.metrics == nil {
		return nil
	}
	return s.metrics
}

func (s *Server) recordEvent(eventType string, d time.Duration, err error) {
	if s.metrics != nil {
		s.metrics.RecordEvent(eventType, d, err)
	}
}

func (s *Server) recordPatches(n int) {
	if s.metrics != nil {
		s.metrics.RecordPatches(n)
	}
}

func (s *Server) recordWebSocketError(errorType string) {
	if s.metrics != nil {
		s.metrics.RecordWebSocketError(errorType)
	}
}
