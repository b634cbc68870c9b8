package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/dragkit/internal/config"
	"github.com/vango-dev/dragkit/pkg/dragctx"
	"github.com/vango-dev/dragkit/pkg/protocol"
)

// ServerConfig configures the demo server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080").
	Address string

	// ReadTimeout is how long a session waits for the next client frame.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// HeartbeatInterval is how often the server pings the client. It must be
	// shorter than ReadTimeout.
	HeartbeatInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MaxEventQueue is the per-session event buffer.
	MaxEventQueue int

	// ActivationDistance is the pointer sensor's dead zone in pixels.
	ActivationDistance float64

	// KeyboardStep is how far one arrow key moves a card.
	KeyboardStep float64

	// UseOverlay starts each board in drag-overlay mode.
	UseOverlay bool

	// MetricsPath is where metrics are served when a collector is set.
	MetricsPath string

	// Cards is the initial layout of every new board.
	Cards []protocol.Card

	// CheckOrigin validates the WebSocket request origin.
	// Default: SameOriginCheck
	CheckOrigin func(r *http.Request) bool
}

// DefaultCards is the board every session starts with.
func DefaultCards() []protocol.Card {
	return []protocol.Card{
		{ID: "card-1", Label: "A", X: 40, Y: 40, Width: 120, Height: 80},
		{ID: "card-2", Label: "B", X: 200, Y: 40, Width: 120, Height: 80},
		{ID: "card-3", Label: "C", X: 360, Y: 40, Width: 120, Height: 80},
	}
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:            ":8080",
		ReadTimeout:        60 * time.Second,
		WriteTimeout:       10 * time.Second,
		HeartbeatInterval:  30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxEventQueue:      256,
		ActivationDistance: dragctx.DefaultActivationDistance,
		KeyboardStep:       dragctx.DefaultKeyboardStep,
		MetricsPath:        "/metrics",
		Cards:              DefaultCards(),
		CheckOrigin:        SameOriginCheck,
	}
}

// FromConfig builds a ServerConfig from loaded configuration. Server
// timeouts apply to individual frames; the heartbeat runs at half the read
// timeout so idle sessions stay open.
func FromConfig(cfg *config.Config) *ServerConfig {
	c := DefaultServerConfig()
	c.Address = cfg.Address()
	c.ReadTimeout = cfg.Server.ReadTimeout
	c.WriteTimeout = cfg.Server.WriteTimeout
	c.HeartbeatInterval = cfg.Server.ReadTimeout / 2
	c.MaxEventQueue = cfg.Server.MaxEventQueue
	c.ActivationDistance = cfg.Drag.ActivationDistance
	c.KeyboardStep = cfg.Drag.KeyboardStep
	c.UseOverlay = cfg.Drag.UseOverlay
	c.MetricsPath = cfg.Metrics.Path
	return c
}

// SameOriginCheck accepts requests with no Origin header or an Origin whose
// host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}
