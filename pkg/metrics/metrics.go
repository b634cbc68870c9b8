// Package metrics exposes Prometheus metrics for drag sessions.
//
// A Collector counts draggable registrations and drag lifecycles (it
// implements dragctx.Observer) and the traffic of the demo server's
// websocket sessions.
//
//	m := metrics.New(metrics.WithNamespace("dragkit"))
//	store := dragctx.New(dragctx.WithObserver(m))
//	r.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/dragkit/pkg/dnd"
	"github.com/vango-dev/dragkit/pkg/dragctx"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "dragkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event handling duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registerer receives the metrics.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// Gatherer is what Handler serves.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry registers the metrics on reg and serves them from it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registerer = reg
		c.Gatherer = reg
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "dragkit",
		Buckets:    prometheus.DefBuckets,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	}
}

// Collector holds the drag metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	draggables     prometheus.Gauge
	registrations  *prometheus.CounterVec
	dragsStarted   *prometheus.CounterVec
	dragsEnded     *prometheus.CounterVec
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	patchesSent    prometheus.Counter
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

// New creates a Collector and registers its metrics. Registering twice on
// the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registerer)
	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}

	return &Collector{
		gatherer: config.Gatherer,

		draggables: factory.NewGauge(gaugeOpts(
			"draggables", "Number of registered draggables")),

		registrations: factory.NewCounterVec(counterOpts(
			"draggable_registrations_total", "Draggable registrations by operation"),
			[]string{"op"}),

		dragsStarted: factory.NewCounterVec(counterOpts(
			"drags_started_total", "Drags started by sensor"),
			[]string{"sensor"}),

		dragsEnded: factory.NewCounterVec(counterOpts(
			"drags_ended_total", "Drags finished by outcome"),
			[]string{"outcome"}),

		eventsTotal: factory.NewCounterVec(counterOpts(
			"events_total", "Client events processed by type and status"),
			[]string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Client event handling duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		patchesSent: factory.NewCounter(counterOpts(
			"patches_sent_total", "Style patches sent to clients")),

		activeSessions: factory.NewGauge(gaugeOpts(
			"active_sessions", "Number of open websocket sessions")),

		wsErrors: factory.NewCounterVec(counterOpts(
			"websocket_errors_total", "WebSocket errors by type"),
			[]string{"type"}),
	}
}

// DraggableAdded implements dragctx.Observer.
func (c *Collector) DraggableAdded(dnd.ID) {
	c.draggables.Inc()
	c.registrations.WithLabelValues("add").Inc()
}

// DraggableRemoved implements dragctx.Observer.
func (c *Collector) DraggableRemoved(dnd.ID) {
	c.draggables.Dec()
	c.registrations.WithLabelValues("remove").Inc()
}

// DragStarted implements dragctx.Observer.
func (c *Collector) DragStarted(_ dnd.ID, sensor string) {
	c.dragsStarted.WithLabelValues(sensor).Inc()
}

// DragEnded implements dragctx.Observer.
func (c *Collector) DragEnded(_ dnd.ID, canceled bool) {
	outcome := "dropped"
	if canceled {
		outcome = "canceled"
	}
	c.dragsEnded.WithLabelValues(outcome).Inc()
}

// RecordEvent records one handled client event. A non-nil err counts it
// as an error.
func (c *Collector) RecordEvent(eventType string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.eventsTotal.WithLabelValues(eventType, status).Inc()
	c.eventDuration.WithLabelValues(eventType).Observe(d.Seconds())
}

// RecordPatches records n style patches sent.
func (c *Collector) RecordPatches(n int) {
	c.patchesSent.Add(float64(n))
}

// SessionOpened records a new websocket session.
func (c *Collector) SessionOpened() {
	c.activeSessions.Inc()
}

// SessionClosed records a websocket session closing.
func (c *Collector) SessionClosed() {
	c.activeSessions.Dec()
}

// RecordWebSocketError records a websocket error of the given type
// ("read", "write", "decode", "upgrade").
func (c *Collector) RecordWebSocketError(errorType string) {
	c.wsErrors.WithLabelValues(errorType).Inc()
}

// Handler serves the collector's gatherer in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

var _ dragctx.Observer = (*Collector)(nil)
