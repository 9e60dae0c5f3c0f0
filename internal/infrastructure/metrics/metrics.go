package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	eventsRelayed     *prometheus.CounterVec
	commandsCommitted *prometheus.CounterVec
	commandsDropped   prometheus.Counter
	storageFailures   *prometheus.CounterVec
	historyLoadTime   prometheus.Histogram

	activeConnections prometheus.Gauge
	activeRooms       prometheus.Gauge
}

func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkboard_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inkboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		eventsRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkboard_relay_events_total",
			Help: "Drawing events relayed to room members, by event type",
		}, []string{"event"}),
		commandsCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkboard_commands_committed_total",
			Help: "Drawing commands appended to the room command log, by command type",
		}, []string{"type"}),
		commandsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkboard_commands_dropped_total",
			Help: "Drawing commands dropped because the commit queue was full",
		}),
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkboard_storage_failures_total",
			Help: "Command log operations that failed against storage, by operation",
		}, []string{"operation"}),
		historyLoadTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkboard_history_load_duration_seconds",
			Help:    "Time spent loading room history for a joining connection",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),
		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inkboard_active_connections",
			Help: "Websocket connections currently registered",
		}),
		activeRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inkboard_active_rooms",
			Help: "Rooms with at least one connected member",
		}),
	}

	registry.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.eventsRelayed,
		m.commandsCommitted,
		m.commandsDropped,
		m.storageFailures,
		m.historyLoadTime,
		m.activeConnections,
		m.activeRooms,
	)

	return m
}

func (m *Metrics) ObserveRequest(method, path, status string, duration time.Duration) {
	m.requestCount.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) EventRelayed(event string) {
	m.eventsRelayed.WithLabelValues(event).Inc()
}

func (m *Metrics) CommandCommitted(commandType string) {
	m.commandsCommitted.WithLabelValues(commandType).Inc()
}

func (m *Metrics) CommandDropped() {
	m.commandsDropped.Inc()
}

func (m *Metrics) StorageFailure(operation string) {
	m.storageFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveHistoryLoad(duration time.Duration) {
	m.historyLoadTime.Observe(duration.Seconds())
}

func (m *Metrics) ConnectionOpened() { m.activeConnections.Inc() }
func (m *Metrics) ConnectionClosed() { m.activeConnections.Dec() }

func (m *Metrics) SetActiveRooms(n int) {
	m.activeRooms.Set(float64(n))
}
