package metrics

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "huddle"

// Metrics holds the collectors for the HTTP API and the room lifecycle.
type Metrics struct {
	registry *prometheus.Registry

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	roomEvents      *prometheus.CounterVec
	roomsDeleted    *prometheus.CounterVec
	activeRooms     prometheus.Gauge
	goroutines      prometheus.GaugeFunc
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		roomEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_events_total",
			Help:      "Room lifecycle events by type.",
		}, []string{"type"}),
		roomsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_deleted_total",
			Help:      "Deleted rooms by reason.",
		}, []string{"reason"}),
		activeRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Rooms currently held in memory.",
		}),
		goroutines: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "go_routines",
			Help:      "Number of running goroutines.",
		}, func() float64 { return float64(runtime.NumGoroutine()) }),
	}

	m.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.roomEvents,
		m.roomsDeleted,
		m.activeRooms,
		m.goroutines,
	)

	for _, t := range domain.AllRoomEventTypes {
		m.roomEvents.WithLabelValues(string(t))
	}

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Publish makes Metrics a room event sink.
func (m *Metrics) Publish(_ context.Context, event domain.RoomEvent) error {
	m.roomEvents.WithLabelValues(string(event.Type)).Inc()

	switch event.Type {
	case domain.EventRoomCreated:
		m.activeRooms.Inc()
	case domain.EventRoomDeleted:
		m.activeRooms.Dec()
		m.roomsDeleted.WithLabelValues(event.Reason).Inc()
	}

	return nil
}
