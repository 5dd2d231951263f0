package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration      *prometheus.HistogramVec
	DBOpenConnections    *prometheus.GaugeVec
	DBInUseConnections   *prometheus.GaugeVec
	DBIdleConnections    *prometheus.GaugeVec
	DBWaitCount          *prometheus.GaugeVec
	DBMaxOpenConnections *prometheus.GaugeVec

	// Business
	AppointmentsCreated *prometheus.CounterVec
	SlotConflicts       *prometheus.CounterVec
	SlotCacheRequests   *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		DBMaxOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_max_open_connections",
			Help:        "Maximum number of open connections",
			ConstLabels: constLabels,
		}, []string{}),

		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Number of created appointments",
			ConstLabels: constLabels,
		}, []string{"service_type"}),

		SlotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_slot_conflicts_total",
			Help:        "Number of rejected bookings because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		SlotCacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_cache_requests_total",
			Help:        "Slot cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_events_published_total",
			Help:        "Published appointment events by routing key and result",
			ConstLabels: constLabels,
		}, []string{"routing_key", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBMaxOpenConnections,
		m.AppointmentsCreated,
		m.SlotConflicts,
		m.SlotCacheRequests,
		m.EventsPublished,
	)

	return m
}

// IncAppointmentCreated безопасен для nil-получателя
func (m *Metrics) IncAppointmentCreated(serviceType string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(serviceType).Inc()
}

// IncSlotConflict безопасен для nil-получателя
func (m *Metrics) IncSlotConflict(operation string) {
	if m == nil {
		return
	}
	m.SlotConflicts.WithLabelValues(operation).Inc()
}

// IncCacheResult безопасен для nil-получателя
func (m *Metrics) IncCacheResult(result string) {
	if m == nil {
		return
	}
	m.SlotCacheRequests.WithLabelValues(result).Inc()
}

// IncEventPublished безопасен для nil-получателя
func (m *Metrics) IncEventPublished(routingKey, result string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(routingKey, result).Inc()
}
