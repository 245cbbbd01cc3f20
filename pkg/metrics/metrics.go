package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Booking outcomes
const (
	BookingCreated      = "created"
	BookingConflict     = "conflict"
	BookingRejected     = "rejected"
	BookingFailed       = "failed"
	BookingNotifyFailed = "notify_failed"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AvailableSlots *prometheus.HistogramVec
	BookingsTotal  *prometheus.CounterVec
	RateLimited    *prometheus.CounterVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBWaitDurationTotal *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AvailableSlots: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "available_slots",
			Help:        "Number of bookable slots returned for a day",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 12, 16, 20, 30},
		}, []string{"day_closed"}),

		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rate_limited_requests_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: constLabels,
		}, []string{"route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitDurationTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds_total",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}, []string{"db"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AvailableSlots,
		m.BookingsTotal,
		m.RateLimited,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationTotal,
	)

	return m
}

// ObserveHTTPRequest записывает результат HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAvailableSlots записывает количество слотов, отданных клиенту
func (m *Metrics) ObserveAvailableSlots(count int, dayClosed bool) {
	if m == nil {
		return
	}
	m.AvailableSlots.WithLabelValues(strconv.FormatBool(dayClosed)).Observe(float64(count))
}

// IncBooking увеличивает счетчик попыток бронирования
func (m *Metrics) IncBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

// IncRateLimited увеличивает счетчик отклоненных лимитером запросов
func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(route).Inc()
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}
