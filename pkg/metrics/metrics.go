package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge

	BookingsCreatedTotal   *prometheus.CounterVec
	BookingRejectionsTotal *prometheus.CounterVec
	DiscountsAppliedTotal  *prometheus.CounterVec
	SlotsServedTotal       prometheus.Counter
	DiscountCacheLookups   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),

		BookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings by initial status",
			ConstLabels: constLabels,
		}, []string{"status"}),

		BookingRejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_rejections_total",
			Help:        "Booking attempts rejected at commit time",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		DiscountsAppliedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "discounts_applied_total",
			Help:        "Discounts applied to created bookings",
			ConstLabels: constLabels,
		}, []string{"discount"}),

		SlotsServedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slots_served_total",
			Help:        "Number of time slots returned to clients",
			ConstLabels: constLabels,
		}),

		DiscountCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "discount_cache_lookups_total",
			Help:        "Discount set cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.BookingsCreatedTotal,
		m.BookingRejectionsTotal,
		m.DiscountsAppliedTotal,
		m.SlotsServedTotal,
		m.DiscountCacheLookups,
	)

	return m
}

// ObserveBookingCreated учитывает созданное бронирование
// Безопасно вызывать на nil-метриках (метрики выключены)
func (m *Metrics) ObserveBookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(status).Inc()
}

// ObserveBookingRejected учитывает отклоненную попытку бронирования
func (m *Metrics) ObserveBookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingRejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveDiscountApplied учитывает примененную скидку
func (m *Metrics) ObserveDiscountApplied(name string) {
	if m == nil {
		return
	}
	m.DiscountsAppliedTotal.WithLabelValues(name).Inc()
}

// ObserveSlotsServed учитывает количество отданных слотов
func (m *Metrics) ObserveSlotsServed(n int) {
	if m == nil {
		return
	}
	m.SlotsServedTotal.Add(float64(n))
}

// ObserveDiscountCache учитывает попадание/промах кэша скидок
func (m *Metrics) ObserveDiscountCache(result string) {
	if m == nil {
		return
	}
	m.DiscountCacheLookups.WithLabelValues(result).Inc()
}
