// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "visit_scheduler"

// Metrics содержит все коллекторы сервиса
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	slotSearchDuration *prometheus.HistogramVec
	slotCandidates     *prometheus.HistogramVec
	travelLookups      *prometheus.CounterVec
	travelDuration     prometheus.Histogram
}

// New регистрирует коллекторы в глобальном регистре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует коллекторы в переданном регистре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: labels,
		}, []string{"state"}),
		slotSearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "slot_search_duration_seconds",
			Help:        "Time spent computing available slots",
			ConstLabels: labels,
			Buckets:     []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		slotCandidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "slot_candidates",
			Help:        "Number of slot candidates surviving each pipeline stage",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 4, 12),
		}, []string{"stage"}),
		travelLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "travel_lookups_total",
			Help:        "Travel-time lookups by outcome",
			ConstLabels: labels,
		}, []string{"result"}),
		travelDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "travel_lookup_duration_seconds",
			Help:        "Travel-time lookup latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.slotSearchDuration,
		m.slotCandidates,
		m.travelLookups,
		m.travelDuration,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	m.dbConnections.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
}

// ObserveSlotSearch фиксирует один расчёт слотов
func (m *Metrics) ObserveSlotSearch(kind string, d time.Duration) {
	m.slotSearchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveStage фиксирует количество кандидатов после этапа конвейера
func (m *Metrics) ObserveStage(stage string, candidates int) {
	m.slotCandidates.WithLabelValues(stage).Observe(float64(candidates))
}

// ObserveTravelLookup фиксирует запрос времени в пути (result: ok, error, timeout, cache_hit)
func (m *Metrics) ObserveTravelLookup(result string, d time.Duration) {
	m.travelLookups.WithLabelValues(result).Inc()
	if result != "cache_hit" {
		m.travelDuration.Observe(d.Seconds())
	}
}
