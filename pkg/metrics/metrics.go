package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTxRetriesTotal    *prometheus.CounterVec
	ReservationsTotal   *prometheus.CounterVec
	StatusTransitions   *prometheus.CounterVec
	AvailabilityQueries *prometheus.CounterVec
}

// Reservation outcomes
const (
	OutcomeCreated   = "created"
	OutcomeReplayed  = "replayed"
	OutcomeConflict  = "conflict"
	OutcomeDiscarded = "discarded"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Status transition results
const (
	TransitionApplied  = "applied"
	TransitionConflict = "conflict"
	TransitionRejected = "rejected"
	TransitionFailed   = "failed"
)

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

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

		DBTxRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}, []string{}),

		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_reservations_total",
			Help:        "Reservation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_status_transitions_total",
			Help:        "Appointment lifecycle actions by action and result",
			ConstLabels: constLabels,
		}, []string{"action", "result"}),

		AvailabilityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_queries_total",
			Help:        "Availability lookups by result",
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
		m.DBWaitCount,
		m.DBTxRetriesTotal,
		m.ReservationsTotal,
		m.StatusTransitions,
		m.AvailabilityQueries,
	)

	return m
}

// ObserveReservation увеличивает счетчик попыток бронирования. Безопасен для nil
func (m *Metrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTransition увеличивает счетчик смены статусов. Безопасен для nil
func (m *Metrics) ObserveTransition(action, result string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(action, result).Inc()
}

// ObserveAvailability увеличивает счетчик запросов доступности. Безопасен для nil
func (m *Metrics) ObserveAvailability(result string) {
	if m == nil {
		return
	}
	m.AvailabilityQueries.WithLabelValues(result).Inc()
}

// ObserveTxRetry увеличивает счетчик повторов сериализуемых транзакций. Безопасен для nil
func (m *Metrics) ObserveTxRetry() {
	if m == nil {
		return
	}
	m.DBTxRetriesTotal.WithLabelValues().Inc()
}
