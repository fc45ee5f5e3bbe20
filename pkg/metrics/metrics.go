package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	AssignmentOutcomes *prometheus.CounterVec
	SlotsEvaluated     *prometheus.CounterVec
	SwapChecks         *prometheus.CounterVec
	ExpiredBookings    *prometheus.CounterVec
	TxRetries          *prometheus.CounterVec
}

// New создает метрики и регистрирует их в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		AssignmentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_assignment_outcomes_total",
			Help: "Employee assignment attempts by outcome",
		}, []string{"service", "outcome"}),

		SlotsEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_slots_evaluated_total",
			Help: "Candidate slots evaluated by availability",
		}, []string{"service", "available"}),

		SwapChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_swap_checks_total",
			Help: "Employee swap assessments by result",
		}, []string{"service", "result"}),

		ExpiredBookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_expired_total",
			Help: "Bookings cancelled after the payment deadline",
		}, []string{"service"}),

		TxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_tx_retries_total",
			Help: "Serializable transactions retried after a conflict",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCount,
		m.AssignmentOutcomes,
		m.SlotsEvaluated,
		m.SwapChecks,
		m.ExpiredBookings,
		m.TxRetries,
	)

	return m
}

// ServiceName возвращает имя сервиса для label "service"
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveAssignment учитывает результат подбора сотрудника (assigned / none)
func (m *Metrics) ObserveAssignment(outcome string) {
	if m == nil {
		return
	}
	m.AssignmentOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}

// ObserveSlots учитывает количество оцененных слотов
func (m *Metrics) ObserveSlots(available, unavailable int) {
	if m == nil {
		return
	}
	m.SlotsEvaluated.WithLabelValues(m.serviceName, "true").Add(float64(available))
	m.SlotsEvaluated.WithLabelValues(m.serviceName, "false").Add(float64(unavailable))
}

// ObserveSwapCheck учитывает результат проверки замены сотрудника
func (m *Metrics) ObserveSwapCheck(result string) {
	if m == nil {
		return
	}
	m.SwapChecks.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveExpired учитывает бронирования, отмененные по истечении срока оплаты
func (m *Metrics) ObserveExpired(count int) {
	if m == nil {
		return
	}
	m.ExpiredBookings.WithLabelValues(m.serviceName).Add(float64(count))
}

// ObserveTxRetry учитывает повтор сериализуемой транзакции
func (m *Metrics) ObserveTxRetry() {
	if m == nil {
		return
	}
	m.TxRetries.WithLabelValues(m.serviceName).Inc()
}
