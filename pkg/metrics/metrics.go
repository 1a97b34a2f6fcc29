package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the service exports
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	CampaignDispatchTotal  *prometheus.CounterVec
	CampaignRecipients     *prometheus.CounterVec
	CampaignReconcileTotal *prometheus.CounterVec
	BookingsTotal          *prometheus.CounterVec
}

// New registers collectors in the default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry registers collectors in reg (tests pass a fresh registry)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Database query errors",
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Open connections in the pool",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Idle connections in the pool",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		CampaignDispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_dispatch_total",
			Help: "Campaign dispatch attempts by result",
		}, []string{"service", "result"}),

		CampaignRecipients: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_recipients_total",
			Help: "Recipients handed to the messaging gateway",
		}, []string{"service", "type"}),

		CampaignReconcileTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_reconcile_total",
			Help: "Campaign reconciliations by result",
		}, []string{"service", "result"}),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking write operations by operation and result",
		}, []string{"service", "operation", "result"}),
	}
}

// ServiceName returns the label value used for the service dimension
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveDispatch records a dispatch outcome; nil receivers are ignored
func (m *Metrics) ObserveDispatch(result string, messageType string, recipients int) {
	if m == nil {
		return
	}
	m.CampaignDispatchTotal.WithLabelValues(m.serviceName, result).Inc()
	if recipients > 0 {
		m.CampaignRecipients.WithLabelValues(m.serviceName, messageType).Add(float64(recipients))
	}
}

// ObserveReconcile records a reconciliation outcome
func (m *Metrics) ObserveReconcile(result string) {
	if m == nil {
		return
	}
	m.CampaignReconcileTotal.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveBooking records a booking write outcome
func (m *Metrics) ObserveBooking(operation, result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(m.serviceName, operation, result).Inc()
}
