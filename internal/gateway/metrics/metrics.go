package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the payment gateway.
type Metrics struct {
	// Successful settlements by kind ("fee", "payout")
	Settlements *prometheus.CounterVec

	// Rejected or failed attempts by kind and reason
	Rejections *prometheus.CounterVec

	// Full pipeline latency by kind, including oracle and transfer calls
	PipelineLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all gateway metrics registered.
func New() *Metrics {
	return &Metrics{
		Settlements: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bursar_gateway_settlements_total",
			Help: "Total successful fee collections and payout disbursements",
		}, []string{"kind"}),

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bursar_gateway_rejections_total",
			Help: "Total rejected payment attempts by kind and reason",
		}, []string{"kind", "reason"}),

		PipelineLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bursar_gateway_pipeline_duration_seconds",
			Help:    "Duration of the full payment pipeline including oracle and transfer calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
	}
}

// IncrementSettled records a successful settlement.
func (m *Metrics) IncrementSettled(kind string) {
	if m != nil {
		m.Settlements.WithLabelValues(kind).Inc()
	}
}

// IncrementRejected records a failed attempt with its reason.
func (m *Metrics) IncrementRejected(kind, reason string) {
	if m != nil {
		m.Rejections.WithLabelValues(kind, reason).Inc()
	}
}

// ObservePipelineLatency records the total pipeline duration.
func (m *Metrics) ObservePipelineLatency(kind string, d time.Duration) {
	if m != nil {
		m.PipelineLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}
