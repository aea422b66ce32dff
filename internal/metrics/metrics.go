// Package metrics holds the prometheus collectors of the ledger service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	loanTransitions *prometheus.CounterVec
	repayments      *prometheus.CounterVec
	adjustments     *prometheus.CounterVec
	overdueLoans    prometheus.Gauge
	sweepDuration   prometheus.Histogram
}

// New registers all collectors, plus the Go runtime and process collectors,
// on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loanTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_transitions_total",
			Help:      "Loan status changes, by target status.",
		}, []string{"status"}),
		repayments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repayment_events_total",
			Help:      "Repayment lifecycle events (recorded, approved, rejected, deleted).",
		}, []string{"event"}),
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adjustment_events_total",
			Help:      "Deficit and excess record events, by kind and resulting status.",
		}, []string{"kind", "status"}),
		overdueLoans: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_loans",
			Help:      "Loans past their next payment due date at the last sweep.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overdue_sweep_seconds",
			Help:      "Duration of the overdue sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.loanTransitions, m.repayments, m.adjustments, m.overdueLoans, m.sweepDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) LoanTransition(status string) {
	if m == nil {
		return
	}
	m.loanTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) RepaymentEvent(event string) {
	if m == nil {
		return
	}
	m.repayments.WithLabelValues(event).Inc()
}

func (m *Metrics) AdjustmentEvent(kind, status string) {
	if m == nil {
		return
	}
	m.adjustments.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) SetOverdueLoans(n int) {
	if m == nil {
		return
	}
	m.overdueLoans.Set(float64(n))
}

func (m *Metrics) ObserveSweep(seconds float64) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(seconds)
}
