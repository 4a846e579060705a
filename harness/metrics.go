package harness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "modgraph"

// Metrics are the harness counters. Safe for concurrent use.
type Metrics struct {
	// CasesTotal counts finished cases by result ("pass" or "fail").
	CasesTotal *prometheus.CounterVec
	// TransactionsTotal counts submitted transactions.
	TransactionsTotal prometheus.Counter
	// MutationsTotal counts drawn mutations by kind.
	MutationsTotal *prometheus.CounterVec
	// AffectedModulesTotal counts transitive dependents of upgraded modules.
	AffectedModulesTotal prometheus.Counter
	// CaseDurationSeconds observes wall time per case.
	CaseDurationSeconds prometheus.Histogram
}

// NewMetrics registers the harness metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		CasesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cases_total",
			Help:      "Oracle cases run, by result",
		}, []string{"result"}),
		TransactionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transactions_total",
			Help:      "Transactions submitted to the executor",
		}),
		MutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "mutations_total",
			Help:      "Mutations drawn, by kind",
		}, []string{"kind"}),
		AffectedModulesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "affected_modules_total",
			Help:      "Transitive dependents of upgraded modules",
		}),
		CaseDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "case_duration_seconds",
			Help:      "Wall time of one oracle case",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}
