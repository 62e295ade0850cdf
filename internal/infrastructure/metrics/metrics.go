package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/pocketledger/internal/domain"
)

// Metrics holds the ledger Prometheus metrics and implements usecase.Recorder.
type Metrics struct {
	// Ledger metrics
	Mutations  *prometheus.CounterVec
	Rejections *prometheus.CounterVec
	Balance    prometheus.Gauge
	Income     prometheus.Gauge
	Expense    prometheus.Gauge
	Savings    prometheus.Gauge

	// Storage metrics
	PersistDuration *prometheus.HistogramVec
	PersistErrors   *prometheus.CounterVec
	Corruption      *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_mutations_total",
				Help: "Total successful ledger mutations by operation",
			},
			[]string{"operation"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_rejections_total",
				Help: "Total rejected ledger operations by reason",
			},
			[]string{"operation", "reason"},
		),
		Balance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pocketledger_balance",
			Help: "Current free balance",
		}),
		Income: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pocketledger_income",
			Help: "Current total income",
		}),
		Expense: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pocketledger_expense",
			Help: "Current total expense",
		}),
		Savings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pocketledger_savings",
			Help: "Current savings total",
		}),

		PersistDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketledger_persist_duration_seconds",
				Help:    "Duration of store writes",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"key"},
		),
		PersistErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_persist_errors_total",
				Help: "Total failed store writes",
			},
			[]string{"key"},
		),
		Corruption: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_storage_corruption_total",
				Help: "Persisted values discarded as corrupt",
			},
			[]string{"key"},
		),
	}
}

// ObserveMutation counts a successful mutation.
func (m *Metrics) ObserveMutation(operation string) {
	m.Mutations.WithLabelValues(operation).Inc()
}

// ObserveRejection counts a rejected operation.
func (m *Metrics) ObserveRejection(operation string, err error) {
	m.Rejections.WithLabelValues(operation, RejectionReason(err)).Inc()
}

// ObservePersist records a store write.
func (m *Metrics) ObservePersist(key string, duration time.Duration, err error) {
	m.PersistDuration.WithLabelValues(key).Observe(duration.Seconds())
	if err != nil {
		m.PersistErrors.WithLabelValues(key).Inc()
	}
}

// ObserveCorruption counts a discarded persisted value.
func (m *Metrics) ObserveCorruption(key string) {
	m.Corruption.WithLabelValues(key).Inc()
}

// ObserveTotals updates the ledger gauges.
func (m *Metrics) ObserveTotals(totals domain.Totals) {
	m.Balance.Set(totals.Balance.InexactFloat64())
	m.Income.Set(totals.Income.InexactFloat64())
	m.Expense.Set(totals.Expense.InexactFloat64())
	m.Savings.Set(totals.Savings.InexactFloat64())
}

// RejectionReason maps an error to a low-cardinality label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDescription):
		return "invalid_description"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidGoal):
		return "invalid_goal"
	case errors.Is(err, domain.ErrInvalidTheme):
		return "invalid_theme"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, domain.ErrNoPendingEdit):
		return "no_pending_edit"
	default:
		return "other"
	}
}
