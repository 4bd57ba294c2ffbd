package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger operation metrics
	DepositsTotal     prometheus.Counter
	WithdrawalsTotal  prometheus.Counter
	TransfersTotal    prometheus.Counter
	OperationErrors   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationAmount   *prometheus.HistogramVec

	// Account metrics
	AccountsOpened prometheus.Counter
	LoginAttempts  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics. Call once at startup;
// promauto panics on duplicate registration.
func New() *Metrics {
	return &Metrics{
		DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_deposits_total",
			Help: "Total number of committed deposits",
		}),
		WithdrawalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_withdrawals_total",
			Help: "Total number of committed withdrawals",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_transfers_total",
			Help: "Total number of committed transfers",
		}),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_operation_errors_total",
				Help: "Total number of failed ledger operations by type and error",
			},
			[]string{"operation", "error_type"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		OperationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_operation_amount",
				Help:    "Ledger operation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		LoginAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_login_attempts_total",
				Help: "Total login attempts by outcome",
			},
			[]string{"status"},
		),
	}
}
