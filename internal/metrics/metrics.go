package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	orderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order status transitions applied, by edge.",
	}, []string{"from", "to"})

	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Rental orders created.",
	})

	sweeperRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweeper_runs_total",
		Help: "Expiry sweeper executions.",
	})

	sweeperSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweeper_orders_completed_total",
		Help: "Orders transitioned to COMPLETED by the expiry sweeper.",
	})

	sweeperFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweeper_order_failures_total",
		Help: "Per-order failures during sweeper runs.",
	})

	sweeperDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweeper_run_duration_seconds",
		Help:    "Duration of expiry sweeper runs.",
		Buckets: prometheus.DefBuckets,
	})
)

func RecordOrderCreated() {
	ordersCreated.Inc()
}

func RecordTransition(from, to string) {
	orderTransitions.WithLabelValues(from, to).Inc()
}

func RecordSweep(swept, failed int, elapsed time.Duration) {
	sweeperRuns.Inc()
	sweeperSwept.Add(float64(swept))
	sweeperFailures.Add(float64(failed))
	sweeperDuration.Observe(elapsed.Seconds())
}
