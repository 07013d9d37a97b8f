package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CoordinatorMetrics holds all Prometheus metrics for the coordinator module
type CoordinatorMetrics struct {
	SubscriptionsCreated   prometheus.Counter
	SubscriptionsCancelled prometheus.Counter
	DeliveriesAccepted     prometheus.Counter
	DeliveriesRejected     *prometheus.CounterVec
	ProofsRequested        prometheus.Counter
	ProofsFinalized        *prometheus.CounterVec
	PaymentsSettled        prometheus.Counter
}

var (
	coordinatorMetricsOnce sync.Once
	coordinatorMetrics     *CoordinatorMetrics
)

// NewCoordinatorMetrics creates and registers coordinator metrics (singleton pattern)
func NewCoordinatorMetrics() *CoordinatorMetrics {
	coordinatorMetricsOnce.Do(func() {
		coordinatorMetrics = &CoordinatorMetrics{
			SubscriptionsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "subscriptions_created_total",
					Help:      "Total subscriptions created",
				},
			),
			SubscriptionsCancelled: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "subscriptions_cancelled_total",
					Help:      "Total subscriptions cancelled by their owner",
				},
			),
			DeliveriesAccepted: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "deliveries_accepted_total",
					Help:      "Total deliveries accepted toward redundancy",
				},
			),
			DeliveriesRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "deliveries_rejected_total",
					Help:      "Total deliveries rejected, by reason",
				},
				[]string{"reason"},
			),
			ProofsRequested: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "proofs_requested_total",
					Help:      "Total proof validations requested from provers",
				},
			),
			ProofsFinalized: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "proofs_finalized_total",
					Help:      "Total proof validations finalized, by verdict",
				},
				[]string{"valid"},
			),
			PaymentsSettled: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "chime",
					Subsystem: "coordinator",
					Name:      "payments_settled_total",
					Help:      "Total escrow payments settled",
				},
			),
		}
	})
	return coordinatorMetrics
}
