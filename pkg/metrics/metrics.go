// Package metrics exposes Prometheus counters for the settlement lifecycle.
// The submitted-vs-reconciled gap is the only visibility the engine has into
// payouts whose webhook never arrived.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SettlementsInitiated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settlements_initiated_total",
			Help: "Total number of settlement requests received from the connector",
		},
	)

	SettlementsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settlements_failed_total",
			Help: "Total number of settlement attempts aborted before or at payout submission",
		},
	)

	PayoutsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payouts_submitted_total",
			Help: "Total number of payouts accepted by the processor",
		},
	)

	WebhooksReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhooks_received_total",
			Help: "Total number of processor webhook events received",
		},
	)

	WebhooksReconciled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhooks_reconciled_total",
			Help: "Total number of webhook events reconciled and reported to the connector",
		},
	)

	WebhooksOrphaned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhooks_orphaned_total",
			Help: "Total number of webhook events whose destination tag resolved to no account",
		},
	)
)

// Register registers all engine metrics with the given registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		SettlementsInitiated,
		SettlementsFailed,
		PayoutsSubmitted,
		WebhooksReceived,
		WebhooksReconciled,
		WebhooksOrphaned,
	)
}
