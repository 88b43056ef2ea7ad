package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal tracks completed transfers per asset and outcome
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_transfers_total",
			Help: "Total number of transfer attempts",
		},
		[]string{"asset", "outcome"},
	)

	// TransferFeeSun tracks the fee paid per transfer in sun
	TransferFeeSun = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payout_transfer_fee_sun",
			Help:    "Fee charged per transfer in sun",
			Buckets: prometheus.ExponentialBuckets(100_000, 4, 8),
		},
		[]string{"asset"},
	)

	// RPCCallsTotal tracks RPC calls per chain and provider
	RPCCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_rpc_calls_total",
			Help: "Total number of RPC calls",
		},
		[]string{"chain", "provider", "endpoint"},
	)

	// RPCErrorsTotal tracks RPC errors per chain and provider
	RPCErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_rpc_errors_total",
			Help: "Total number of RPC errors",
		},
		[]string{"chain", "provider", "error_type"},
	)

	// RPCLatency tracks RPC call latency
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payout_rpc_latency_seconds",
			Help:    "RPC call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"chain", "provider", "endpoint"},
	)

	// ReconcilerChecks tracks confirmation polls per result
	ReconcilerChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_reconciler_checks_total",
			Help: "Total number of pending-transfer confirmation checks",
		},
		[]string{"result"},
	)

	// PendingTransfers tracks the current pending-confirmation queue depth
	PendingTransfers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "payout_pending_transfers",
			Help: "Number of transfers awaiting confirmation",
		},
	)
)
