package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RPCAttempts counts individual RPC attempts, including retries.
	RPCAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flarekit_rpc_attempts_total",
			Help: "Total JSON-RPC attempts issued, by method.",
		},
		[]string{"method"},
	)

	// RPCRetries counts attempts that failed transiently and were retried.
	RPCRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flarekit_rpc_retries_total",
			Help: "Total JSON-RPC retries after transient failures, by method.",
		},
		[]string{"method"},
	)

	// RPCDuration observes per-attempt latency.
	RPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flarekit_rpc_duration_seconds",
			Help:    "JSON-RPC attempt latency, by method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// TxSubmitted counts transactions accepted into the node's pending pool.
	TxSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flarekit_tx_submitted_total",
			Help: "Total signed transactions accepted by the node.",
		},
	)

	// TxSendFailures counts broadcast rejections.
	TxSendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flarekit_tx_send_failures_total",
			Help: "Total signed transactions rejected at broadcast.",
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once from main; panics on duplicate registration.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		RPCAttempts,
		RPCRetries,
		RPCDuration,
		TxSubmitted,
		TxSendFailures,
	)
}
