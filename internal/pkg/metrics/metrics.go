package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_gateway"

var (
	// AmountConversions counts base-unit conversions by outcome (ok, empty, negative, malformed).
	AmountConversions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "amount_conversions_total",
		Help:      "Decimal amount to base unit conversions.",
	}, []string{"outcome"})

	// DecimalsLookups counts precision lookups by how they were resolved.
	DecimalsLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decimals_lookups_total",
		Help:      "Asset precision lookups.",
	}, []string{"source"})

	// PriceRefreshBatches counts DEX Screener batches by result.
	PriceRefreshBatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_refresh_batches_total",
		Help:      "Price refresh batches sent to the price source.",
	}, []string{"result"})

	// AccountCalls counts mock wallet account method calls.
	AccountCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_calls_total",
		Help:      "Account method calls handled by the mock wallet.",
	}, []string{"method", "result"})

	// HTTPRequestDuration observes REST handler latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "REST API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AmountConversions,
			DecimalsLookups,
			PriceRefreshBatches,
			AccountCalls,
			HTTPRequestDuration,
		)
	})
}
