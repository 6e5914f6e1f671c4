// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TurnsTotal tracks processed conversation turns by resulting funnel stage.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_turns_total",
			Help: "Total processed conversation turns",
		},
		[]string{"stage"},
	)

	// ReadinessDecisions tracks purchase-readiness outcomes per turn.
	ReadinessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_readiness_decisions_total",
			Help: "Purchase readiness decisions",
		},
		[]string{"ready"},
	)

	// PrematureConfirmations counts explicit purchase phrases seen before any
	// price exposure. These never set readiness.
	PrematureConfirmations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_premature_confirmations_total",
			Help: "Explicit purchase phrases detected before price exposure",
		},
	)

	// Handovers tracks turns flagged for human-agent handover.
	Handovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_handovers_total",
			Help: "Turns flagged for handover to a human agent",
		},
	)

	// LLMCallDuration tracks text-intelligence call duration.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "Text intelligence call duration",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"operation", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// StoreErrors tracks conversation store failures by operation.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_store_errors_total",
			Help: "Conversation store operation failures",
		},
		[]string{"operation"},
	)

	// CatalogRefreshes tracks catalog cache refreshes.
	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Catalog cache refreshes",
		},
		[]string{"status"},
	)

	// EventsPublished tracks decision events published to JetStream.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_events_published_total",
			Help: "Decision events published to the sales stream",
		},
		[]string{"type", "status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMCall records metrics for a text-intelligence call.
func RecordLLMCall(operation, status string, duration float64) {
	LLMCallDuration.WithLabelValues(operation, status).Observe(duration)
}

// RecordTurn records a completed conversation turn.
func RecordTurn(stage string, ready bool) {
	TurnsTotal.WithLabelValues(stage).Inc()
	if ready {
		ReadinessDecisions.WithLabelValues("true").Inc()
	} else {
		ReadinessDecisions.WithLabelValues("false").Inc()
	}
}
