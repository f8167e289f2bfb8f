/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for the Gaprio agent service
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gaprio_agent_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* LLM metrics */
	llmCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_llm_calls_total",
			Help: "Total number of LLM calls",
		},
		[]string{"model", "status"},
	)

	llmCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gaprio_agent_llm_call_duration_seconds",
			Help:    "LLM call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	/* Action metrics */
	actionsPersistedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_actions_persisted_total",
			Help: "Total number of pending actions persisted",
		},
		[]string{"provider", "action_type"},
	)

	actionsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_actions_dispatched_total",
			Help: "Total number of action executions dispatched",
		},
		[]string{"provider", "status"},
	)
)

/* Handler returns the Prometheus metrics HTTP handler */
func Handler() http.Handler {
	return promhttp.Handler()
}

/* RecordHTTPRequest records an HTTP request */
func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordLLMCall records an LLM invocation */
func RecordLLMCall(model, status string, duration time.Duration) {
	llmCallsTotal.WithLabelValues(model, status).Inc()
	llmCallDuration.WithLabelValues(model).Observe(duration.Seconds())
}

/* RecordActionPersisted records a persisted pending action */
func RecordActionPersisted(provider, actionType string) {
	actionsPersistedTotal.WithLabelValues(provider, actionType).Inc()
}

/* RecordActionDispatched records a dispatched action execution */
func RecordActionDispatched(provider, status string) {
	actionsDispatchedTotal.WithLabelValues(provider, status).Inc()
}
