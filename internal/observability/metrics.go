// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	PayloadsReceived  *prometheus.CounterVec
	PayloadsMalformed *prometheus.CounterVec
	RowsExtracted     prometheus.Counter
	WSReconnects      prometheus.Counter

	// Scoring metrics
	TokensScored     prometheus.Counter
	ScoringErrors    *prometheus.CounterVec
	ScoringLatency   prometheus.Histogram
	ActionsDecided   *prometheus.CounterVec
	TrustScoresRated *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulScore prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "dexpath"
	}

	return &Metrics{
		// Ingestion metrics
		PayloadsReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "payloads_received_total",
			Help:      "Total number of payloads received by source",
		}, []string{"source"}),
		PayloadsMalformed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "payloads_malformed_total",
			Help:      "Total number of payloads that failed to decode by source",
		}, []string{"source"}),
		RowsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "rows_extracted_total",
			Help:      "Total number of token rows extracted from payloads",
		}),
		WSReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "ws_reconnects_total",
			Help:      "Total number of WebSocket reconnect attempts",
		}),

		// Scoring metrics
		TokensScored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "tokens_scored_total",
			Help:      "Total number of tokens scored",
		}),
		ScoringErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "errors_total",
			Help:      "Total number of scoring pipeline errors by stage",
		}, []string{"stage"}),
		ScoringLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "latency_seconds",
			Help:      "End-to-end scoring latency per token in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ActionsDecided: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "actions_decided_total",
			Help:      "Total number of trade actions decided by action",
		}, []string{"action"}),
		TrustScoresRated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "trust_scores_rated_total",
			Help:      "Total number of rugcheck trust scores computed by label",
		}, []string{"label"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulScore: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_score_timestamp",
			Help:      "Unix timestamp of the last successfully scored token",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordPayloadReceived increments the payloads received counter.
func RecordPayloadReceived(source string) {
	DefaultMetrics.PayloadsReceived.WithLabelValues(source).Inc()
}

// RecordPayloadMalformed increments the malformed payloads counter.
func RecordPayloadMalformed(source string) {
	DefaultMetrics.PayloadsMalformed.WithLabelValues(source).Inc()
}

// RecordTokenScored records one scored token and its decided action.
func RecordTokenScored(action string, seconds float64) {
	DefaultMetrics.TokensScored.Inc()
	DefaultMetrics.ActionsDecided.WithLabelValues(action).Inc()
	DefaultMetrics.ScoringLatency.Observe(seconds)
}

// RecordScoringError records a scoring pipeline error.
func RecordScoringError(stage string) {
	DefaultMetrics.ScoringErrors.WithLabelValues(stage).Inc()
}

// RecordTrustScore records a computed rugcheck trust score.
func RecordTrustScore(label string) {
	DefaultMetrics.TrustScoresRated.WithLabelValues(label).Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
