// Package metrics holds the Prometheus collectors of the match service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "matchmaker"

var (
	// EmbedRequests counts provider calls by provider and outcome (ok, empty_input, error).
	EmbedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "embeddings",
			Name:      "requests_total",
			Help:      "Embedding provider calls.",
		},
		[]string{"provider", "outcome"},
	)

	EmbedLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "embeddings",
			Name:      "request_duration_seconds",
			Help:      "Embedding provider call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"provider"},
	)

	// CacheLookups counts gateway cache lookups by cache driver and result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "embedding_cache",
			Name:      "lookups_total",
			Help:      "Embedding cache lookups.",
		},
		[]string{"cache", "result"},
	)

	// MatchRequests counts FindMatches calls by outcome (ok, not_found, invalid, error).
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "requests_total",
			Help:      "Match requests.",
		},
		[]string{"outcome"},
	)

	MatchLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "duration_seconds",
			Help:      "End-to-end match latency.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// CandidatesSkipped counts candidates left out of ranking, by reason.
	CandidatesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "candidates_skipped_total",
			Help:      "Candidates excluded from ranking.",
		},
		[]string{"reason"},
	)

	DirectoryQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "queries_total",
			Help:      "Mentor directory queries.",
		},
	)

	DirectorySessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "sessions",
			Help:      "Live directory browsing sessions.",
		},
	)
)
