package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "documents_saved_total", Help: "Number of documents stored."},
	)
	SaveRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "save_rejected_total", Help: "Number of rejected saves by reason."},
		[]string{"reason"},
	)
	Searches = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "searches_total", Help: "Number of search requests evaluated."},
	)
	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docstore",
			Name:      "search_matches",
			Help:      "Number of documents returned per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	SnapshotsExported = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "snapshots_exported_total", Help: "Number of snapshots written to object storage."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// Save rejection reasons.
const (
	ReasonDuplicate = "duplicate"
	ReasonInvalid   = "invalid"
	ReasonBackend   = "backend"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		DocumentsSaved,
		SaveRejected,
		Searches,
		SearchMatches,
		SnapshotsExported,
		RateLimitAllowed,
		RateLimitRejected,
	)
}
