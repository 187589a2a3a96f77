// Package observability holds the prometheus collectors for upstream fetches.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes recorded per collection.
const (
	OutcomeReady    = "ready"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

var (
	fetchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "upstream",
		Name:      "fetches_total",
		Help:      "Number of collection fetches by outcome.",
	}, []string{"collection", "outcome"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "upstream",
		Name:      "fetch_duration_seconds",
		Help:      "Latency of collection fetches, including normalization.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collection"})

	recordsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "upstream",
		Name:      "records",
		Help:      "Number of records in the most recent ready fetch.",
	}, []string{"collection"})

	shapeFallbackCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "upstream",
		Name:      "shape_fallbacks_total",
		Help:      "Number of payloads that were neither an array nor a results envelope.",
	}, []string{"collection"})

	lastReadyGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "upstream",
		Name:      "last_ready_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful fetch.",
	}, []string{"collection"})
)

func init() {
	prometheus.MustRegister(fetchCounter, fetchDuration, recordsGauge, shapeFallbackCounter, lastReadyGauge)
}

// RecordFetch counts a finished fetch and observes its latency.
func RecordFetch(collection, outcome string, elapsed time.Duration) {
	fetchCounter.WithLabelValues(collection, outcome).Inc()
	fetchDuration.WithLabelValues(collection).Observe(elapsed.Seconds())
}

// RecordReady updates the record count and success watermark.
func RecordReady(collection string, count int, ts time.Time) {
	recordsGauge.WithLabelValues(collection).Set(float64(count))
	if ts.IsZero() {
		return
	}
	lastReadyGauge.WithLabelValues(collection).Set(float64(ts.Unix()))
}

// RecordShapeFallback counts a payload degraded to an empty collection.
func RecordShapeFallback(collection string) {
	shapeFallbackCounter.WithLabelValues(collection).Inc()
}

// FetchCounter exposes the fetch counter for assertions in tests.
func FetchCounter(collection, outcome string) prometheus.Counter {
	return fetchCounter.WithLabelValues(collection, outcome)
}

// ShapeFallbackCounter exposes the fallback counter for assertions in tests.
func ShapeFallbackCounter(collection string) prometheus.Counter {
	return shapeFallbackCounter.WithLabelValues(collection)
}
