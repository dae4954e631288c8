package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "geomedia"

	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "route"},
	)

	UploadCredentialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "credentials_total",
			Help:      "Upload credentials issued or rejected",
		},
		[]string{"status"},
	)

	MediaItemsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "items_created_total",
			Help:      "Media items created from confirmed uploads",
		},
		[]string{"media_type"},
	)

	BoundsQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "bounds_queries_total",
			Help:      "Bounding box queries",
		},
		[]string{"status"},
	)

	BoundsQueryResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "bounds_query_results",
			Help:      "Number of items returned by a bounding box query",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)

	ProcessingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "processing",
			Name:      "messages_total",
			Help:      "Media created events handled by the processing worker",
		},
		[]string{"status"},
	)

	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "processing",
			Name:      "duration_seconds",
			Help:      "Media created event handling duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
	)

	OrphansSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "orphans_swept_total",
			Help:      "Uploaded objects deleted because no media item references them",
		},
	)

	EventsRepublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "processing",
			Name:      "events_republished_total",
			Help:      "Media created events sent again for items stuck pending",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordUploadCredential records an issued (success) or rejected (error) credential
func RecordUploadCredential(status string) {
	UploadCredentialsTotal.WithLabelValues(status).Inc()
}

// RecordMediaItemCreated records a created media item
func RecordMediaItemCreated(mediaType string) {
	MediaItemsCreatedTotal.WithLabelValues(mediaType).Inc()
}

// RecordBoundsQuery records a bounding box query and its result size on success
func RecordBoundsQuery(status string, results int) {
	BoundsQueriesTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		BoundsQueryResults.Observe(float64(results))
	}
}

// RecordProcessing records a handled processing message
func RecordProcessing(status string, durationSec float64) {
	ProcessingTotal.WithLabelValues(status).Inc()
	ProcessingDuration.Observe(durationSec)
}

// RecordOrphansSwept adds deleted orphan objects
func RecordOrphansSwept(count int) {
	OrphansSweptTotal.Add(float64(count))
}

// RecordEventsRepublished adds republished media created events
func RecordEventsRepublished(count int) {
	EventsRepublishedTotal.Add(float64(count))
}
