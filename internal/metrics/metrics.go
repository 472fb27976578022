package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "myguestrooms",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "myguestrooms",
			Name:      "reservations_created_total",
			Help:      "Reservations accepted and written.",
		},
	)

	conflictsDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "myguestrooms",
			Name:      "reservation_conflicts_total",
			Help:      "Create and edit attempts rejected due to an overlap.",
		},
	)

	statusCorrections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "myguestrooms",
			Name:      "status_corrections_total",
			Help:      "Stale statuses corrected during listing reconciliation.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationsCreated, conflictsDetected, statusCorrections)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncReservationCreated counts an accepted reservation.
func IncReservationCreated() {
	reservationsCreated.Inc()
}

// IncConflictDetected counts a rejected overlapping request.
func IncConflictDetected() {
	conflictsDetected.Inc()
}

// IncStatusCorrection counts a persisted reconciliation fix.
func IncStatusCorrection() {
	statusCorrections.Inc()
}
