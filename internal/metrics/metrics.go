package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the deal service.
type Metrics struct {
	Operations              *prometheus.CounterVec   // Counter for deal operations by outcome
	ConveyorRequestDuration *prometheus.HistogramVec // Histogram for conveyor request durations
	EventsPublished         *prometheus.CounterVec   // Counter for published domain events
}

// NewMetrics creates a Metrics instance registered with the given Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "deal_operations_total",
			Help: "Total number of deal operations by outcome",
		}, []string{"operation", "outcome"}), // operation: request_offers, apply_offer, calculate_credit, get_application
		ConveyorRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deal_conveyor_request_duration_seconds",
			Help:    "Duration of outbound conveyor requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}), // endpoint: offers, calculation
		EventsPublished: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "deal_events_published_total",
			Help: "Total number of domain events published to Kafka",
		}, []string{"event_type"}),
	}
}
