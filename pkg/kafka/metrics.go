package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish outcomes recorded on ProducerMessages.
const (
	OutcomePublished = "published"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

var (
	// ProducerMessages counts events handed to a Publisher, by topic and
	// outcome.
	ProducerMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kafka",
			Subsystem: "producer",
			Name:      "messages_total",
			Help:      "Events handed to the producer, partitioned by outcome.",
		},
		[]string{"topic", "outcome"},
	)

	// ProducerPublishDuration observes broker round trips, including failed
	// ones.
	ProducerPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kafka",
			Subsystem: "producer",
			Name:      "publish_duration_seconds",
			Help:      "Time spent writing an event to the broker.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
		},
		[]string{"topic"},
	)
)
