// Package metrics exposes Prometheus collectors for forwarded notifications.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeSuccess labels notifications accepted by the destination.
const OutcomeSuccess = "success"

var (
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sonar_slack_bridge_notifications_total",
			Help: "Total number of processed inbound events by outcome",
		},
		[]string{"outcome"},
	)

	forwardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sonar_slack_bridge_forward_duration_seconds",
			Help:    "Latency of outbound webhook calls in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)

// Recorder records per-event outcomes. It is satisfied by Prometheus and by test doubles.
type Recorder interface {
	RecordOutcome(outcome string)
	RecordForward(duration time.Duration)
}

// Prometheus records into the process-wide default registry.
type Prometheus struct{}

func (Prometheus) RecordOutcome(outcome string) {
	notificationsTotal.WithLabelValues(outcome).Inc()
}

func (Prometheus) RecordForward(duration time.Duration) {
	forwardDuration.Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordOutcome(string)        {}
func (Noop) RecordForward(time.Duration) {}
