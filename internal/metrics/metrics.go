package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edupipe_events_enqueued_total",
		Help: "Total number of events placed on the emit queue.",
	})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edupipe_events_dropped_total",
		Help: "Total number of events rejected due to a full queue.",
	})

	StatementsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edupipe_statements_emitted_total",
		Help: "Total number of dual-format statements delivered, labelled by event kind.",
	}, []string{"event"})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edupipe_validation_failures_total",
		Help: "Total number of events rejected by field validation, labelled by event kind and field.",
	}, []string{"event", "field"})

	TransportFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edupipe_transport_failures_total",
		Help: "Total number of transport delivery failures, labelled by event kind.",
	}, []string{"event"})

	EmitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "edupipe_emit_duration_ms",
		Help:    "End-to-end validate-render-dispatch latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "edupipe_queue_utilization_ratio",
		Help: "Current emit queue utilization (0–1).",
	})
)
