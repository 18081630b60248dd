package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	received  prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	abandoned prometheus.Counter
	rejected  prometheus.Counter
	dropped   prometheus.Counter
	latency   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, pending func() float64) *metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ipc_worker_pending_tasks",
		Help: "Number of tasks queued or running",
	}, pending)

	return &metrics{
		received: f.NewCounter(prometheus.CounterOpts{
			Name: "ipc_worker_requests_received_total",
			Help: "Total number of requests received from the parent",
		}),
		completed: f.NewCounter(prometheus.CounterOpts{
			Name: "ipc_worker_responses_sent_total",
			Help: "Total number of successful responses sent",
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Name: "ipc_worker_processing_failures_total",
			Help: "Total number of tasks whose processing failed and were answered with an error response",
		}),
		abandoned: f.NewCounter(prometheus.CounterOpts{
			Name: "ipc_worker_tasks_abandoned_total",
			Help: "Total number of tasks abandoned by shutdown",
		}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "ipc_worker_requests_rejected_total",
			Help: "Total number of requests rejected because too many tasks were pending",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "ipc_worker_responses_dropped_total",
			Help: "Total number of responses dropped after send failures",
		}),
		latency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ipc_worker_task_duration_seconds",
			Help:    "Time from request receipt to response emission",
			Buckets: prometheus.LinearBuckets(0.5, 0.5, 10),
		}),
	}
}
