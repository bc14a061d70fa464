package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	queryLatency    prometheus.Histogram
	callsDispatched *prometheus.CounterVec
	callsUnserved   *prometheus.CounterVec
	runDuration     prometheus.Histogram
	queueDepth      prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Histogram, *prometheus.CounterVec, *prometheus.CounterVec, prometheus.Histogram, prometheus.Gauge) {
	lat := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "travel_time_query_seconds",
			Help:    "Latency of travel time queries against the routing strategy",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
	)
	disp := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calls_dispatched_total",
			Help: "Number of calls assigned to a vehicle",
		},
		[]string{"call_type"},
	)
	uns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calls_unserved_total",
			Help: "Number of calls no vehicle could reach",
		},
		[]string{"call_type"},
	)
	run := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_run_seconds",
			Help:    "Wall time of complete dispatch runs",
			Buckets: prometheus.DefBuckets,
		},
	)
	depth := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "call_queue_depth",
			Help: "Number of calls waiting in the queue",
		},
	)
	return lat, disp, uns, run, depth
}

func init() {
	queryLatency, callsDispatched, callsUnserved, runDuration, queueDepth = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(queryLatency, callsDispatched, callsUnserved, runDuration, queueDepth)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	queryLatency, callsDispatched, callsUnserved, runDuration, queueDepth = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
