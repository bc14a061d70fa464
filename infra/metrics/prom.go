package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
)

// PromSink exposes dispatch activity as Prometheus collectors. It is safe to
// build several sinks against the same registry: collectors that are already
// registered are reused instead of failing.
type PromSink struct {
	assignments *prometheus.CounterVec
	selection   *prometheus.HistogramVec
	unserved    *prometheus.CounterVec
	runs        prometheus.Counter
	fleetSize   prometheus.Gauge
}

// NewPromSink registers the dispatch collectors on the default registry.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the dispatch collectors on reg.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	s := &PromSink{
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_assignments_total",
			Help: "Calls assigned to a vehicle, by call type and vehicle.",
		}, []string{"call_type", "vehicle_id"}),
		selection: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_selection_seconds",
			Help:    "Wall-clock time spent selecting a vehicle for a call.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"call_type"}),
		unserved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_unserved_total",
			Help: "Calls dropped because no vehicle could reach them.",
		}, []string{"call_type"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_runs_total",
			Help: "Completed dispatch runs.",
		}),
		fleetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_fleet_vehicles",
			Help: "Vehicles in the fleet snapshot of the current run.",
		}),
	}

	collectors := []prometheus.Collector{s.assignments, s.selection, s.unserved, s.runs, s.fleetSize}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				switch i {
				case 0:
					s.assignments = are.ExistingCollector.(*prometheus.CounterVec)
				case 1:
					s.selection = are.ExistingCollector.(*prometheus.HistogramVec)
				case 2:
					s.unserved = are.ExistingCollector.(*prometheus.CounterVec)
				case 3:
					s.runs = are.ExistingCollector.(prometheus.Counter)
				case 4:
					s.fleetSize = are.ExistingCollector.(prometheus.Gauge)
				}
				continue
			}
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return s, nil
}

// RecordDispatch implements coremetrics.MetricsSink.
func (s *PromSink) RecordDispatch(results []coremetrics.DispatchResult) error {
	for _, r := range results {
		s.assignments.WithLabelValues(r.Record.CallType, r.Record.VehicleID).Inc()
		s.selection.WithLabelValues(r.Record.CallType).Observe(r.Selection.Seconds())
	}
	return nil
}

// RecordUnserved implements coremetrics.UnservedRecorder.
func (s *PromSink) RecordUnserved(ev coremetrics.UnservedEvent) error {
	s.unserved.WithLabelValues(ev.Call.Type).Inc()
	return nil
}

// RecordRun implements coremetrics.RunRecorder.
func (s *PromSink) RecordRun(coremetrics.RunEvent) error {
	s.runs.Inc()
	return nil
}

// RecordFleetSize implements coremetrics.FleetSizeRecorder.
func (s *PromSink) RecordFleetSize(size int) error {
	s.fleetSize.Set(float64(size))
	return nil
}
